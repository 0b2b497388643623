package ontology

// SPARQL queries used to assemble the schema model. The restriction query
// binds the restriction kind explicitly so the result rows map one-to-one
// onto RestrictionKind values.
const (
	classesQuery = `
PREFIX owl: <http://www.w3.org/2002/07/owl#>
PREFIX rdfs: <http://www.w3.org/2000/01/rdf-schema#>

SELECT ?class ?subClassOf
WHERE {
    ?class a owl:Class .
    OPTIONAL { ?class rdfs:subClassOf ?subClassOf }
}
`

	propertiesQuery = `
PREFIX owl: <http://www.w3.org/2002/07/owl#>
PREFIX rdfs: <http://www.w3.org/2000/01/rdf-schema#>

SELECT ?property ?domain ?range
WHERE {
    {
        ?property a owl:ObjectProperty .
        OPTIONAL { ?property rdfs:domain ?domain }
        OPTIONAL { ?property rdfs:range ?range }
    }
    UNION
    {
        ?property a owl:DatatypeProperty .
        OPTIONAL { ?property rdfs:domain ?domain }
        OPTIONAL { ?property rdfs:range ?range }
    }
}
`

	restrictionsQuery = `
PREFIX owl: <http://www.w3.org/2002/07/owl#>
PREFIX rdfs: <http://www.w3.org/2000/01/rdf-schema#>

SELECT ?class ?property ?restrictionType ?value
WHERE {
    ?class rdfs:subClassOf ?restriction .
    ?restriction a owl:Restriction .
    ?restriction owl:onProperty ?property .
    {
        ?restriction owl:cardinality ?value .
        BIND("cardinality" AS ?restrictionType)
    }
    UNION
    {
        ?restriction owl:minCardinality ?value .
        BIND("minCardinality" AS ?restrictionType)
    }
    UNION
    {
        ?restriction owl:maxCardinality ?value .
        BIND("maxCardinality" AS ?restrictionType)
    }
    UNION
    {
        ?restriction owl:allValuesFrom ?value .
        BIND("allValuesFrom" AS ?restrictionType)
    }
    UNION
    {
        ?restriction owl:someValuesFrom ?value .
        BIND("someValuesFrom" AS ?restrictionType)
    }
}
`
)
