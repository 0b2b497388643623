// Package ontology provides the fetched schema model and the SPARQL client
// that acquires it from a graph-query endpoint.
package ontology

// RestrictionKind is the closed set of per-class property restriction kinds
// the schema endpoint can declare. The validator is required to branch
// exhaustively over these so an unenforced kind is a visible decision, not
// an omission.
type RestrictionKind string

const (
	KindCardinality    RestrictionKind = "cardinality"
	KindMinCardinality RestrictionKind = "minCardinality"
	KindMaxCardinality RestrictionKind = "maxCardinality"
	KindAllValuesFrom  RestrictionKind = "allValuesFrom"
	KindSomeValuesFrom RestrictionKind = "someValuesFrom"
)

// IsValid reports whether the kind is one of the defined constants.
func (k RestrictionKind) IsValid() bool {
	switch k {
	case KindCardinality, KindMinCardinality, KindMaxCardinality,
		KindAllValuesFrom, KindSomeValuesFrom:
		return true
	default:
		return false
	}
}

// String returns the string representation of the kind.
func (k RestrictionKind) String() string { return string(k) }

// Class describes one ontology class, optionally with a direct superclass.
// No subclass closure is computed; the validator checks declared types only.
type Class struct {
	IRI        string `json:"class"`
	SubClassOf string `json:"subClassOf,omitempty"`
}

// Property describes one ontology property with optional domain and range.
type Property struct {
	IRI    string `json:"property"`
	Domain string `json:"domain,omitempty"`
	Range  string `json:"range,omitempty"`
}

// Restriction constrains a property's values for instances of a class.
// Value is a count for the cardinality kinds and a class IRI for the
// value-type kinds.
type Restriction struct {
	Class    string          `json:"class"`
	Property string          `json:"property"`
	Kind     RestrictionKind `json:"restrictionType"`
	Value    string          `json:"value"`
}

// Model is the schema fetched for one validation run. It has no persistence
// and is never cached across runs; a failed fetch substitutes EmptyModel so
// validation still runs with all schema-dependent checks vacuous.
type Model struct {
	Classes      []Class       `json:"classes"`
	Properties   []Property    `json:"properties"`
	Restrictions []Restriction `json:"restrictions"`
}

// EmptyModel returns a model with all three collections empty.
func EmptyModel() *Model {
	return &Model{}
}

// IsEmpty reports whether the model carries no schema at all.
func (m *Model) IsEmpty() bool {
	return len(m.Classes) == 0 && len(m.Properties) == 0 && len(m.Restrictions) == 0
}

// HasClass reports whether the class IRI is declared in the model.
func (m *Model) HasClass(iri string) bool {
	for _, c := range m.Classes {
		if c.IRI == iri {
			return true
		}
	}
	return false
}

// PropertyByIRI returns the property declaration for an IRI, if any.
func (m *Model) PropertyByIRI(iri string) (Property, bool) {
	for _, p := range m.Properties {
		if p.IRI == iri {
			return p, true
		}
	}
	return Property{}, false
}

// RestrictionsByClass indexes the model's restrictions by the class they
// constrain, preserving declaration order within each class.
func (m *Model) RestrictionsByClass() map[string][]Restriction {
	indexed := make(map[string][]Restriction)
	for _, r := range m.Restrictions {
		indexed[r.Class] = append(indexed[r.Class], r)
	}
	return indexed
}
