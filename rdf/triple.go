// Package rdf provides the semantic graph core for Docgraph: the triple
// model, the document graph builder, and serializers and a parser for the
// textual graph formats the pipeline stages exchange.
package rdf

// Object is the object term of a triple: either a resource IRI or a
// literal value with an optional datatype IRI.
type Object struct {
	// Value holds the IRI for resources, or the raw (unescaped) literal value.
	Value string `json:"value"`

	// Literal discriminates literal values from resource IRIs.
	Literal bool `json:"literal"`

	// Datatype is the optional datatype IRI for typed literals
	// (e.g. xsd:integer, xsd:dateTime). Empty for plain literals and resources.
	Datatype string `json:"datatype,omitempty"`
}

// Triple is a single directed labeled edge in the graph. Subject and
// Predicate are always IRIs; only the Object may be a literal. Triples are
// value types and are never mutated after construction.
type Triple struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    Object `json:"object"`
}

// NewResource creates a triple whose object is a resource IRI.
func NewResource(subject, predicate, objectIRI string) Triple {
	return Triple{
		Subject:   subject,
		Predicate: predicate,
		Object:    Object{Value: objectIRI},
	}
}

// NewLiteral creates a triple whose object is an untyped string literal.
func NewLiteral(subject, predicate, value string) Triple {
	return Triple{
		Subject:   subject,
		Predicate: predicate,
		Object:    Object{Value: value, Literal: true},
	}
}

// NewTypedLiteral creates a triple whose object is a literal tagged with a
// datatype IRI.
func NewTypedLiteral(subject, predicate, value, datatype string) Triple {
	return Triple{
		Subject:   subject,
		Predicate: predicate,
		Object:    Object{Value: value, Literal: true, Datatype: datatype},
	}
}

// IsResource reports whether the object term is a resource IRI.
func (o Object) IsResource() bool { return !o.Literal }

// Equal reports structural equality of two triples: subject, predicate,
// object value, literal flag, and datatype must all match.
func (t Triple) Equal(other Triple) bool {
	return t.Subject == other.Subject &&
		t.Predicate == other.Predicate &&
		t.Object == other.Object
}
