package docgraph

import (
	"net/url"
	"strconv"
)

// Base is the root IRI prefix for all Docgraph terms.
const Base = "http://graph-rag.example.com/"

// Namespace IRIs partition the graph into documents, entities, and schema terms.
const (
	// NamespaceDocument holds instance IRIs for ingested documents and chunks.
	NamespaceDocument = Base + "document/"

	// NamespaceEntity holds instance IRIs for keywords, authors, and mentions.
	NamespaceEntity = Base + "entity/"

	// NamespaceOntology holds class and property IRIs.
	NamespaceOntology = Base + "ontology/"
)

// Standard W3C namespaces used by the serializers and the validator.
const (
	NamespaceRDF = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NamespaceXSD = "http://www.w3.org/2001/XMLSchema#"
)

// RDFType is the rdf:type predicate IRI, the type-declaration predicate
// recognized by the validator when grouping triples into instances.
const RDFType = NamespaceRDF + "type"

// XSD datatype IRIs for typed literals.
const (
	XSDInteger  = NamespaceXSD + "integer"
	XSDDateTime = NamespaceXSD + "dateTime"
	XSDBoolean  = NamespaceXSD + "boolean"
	XSDDecimal  = NamespaceXSD + "decimal"
)

// Class IRIs for document-derived node types.
const (
	// ClassDocument represents an ingested document.
	ClassDocument = NamespaceOntology + "Document"

	// ClassTextChunk represents one text segment of a document.
	ClassTextChunk = NamespaceOntology + "TextChunk"

	// ClassKeyword represents a keyword derived from document metadata.
	ClassKeyword = NamespaceOntology + "Keyword"

	// ClassAuthor represents a document author derived from metadata.
	ClassAuthor = NamespaceOntology + "Author"

	// ClassEntity represents a heuristically extracted entity mention.
	ClassEntity = NamespaceOntology + "Entity"
)

// Property IRIs for document node statements.
const (
	PropHasID         = NamespaceOntology + "hasId"
	PropHasFileName   = NamespaceOntology + "hasFileName"
	PropHasTextLength = NamespaceOntology + "hasTextLength"
	PropCreatedAt     = NamespaceOntology + "createdAt"
	PropHasType       = NamespaceOntology + "hasType"
	PropHasKeyword    = NamespaceOntology + "hasKeyword"
	PropHasAuthor     = NamespaceOntology + "hasAuthor"
	PropHasName       = NamespaceOntology + "hasName"
	PropHasValue      = NamespaceOntology + "hasValue"
)

// Property IRIs for chunk node statements.
const (
	PropHasChunk         = NamespaceOntology + "hasChunk"
	PropHasChunkID       = NamespaceOntology + "hasChunkId"
	PropHasText          = NamespaceOntology + "hasText"
	PropHasStartPosition = NamespaceOntology + "hasStartPosition"
	PropHasLength        = NamespaceOntology + "hasLength"
	PropMentions         = NamespaceOntology + "mentions"
)

// Prefixes maps serialization prefixes to their namespace IRIs. The
// serializers abbreviate IRIs by longest-prefix match against this table;
// IRIs outside these namespaces are never abbreviated.
func Prefixes() map[string]string {
	return map[string]string{
		"doc":    NamespaceDocument,
		"entity": NamespaceEntity,
		"onto":   NamespaceOntology,
		"rdf":    NamespaceRDF,
		"xsd":    NamespaceXSD,
	}
}

// DocumentIRI returns the instance IRI for a document identifier.
func DocumentIRI(documentID string) string {
	return NamespaceDocument + documentID
}

// ChunkIRI returns the instance IRI for a chunk of a document.
func ChunkIRI(documentIRI string, chunkID int) string {
	return documentIRI + "/chunk/" + strconv.Itoa(chunkID)
}

// EntityIRI returns the instance IRI for a literal entity value.
// The value is percent-encoded so identical values produce identical IRIs.
func EntityIRI(value string) string {
	return NamespaceEntity + url.PathEscape(value)
}
