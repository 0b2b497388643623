// Package docgraph provides the ontology vocabulary for the Docgraph system.
//
// The vocabulary defines the IRIs used when documents are lifted into the
// semantic graph: class IRIs for document-derived nodes (Document, TextChunk,
// Keyword, Author, Entity), property IRIs for their scalar values and
// relationships, and the standard RDF/XSD terms the serializers depend on.
//
// # Namespaces
//
// All Docgraph terms live under three namespaces rooted at Base:
//   - Document namespace (document/): instance IRIs for ingested documents
//     and their chunks
//   - Entity namespace (entity/): instance IRIs for keywords, authors, and
//     extracted entity mentions
//   - Ontology namespace (ontology/): class and property IRIs
//
// Instance IRIs in the entity namespace are built by percent-encoding the
// literal value, so identical values always resolve to the same node.
//
// # Usage
//
//	docURI := docgraph.DocumentIRI("doc-1")
//	t := rdf.NewResource(docURI, docgraph.RDFType, docgraph.ClassDocument)
package docgraph
