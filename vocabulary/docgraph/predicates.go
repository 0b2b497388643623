package docgraph

// Dotted predicates for knowledge-graph ingestion. These follow the
// three-level domain.category.property notation used on the graph ingest
// subject, distinct from the ontology IRIs the RDF serializations use.
const (
	PredicateDocumentID        = "docgraph.document.id"
	PredicateDocumentFileName  = "docgraph.document.file_name"
	PredicateDocumentChunks    = "docgraph.document.chunk_count"
	PredicateDocumentTriples   = "docgraph.document.triple_count"
	PredicateDocumentCreatedAt = "docgraph.document.created_at"
	PredicateDocumentRDFKey    = "docgraph.document.rdf_key"

	PredicateValidationStatus     = "docgraph.validation.status"
	PredicateValidationViolations = "docgraph.validation.violation_count"
	PredicateValidationWarnings   = "docgraph.validation.warning_count"
)

// DocumentEntityID generates a consistent graph entity ID for a document.
// Format: docgraph.local.pipeline.document.document.<id>
func DocumentEntityID(documentID string) string {
	return "docgraph.local.pipeline.document.document." + documentID
}
