// Package graph publishes pipeline results to the knowledge graph.
//
// After a document's RDF is staged and validated, the document entity and
// its validation outcome are published as semantic triples on the graph
// ingest subject, where the streaming graph components take over.
package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/c360studio/docgraph/validate"
	"github.com/c360studio/docgraph/vocabulary/docgraph"
	"github.com/c360studio/semstreams/message"
	"github.com/c360studio/semstreams/natsclient"
)

// GraphIngestSubject is the subject for graph entity ingestion.
const GraphIngestSubject = "graph.ingest.entity"

// tripleSource tags published assertions with their origin.
const tripleSource = "docgraph.pipeline"

// DocumentRecord describes an ingested document for graph publication.
type DocumentRecord struct {
	DocumentID  string
	FileName    string
	ChunkCount  int
	TripleCount int
	RDFKey      string
	CreatedAt   time.Time
}

// PublishDocument publishes a document entity to the knowledge graph.
// A nil NATS client skips publishing so the pipeline degrades gracefully
// when no graph backend is configured.
func PublishDocument(ctx context.Context, nc *natsclient.Client, record DocumentRecord) error {
	if nc == nil {
		return nil
	}

	entityID := docgraph.DocumentEntityID(record.DocumentID)
	now := time.Now()

	triples := []message.Triple{
		{
			Subject:    entityID,
			Predicate:  docgraph.PredicateDocumentID,
			Object:     record.DocumentID,
			Source:     tripleSource,
			Timestamp:  now,
			Confidence: 1.0,
		},
		{
			Subject:    entityID,
			Predicate:  docgraph.PredicateDocumentFileName,
			Object:     record.FileName,
			Source:     tripleSource,
			Timestamp:  now,
			Confidence: 1.0,
		},
		{
			Subject:    entityID,
			Predicate:  docgraph.PredicateDocumentChunks,
			Object:     record.ChunkCount,
			Source:     tripleSource,
			Timestamp:  now,
			Confidence: 1.0,
		},
		{
			Subject:    entityID,
			Predicate:  docgraph.PredicateDocumentTriples,
			Object:     record.TripleCount,
			Source:     tripleSource,
			Timestamp:  now,
			Confidence: 1.0,
		},
		{
			Subject:    entityID,
			Predicate:  docgraph.PredicateDocumentRDFKey,
			Object:     record.RDFKey,
			Source:     tripleSource,
			Timestamp:  now,
			Confidence: 1.0,
		},
		{
			Subject:    entityID,
			Predicate:  docgraph.PredicateDocumentCreatedAt,
			Object:     record.CreatedAt.Format(time.RFC3339),
			Source:     tripleSource,
			Timestamp:  now,
			Confidence: 1.0,
		},
	}

	return publishEntity(ctx, nc, entityID, triples, now)
}

// PublishValidation publishes a document's validation outcome to the
// knowledge graph.
func PublishValidation(ctx context.Context, nc *natsclient.Client, documentID string,
	result *validate.Result) error {
	if nc == nil {
		return nil
	}

	entityID := docgraph.DocumentEntityID(documentID)
	now := time.Now()

	triples := []message.Triple{
		{
			Subject:    entityID,
			Predicate:  docgraph.PredicateValidationStatus,
			Object:     string(result.Status()),
			Source:     tripleSource,
			Timestamp:  now,
			Confidence: 1.0,
		},
		{
			Subject:    entityID,
			Predicate:  docgraph.PredicateValidationViolations,
			Object:     strconv.Itoa(len(result.Violations)),
			Source:     tripleSource,
			Timestamp:  now,
			Confidence: 1.0,
		},
		{
			Subject:    entityID,
			Predicate:  docgraph.PredicateValidationWarnings,
			Object:     strconv.Itoa(len(result.Warnings)),
			Source:     tripleSource,
			Timestamp:  now,
			Confidence: 1.0,
		},
	}

	return publishEntity(ctx, nc, entityID, triples, now)
}

// publishEntity marshals and publishes one entity payload to the ingest stream.
func publishEntity(ctx context.Context, nc *natsclient.Client, entityID string,
	triples []message.Triple, now time.Time) error {
	payload := EntityPayload{
		EntityID_:  entityID,
		TripleData: triples,
		UpdatedAt:  now,
	}

	data, err := json.Marshal(&payload)
	if err != nil {
		return fmt.Errorf("marshal entity %s: %w", entityID, err)
	}

	if err := nc.PublishToStream(ctx, GraphIngestSubject, data); err != nil {
		return fmt.Errorf("publish entity %s: %w", entityID, err)
	}

	return nil
}
