package graph

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/c360studio/semstreams/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/docgraph/vocabulary/docgraph"
)

func TestEntityPayload_Validate(t *testing.T) {
	p := &EntityPayload{EntityID_: docgraph.DocumentEntityID("doc-1")}
	assert.NoError(t, p.Validate())

	assert.Error(t, (&EntityPayload{}).Validate())
}

func TestEntityPayload_Schema(t *testing.T) {
	p := &EntityPayload{}
	assert.Equal(t, EntityType, p.Schema())
	assert.Equal(t, "graph", p.Schema().Domain)
	assert.Equal(t, "entity", p.Schema().Category)
}

func TestEntityPayload_JSON(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	p := &EntityPayload{
		EntityID_: docgraph.DocumentEntityID("doc-1"),
		TripleData: []message.Triple{
			{
				Subject:    docgraph.DocumentEntityID("doc-1"),
				Predicate:  docgraph.PredicateDocumentID,
				Object:     "doc-1",
				Source:     tripleSource,
				Timestamp:  now,
				Confidence: 1.0,
			},
		},
		UpdatedAt: now,
	}

	data, err := json.Marshal(p)
	require.NoError(t, err)

	var decoded EntityPayload
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, p.EntityID_, decoded.EntityID_)
	require.Len(t, decoded.TripleData, 1)
	assert.Equal(t, docgraph.PredicateDocumentID, decoded.TripleData[0].Predicate)
}
