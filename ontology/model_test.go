package ontology

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRestrictionKind_IsValid(t *testing.T) {
	for _, kind := range []RestrictionKind{
		KindCardinality,
		KindMinCardinality,
		KindMaxCardinality,
		KindAllValuesFrom,
		KindSomeValuesFrom,
	} {
		assert.True(t, kind.IsValid(), kind.String())
	}

	assert.False(t, RestrictionKind("").IsValid())
	assert.False(t, RestrictionKind("exactCardinality").IsValid())
}

func TestModel_IsEmpty(t *testing.T) {
	assert.True(t, EmptyModel().IsEmpty())

	m := &Model{Classes: []Class{{IRI: "http://example.com/A"}}}
	assert.False(t, m.IsEmpty())
}

func TestModel_HasClass(t *testing.T) {
	m := &Model{Classes: []Class{
		{IRI: "http://example.com/A"},
		{IRI: "http://example.com/B", SubClassOf: "http://example.com/A"},
	}}

	assert.True(t, m.HasClass("http://example.com/A"))
	assert.True(t, m.HasClass("http://example.com/B"))
	assert.False(t, m.HasClass("http://example.com/C"))
}

func TestModel_PropertyByIRI(t *testing.T) {
	m := &Model{Properties: []Property{
		{IRI: "http://example.com/p", Domain: "http://example.com/A"},
	}}

	p, ok := m.PropertyByIRI("http://example.com/p")
	assert.True(t, ok)
	assert.Equal(t, "http://example.com/A", p.Domain)

	_, ok = m.PropertyByIRI("http://example.com/missing")
	assert.False(t, ok)
}

func TestModel_RestrictionsByClass(t *testing.T) {
	m := &Model{Restrictions: []Restriction{
		{Class: "http://example.com/A", Property: "http://example.com/p", Kind: KindCardinality, Value: "1"},
		{Class: "http://example.com/A", Property: "http://example.com/q", Kind: KindMinCardinality, Value: "2"},
		{Class: "http://example.com/B", Property: "http://example.com/p", Kind: KindCardinality, Value: "1"},
	}}

	byClass := m.RestrictionsByClass()
	assert.Len(t, byClass["http://example.com/A"], 2)
	assert.Len(t, byClass["http://example.com/B"], 1)
	assert.Equal(t, KindCardinality, byClass["http://example.com/A"][0].Kind)
}
