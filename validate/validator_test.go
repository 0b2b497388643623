package validate_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/docgraph/ontology"
	"github.com/c360studio/docgraph/rdf"
	"github.com/c360studio/docgraph/validate"
	"github.com/c360studio/docgraph/vocabulary/docgraph"
)

func docInstance(id string, extra ...rdf.Triple) []rdf.Triple {
	docIRI := docgraph.DocumentIRI(id)
	triples := []rdf.Triple{
		rdf.NewResource(docIRI, docgraph.RDFType, docgraph.ClassDocument),
		rdf.NewLiteral(docIRI, docgraph.PropHasID, id),
	}
	return append(triples, extra...)
}

func schemaModel() *ontology.Model {
	return &ontology.Model{
		Classes: []ontology.Class{
			{IRI: docgraph.ClassDocument},
			{IRI: docgraph.ClassTextChunk},
		},
		Properties: []ontology.Property{
			{IRI: docgraph.PropHasID, Domain: docgraph.ClassDocument},
			{IRI: docgraph.PropHasText, Domain: docgraph.ClassTextChunk},
		},
	}
}

func TestValidate_PassesAgainstEmptySchema(t *testing.T) {
	v := validate.New()

	result := v.Validate(docInstance("doc-1"), ontology.EmptyModel())

	assert.Equal(t, validate.StatusPassed, result.Status())
	assert.Empty(t, result.Violations)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, 2, result.TriplesValidated)
	assert.Equal(t, 1, result.InstancesValidated)
	assert.Equal(t, []string{
		validate.CheckClassMembership,
		validate.CheckPropertyDomains,
		validate.CheckCardinality,
	}, result.ChecksPerformed)
}

func TestValidate_NilModelTreatedAsEmpty(t *testing.T) {
	v := validate.New()

	result := v.Validate(docInstance("doc-1"), nil)
	assert.Equal(t, validate.StatusPassed, result.Status())
}

func TestValidate_UndefinedClassWarning(t *testing.T) {
	v := validate.New()

	subject := docgraph.NamespaceDocument + "x"
	triples := []rdf.Triple{
		rdf.NewResource(subject, docgraph.RDFType, docgraph.NamespaceOntology+"Unknown"),
	}

	result := v.Validate(triples, schemaModel())

	require.Len(t, result.Warnings, 1)
	issue := result.Warnings[0]
	assert.Equal(t, validate.KindUndefinedClass, issue.Kind)
	assert.Equal(t, subject, issue.Instance)
	assert.Equal(t, docgraph.NamespaceOntology+"Unknown", issue.Class)
	assert.Equal(t, validate.StatusWarning, result.Status())
}

func TestValidate_ClassOutsideNamespaceIgnored(t *testing.T) {
	v := validate.New()

	triples := []rdf.Triple{
		rdf.NewResource("http://example.com/x", docgraph.RDFType, "http://other.org/SomeClass"),
	}

	result := v.Validate(triples, schemaModel())
	assert.Empty(t, result.Warnings)
}

func TestValidate_DomainMismatchWarning(t *testing.T) {
	v := validate.New()

	// hasText declares TextChunk as its domain; the instance is a Document.
	triples := docInstance("doc-1",
		rdf.NewLiteral(docgraph.DocumentIRI("doc-1"), docgraph.PropHasText, "stray"))

	result := v.Validate(triples, schemaModel())

	require.Len(t, result.Warnings, 1)
	issue := result.Warnings[0]
	assert.Equal(t, validate.KindDomainMismatch, issue.Kind)
	assert.Equal(t, docgraph.PropHasText, issue.Property)
	assert.Equal(t, docgraph.ClassTextChunk, issue.ExpectedDomain)
	assert.Equal(t, []string{docgraph.ClassDocument}, issue.ActualTypes)
	assert.Equal(t, validate.StatusWarning, result.Status())
}

func TestValidate_DomainSatisfied(t *testing.T) {
	v := validate.New()

	result := v.Validate(docInstance("doc-1"), schemaModel())
	assert.Empty(t, result.Warnings)
	assert.Empty(t, result.Violations)
}

func TestValidate_CardinalityViolations(t *testing.T) {
	model := schemaModel()
	model.Restrictions = []ontology.Restriction{
		{
			Class:    docgraph.ClassDocument,
			Property: docgraph.PropHasID,
			Kind:     ontology.KindCardinality,
			Value:    "1",
		},
	}

	v := validate.New()

	t.Run("missing value", func(t *testing.T) {
		docIRI := docgraph.DocumentIRI("doc-1")
		triples := []rdf.Triple{
			rdf.NewResource(docIRI, docgraph.RDFType, docgraph.ClassDocument),
		}

		result := v.Validate(triples, model)
		require.Len(t, result.Violations, 1)
		issue := result.Violations[0]
		assert.Equal(t, validate.KindCardinalityViolation, issue.Kind)
		assert.Equal(t, 1, issue.Expected)
		assert.Equal(t, 0, issue.Actual)
		assert.Equal(t, validate.StatusFailed, result.Status())
	})

	t.Run("duplicate value", func(t *testing.T) {
		triples := docInstance("doc-1",
			rdf.NewLiteral(docgraph.DocumentIRI("doc-1"), docgraph.PropHasID, "doc-1-again"))

		result := v.Validate(triples, model)
		require.Len(t, result.Violations, 1)
		assert.Equal(t, 2, result.Violations[0].Actual)
	})

	t.Run("exactly one value", func(t *testing.T) {
		result := v.Validate(docInstance("doc-1"), model)
		assert.Empty(t, result.Violations)
		assert.Equal(t, validate.StatusPassed, result.Status())
	})
}

func TestValidate_MinCardinality(t *testing.T) {
	model := schemaModel()
	model.Restrictions = []ontology.Restriction{
		{
			Class:    docgraph.ClassDocument,
			Property: docgraph.PropHasChunk,
			Kind:     ontology.KindMinCardinality,
			Value:    "2",
		},
	}

	v := validate.New()

	chunkIRI := docgraph.ChunkIRI(docgraph.DocumentIRI("doc-1"), 0)
	triples := docInstance("doc-1",
		rdf.NewResource(docgraph.DocumentIRI("doc-1"), docgraph.PropHasChunk, chunkIRI))

	result := v.Validate(triples, model)
	require.Len(t, result.Violations, 1)
	issue := result.Violations[0]
	assert.Equal(t, validate.KindMinCardinalityViolation, issue.Kind)
	assert.Equal(t, 2, issue.MinExpected)
	assert.Zero(t, issue.Expected)
	assert.Equal(t, 1, issue.Actual)

	data, err := json.Marshal(issue)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"min_expected":2`)
	assert.NotContains(t, string(data), `"expected":`)
}

func TestValidate_UnenforcedRestrictionKinds(t *testing.T) {
	model := schemaModel()
	model.Restrictions = []ontology.Restriction{
		{Class: docgraph.ClassDocument, Property: docgraph.PropHasChunk, Kind: ontology.KindMaxCardinality, Value: "1"},
		{Class: docgraph.ClassDocument, Property: docgraph.PropHasChunk, Kind: ontology.KindAllValuesFrom, Value: docgraph.ClassTextChunk},
		{Class: docgraph.ClassDocument, Property: docgraph.PropHasChunk, Kind: ontology.KindSomeValuesFrom, Value: docgraph.ClassTextChunk},
	}

	v := validate.New()

	docIRI := docgraph.DocumentIRI("doc-1")
	chunk0 := docgraph.ChunkIRI(docIRI, 0)
	chunk1 := docgraph.ChunkIRI(docIRI, 1)
	triples := docInstance("doc-1",
		rdf.NewResource(docIRI, docgraph.PropHasChunk, chunk0),
		rdf.NewResource(docIRI, docgraph.PropHasChunk, chunk1))

	result := v.Validate(triples, model)
	assert.Empty(t, result.Violations)
	assert.Equal(t, validate.StatusPassed, result.Status())
}

func TestValidate_FailedOutranksWarning(t *testing.T) {
	model := schemaModel()
	model.Restrictions = []ontology.Restriction{
		{Class: docgraph.ClassDocument, Property: docgraph.PropHasID, Kind: ontology.KindCardinality, Value: "1"},
	}

	v := validate.New()

	docIRI := docgraph.DocumentIRI("doc-1")
	triples := []rdf.Triple{
		rdf.NewResource(docIRI, docgraph.RDFType, docgraph.ClassDocument),
		rdf.NewLiteral(docIRI, docgraph.PropHasText, "stray"),
	}

	result := v.Validate(triples, model)
	assert.NotEmpty(t, result.Violations)
	assert.NotEmpty(t, result.Warnings)
	assert.Equal(t, validate.StatusFailed, result.Status())
}
