package rdf_test

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/docgraph/rdf"
	"github.com/c360studio/docgraph/source"
	"github.com/c360studio/docgraph/vocabulary/docgraph"
)

func fixedClock() time.Time {
	return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
}

func TestBuild_RequiresDocumentID(t *testing.T) {
	b := rdf.NewBuilder()

	_, err := b.Build(rdf.BuildInput{Text: "some text"})
	require.ErrorIs(t, err, rdf.ErrMissingDocumentID)
}

func TestBuild_DocumentBlock(t *testing.T) {
	b := rdf.NewBuilder(rdf.WithClock(fixedClock))

	triples, err := b.Build(rdf.BuildInput{
		DocumentID: "doc-1",
		Text:       "Hello world",
		FileName:   "hello.txt",
	})
	require.NoError(t, err)
	require.Len(t, triples, 5)

	docIRI := docgraph.DocumentIRI("doc-1")

	assert.Equal(t, rdf.NewResource(docIRI, docgraph.RDFType, docgraph.ClassDocument), triples[0])
	assert.Equal(t, rdf.NewLiteral(docIRI, docgraph.PropHasID, "doc-1"), triples[1])
	assert.Equal(t, rdf.NewLiteral(docIRI, docgraph.PropHasFileName, "hello.txt"), triples[2])
	assert.Equal(t, rdf.NewTypedLiteral(docIRI, docgraph.PropHasTextLength, "11", docgraph.XSDInteger), triples[3])
	assert.Equal(t, rdf.NewTypedLiteral(docIRI, docgraph.PropCreatedAt, "2026-03-15T12:00:00Z", docgraph.XSDDateTime), triples[4])
}

func TestBuild_KeywordTriples(t *testing.T) {
	b := rdf.NewBuilder(rdf.WithClock(fixedClock))

	triples, err := b.Build(rdf.BuildInput{
		DocumentID: "doc-1",
		Text:       "text",
		Metadata: map[string]string{
			source.MetaKeywords: "graphs, ontology, , validation",
		},
	})
	require.NoError(t, err)

	// 5 document triples plus 3 per keyword; the empty entry is skipped.
	assert.Len(t, triples, 5+3*3)

	kwIRI := docgraph.EntityIRI("ontology")
	assert.Contains(t, triples, rdf.NewResource(kwIRI, docgraph.RDFType, docgraph.ClassKeyword))
	assert.Contains(t, triples, rdf.NewLiteral(kwIRI, docgraph.PropHasValue, "ontology"))
	assert.Contains(t, triples, rdf.NewResource(docgraph.DocumentIRI("doc-1"), docgraph.PropHasKeyword, kwIRI))
}

func TestBuild_AuthorAndTypeMetadata(t *testing.T) {
	b := rdf.NewBuilder(rdf.WithClock(fixedClock))

	triples, err := b.Build(rdf.BuildInput{
		DocumentID: "doc-1",
		Text:       "text",
		Metadata: map[string]string{
			source.MetaDocumentType: "report",
			source.MetaAuthor:       "Ada Lovelace",
		},
	})
	require.NoError(t, err)

	// 5 document triples, 1 documentType, 3 author.
	assert.Len(t, triples, 9)

	docIRI := docgraph.DocumentIRI("doc-1")
	authorIRI := docgraph.EntityIRI("Ada Lovelace")
	assert.Contains(t, triples, rdf.NewLiteral(docIRI, docgraph.PropHasType, "report"))
	assert.Contains(t, triples, rdf.NewResource(authorIRI, docgraph.RDFType, docgraph.ClassAuthor))
	assert.Contains(t, triples, rdf.NewLiteral(authorIRI, docgraph.PropHasName, "Ada Lovelace"))
	assert.Contains(t, triples, rdf.NewResource(docIRI, docgraph.PropHasAuthor, authorIRI))
}

func TestBuild_ChunkBlockWithMentions(t *testing.T) {
	b := rdf.NewBuilder(rdf.WithClock(fixedClock))

	triples, err := b.Build(rdf.BuildInput{
		DocumentID: "doc-1",
		Text:       "Hello Acme Corp today",
		Chunks: []source.Chunk{
			{ChunkID: 0, Text: "Hello Acme Corp today", StartPosition: 0, EndPosition: 21, Length: 21},
		},
	})
	require.NoError(t, err)

	docIRI := docgraph.DocumentIRI("doc-1")
	chunkIRI := docgraph.ChunkIRI(docIRI, 0)

	// 5 document triples, 6 chunk triples, 3 per mention (Hello, Acme, Corp).
	assert.Len(t, triples, 5+6+3*3)

	assert.Contains(t, triples, rdf.NewResource(chunkIRI, docgraph.RDFType, docgraph.ClassTextChunk))
	assert.Contains(t, triples, rdf.NewTypedLiteral(chunkIRI, docgraph.PropHasChunkID, "0", docgraph.XSDInteger))
	assert.Contains(t, triples, rdf.NewResource(docIRI, docgraph.PropHasChunk, chunkIRI))

	for _, mention := range []string{"Hello", "Acme", "Corp"} {
		mentionIRI := docgraph.EntityIRI(mention)
		assert.Contains(t, triples, rdf.NewResource(mentionIRI, docgraph.RDFType, docgraph.ClassEntity))
		assert.Contains(t, triples, rdf.NewLiteral(mentionIRI, docgraph.PropHasValue, mention))
		assert.Contains(t, triples, rdf.NewResource(chunkIRI, docgraph.PropMentions, mentionIRI))
	}
}

func TestBuild_TruncatesStoredChunkText(t *testing.T) {
	b := rdf.NewBuilder(rdf.WithClock(fixedClock))

	longText := strings.Repeat("a", 600) + " Verylongentityname"
	triples, err := b.Build(rdf.BuildInput{
		DocumentID: "doc-1",
		Text:       longText,
		Chunks: []source.Chunk{
			{ChunkID: 0, Text: longText, StartPosition: 0, EndPosition: len(longText), Length: len(longText)},
		},
	})
	require.NoError(t, err)

	var stored string
	for _, tr := range triples {
		if tr.Predicate == docgraph.PropHasText {
			stored = tr.Object.Value
		}
	}
	assert.Len(t, stored, 500)

	// Mention extraction runs on the full chunk text, past the stored bound.
	mentionIRI := docgraph.EntityIRI("Verylongentityname")
	chunkIRI := docgraph.ChunkIRI(docgraph.DocumentIRI("doc-1"), 0)
	assert.Contains(t, triples, rdf.NewResource(chunkIRI, docgraph.PropMentions, mentionIRI))
}

func TestBuild_TruncatesOnRuneBoundary(t *testing.T) {
	b := rdf.NewBuilder(rdf.WithClock(fixedClock))

	// A multi-byte rune straddles the 500-character bound.
	text := strings.Repeat("a", 499) + "é…"
	triples, err := b.Build(rdf.BuildInput{
		DocumentID: "doc-1",
		Text:       text,
		Chunks: []source.Chunk{
			{ChunkID: 0, Text: text, StartPosition: 0, EndPosition: len(text), Length: len(text)},
		},
	})
	require.NoError(t, err)

	var stored string
	for _, tr := range triples {
		if tr.Predicate == docgraph.PropHasText {
			stored = tr.Object.Value
		}
	}
	assert.True(t, utf8.ValidString(stored))
	assert.Equal(t, 500, utf8.RuneCountInString(stored))
	assert.True(t, strings.HasSuffix(stored, "é"))
}

func TestBuild_TextLengthCountsRunes(t *testing.T) {
	b := rdf.NewBuilder(rdf.WithClock(fixedClock))

	triples, err := b.Build(rdf.BuildInput{
		DocumentID: "doc-1",
		Text:       "héllo", // 5 runes, 6 bytes
	})
	require.NoError(t, err)

	docIRI := docgraph.DocumentIRI("doc-1")
	assert.Contains(t, triples,
		rdf.NewTypedLiteral(docIRI, docgraph.PropHasTextLength, "5", docgraph.XSDInteger))
}

func TestBuild_EscapesLiteralValues(t *testing.T) {
	b := rdf.NewBuilder(rdf.WithClock(fixedClock))

	triples, err := b.Build(rdf.BuildInput{
		DocumentID: "doc-1",
		Text:       "text",
		FileName:   `report "final".txt`,
	})
	require.NoError(t, err)

	docIRI := docgraph.DocumentIRI("doc-1")
	assert.Contains(t, triples, rdf.NewLiteral(docIRI, docgraph.PropHasFileName, `report \"final\".txt`))
}
