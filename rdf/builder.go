package rdf

import (
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/c360studio/docgraph/extract"
	"github.com/c360studio/docgraph/source"
	"github.com/c360studio/docgraph/vocabulary/docgraph"
)

// ErrMissingDocumentID is returned when a build is attempted without a
// document identifier.
var ErrMissingDocumentID = errors.New("document ID is required")

// maxChunkTextChars bounds the chunk text stored in the graph.
const maxChunkTextChars = 500

// BuildInput carries everything the builder needs for one document.
type BuildInput struct {
	DocumentID string
	Text       string
	Chunks     []source.Chunk
	Metadata   map[string]string
	FileName   string
}

// Builder converts a document and its chunks into an ordered sequence of
// triples following the Docgraph ontology.
//
// The clock and the mention extractor are injected so builds are
// reproducible in tests; the creation timestamp is the one inherently
// time-of-call value in the output.
type Builder struct {
	clock     func() time.Time
	extractor extract.Extractor
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithClock overrides the timestamp source used for the createdAt literal.
func WithClock(clock func() time.Time) BuilderOption {
	return func(b *Builder) { b.clock = clock }
}

// WithExtractor overrides the entity mention extractor.
func WithExtractor(e extract.Extractor) BuilderOption {
	return func(b *Builder) { b.extractor = e }
}

// NewBuilder creates a Builder. By default it uses time.Now (UTC) and the
// capitalized-word mention extractor.
func NewBuilder(opts ...BuilderOption) *Builder {
	b := &Builder{
		clock:     func() time.Time { return time.Now().UTC() },
		extractor: extract.NewCapitalizedWords(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build produces the document's graph as an ordered triple sequence:
// the document block first, then metadata-derived nodes, then one block per
// chunk with its entity mentions. Order matters only for serialization
// grouping, not semantics.
func (b *Builder) Build(in BuildInput) ([]Triple, error) {
	if in.DocumentID == "" {
		return nil, ErrMissingDocumentID
	}

	docIRI := docgraph.DocumentIRI(in.DocumentID)
	triples := b.documentTriples(docIRI, in)
	triples = append(triples, b.metadataTriples(docIRI, in.Metadata)...)

	for _, chunk := range in.Chunks {
		triples = append(triples, b.chunkTriples(docIRI, chunk)...)
	}

	return triples, nil
}

// documentTriples emits the fixed document-node block.
func (b *Builder) documentTriples(docIRI string, in BuildInput) []Triple {
	return []Triple{
		NewResource(docIRI, docgraph.RDFType, docgraph.ClassDocument),
		NewLiteral(docIRI, docgraph.PropHasID, in.DocumentID),
		NewLiteral(docIRI, docgraph.PropHasFileName, EscapeLiteral(in.FileName)),
		NewTypedLiteral(docIRI, docgraph.PropHasTextLength,
			strconv.Itoa(utf8.RuneCountInString(in.Text)), docgraph.XSDInteger),
		NewTypedLiteral(docIRI, docgraph.PropCreatedAt,
			b.clock().Format(time.RFC3339), docgraph.XSDDateTime),
	}
}

// metadataTriples emits keyword, document-type, and author statements.
// Missing or empty metadata fields skip their block; repeated identical
// keywords re-emit the same node's triples, which is harmless because the
// node IRI is value-derived.
func (b *Builder) metadataTriples(docIRI string, metadata map[string]string) []Triple {
	var triples []Triple

	if keywords := metadata[source.MetaKeywords]; keywords != "" {
		for _, raw := range strings.Split(keywords, ",") {
			keyword := strings.TrimSpace(raw)
			if keyword == "" {
				continue
			}
			keywordIRI := docgraph.EntityIRI(keyword)
			triples = append(triples,
				NewResource(keywordIRI, docgraph.RDFType, docgraph.ClassKeyword),
				NewLiteral(keywordIRI, docgraph.PropHasValue, EscapeLiteral(keyword)),
				NewResource(docIRI, docgraph.PropHasKeyword, keywordIRI),
			)
		}
	}

	if docType := metadata[source.MetaDocumentType]; docType != "" {
		triples = append(triples,
			NewLiteral(docIRI, docgraph.PropHasType, EscapeLiteral(docType)))
	}

	if author := metadata[source.MetaAuthor]; author != "" {
		authorIRI := docgraph.EntityIRI(author)
		triples = append(triples,
			NewResource(authorIRI, docgraph.RDFType, docgraph.ClassAuthor),
			NewLiteral(authorIRI, docgraph.PropHasName, EscapeLiteral(author)),
			NewResource(docIRI, docgraph.PropHasAuthor, authorIRI),
		)
	}

	return triples
}

// chunkTriples emits the chunk-node block and its entity mentions. Mention
// extraction runs on the untruncated chunk text; only the stored hasText
// literal is bounded.
func (b *Builder) chunkTriples(docIRI string, chunk source.Chunk) []Triple {
	chunkIRI := docgraph.ChunkIRI(docIRI, chunk.ChunkID)

	// Truncate on rune boundaries so the stored literal stays valid UTF-8.
	text := chunk.Text
	if len(text) > maxChunkTextChars {
		if runes := []rune(text); len(runes) > maxChunkTextChars {
			text = string(runes[:maxChunkTextChars])
		}
	}

	triples := []Triple{
		NewResource(chunkIRI, docgraph.RDFType, docgraph.ClassTextChunk),
		NewTypedLiteral(chunkIRI, docgraph.PropHasChunkID,
			strconv.Itoa(chunk.ChunkID), docgraph.XSDInteger),
		NewLiteral(chunkIRI, docgraph.PropHasText, EscapeLiteral(text)),
		NewTypedLiteral(chunkIRI, docgraph.PropHasStartPosition,
			strconv.Itoa(chunk.StartPosition), docgraph.XSDInteger),
		NewTypedLiteral(chunkIRI, docgraph.PropHasLength,
			strconv.Itoa(chunk.Length), docgraph.XSDInteger),
		NewResource(docIRI, docgraph.PropHasChunk, chunkIRI),
	}

	for _, mention := range b.extractor.Mentions(chunk.Text) {
		mentionIRI := docgraph.EntityIRI(mention)
		triples = append(triples,
			NewResource(mentionIRI, docgraph.RDFType, docgraph.ClassEntity),
			NewLiteral(mentionIRI, docgraph.PropHasValue, EscapeLiteral(mention)),
			NewResource(chunkIRI, docgraph.PropMentions, mentionIRI),
		)
	}

	return triples
}
