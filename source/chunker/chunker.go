// Package chunker splits document text into overlapping chunks for graph
// construction and embedding generation.
package chunker

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/c360studio/docgraph/source"
)

// whitespaceRe collapses runs of whitespace before chunking so offsets are
// stable against formatting differences.
var whitespaceRe = regexp.MustCompile(`\s+`)

// sentenceEnders are the boundaries the chunker prefers to break at.
var sentenceEnders = []string{". ", "! ", "? "}

// Config holds chunking configuration.
type Config struct {
	// ChunkSize is the maximum characters per chunk.
	ChunkSize int

	// Overlap is the number of characters shared between adjacent chunks.
	Overlap int
}

// DefaultConfig returns sensible chunking defaults.
func DefaultConfig() Config {
	return Config{
		ChunkSize: 1000,
		Overlap:   100,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("ChunkSize must be positive, got %d", c.ChunkSize)
	}
	if c.Overlap < 0 {
		return fmt.Errorf("Overlap must not be negative, got %d", c.Overlap)
	}
	if c.Overlap >= c.ChunkSize {
		return fmt.Errorf("Overlap (%d) must be less than ChunkSize (%d)", c.Overlap, c.ChunkSize)
	}
	return nil
}

// Chunker splits document text into chunks.
type Chunker struct {
	config Config
}

// New creates a new Chunker with the given configuration.
// Returns an error if the configuration is invalid.
func New(cfg Config) (*Chunker, error) {
	if cfg.ChunkSize == 0 {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Chunker{config: cfg}, nil
}

// MustNew creates a new Chunker, panicking on invalid config.
// Use for known-good configurations.
func MustNew(cfg Config) *Chunker {
	c, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return c
}

// NewDefault creates a Chunker with default configuration.
func NewDefault() *Chunker {
	return MustNew(DefaultConfig())
}

// Chunk splits text into overlapping chunks, preferring sentence boundaries.
// Whitespace runs are collapsed first, so chunk offsets refer to the cleaned
// text. A document that fits the window produces a single chunk.
func (c *Chunker) Chunk(text string) []source.Chunk {
	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	if text == "" {
		return nil
	}

	if len(text) <= c.config.ChunkSize {
		return []source.Chunk{{
			ChunkID:       0,
			Text:          text,
			StartPosition: 0,
			EndPosition:   len(text),
			Length:        len(text),
		}}
	}

	var chunks []source.Chunk
	start := 0
	chunkID := 0

	for start < len(text) {
		end := min(start+c.config.ChunkSize, len(text))

		if end < len(text) {
			if boundary := lastSentenceEnd(text, start, end); boundary >= 0 {
				end = boundary + 1
			}
		}

		chunkText := strings.TrimSpace(text[start:end])
		if chunkText != "" {
			chunks = append(chunks, source.Chunk{
				ChunkID:       chunkID,
				Text:          chunkText,
				StartPosition: start,
				EndPosition:   end,
				Length:        len(chunkText),
			})
			chunkID++
		}

		if end < len(text) {
			next := end - c.config.Overlap
			if next <= start {
				next = end
			}
			start = next
		} else {
			start = len(text)
		}
	}

	return chunks
}

// lastSentenceEnd finds the last sentence-ending punctuation in
// text[start:end], returning its index in text or -1.
func lastSentenceEnd(text string, start, end int) int {
	for _, punct := range sentenceEnders {
		if idx := strings.LastIndex(text[start:end], punct); idx >= 0 {
			return start + idx
		}
	}
	return -1
}
