// Package source provides types and loaders for document ingestion.
package source

import "time"

// Metadata keys recognized by the graph builder. Values under other keys are
// carried through untouched.
const (
	// MetaKeywords is a comma-separated keyword list.
	MetaKeywords = "keywords"

	// MetaDocumentType classifies the document (sop, spec, reference, ...).
	MetaDocumentType = "documentType"

	// MetaAuthor names the document author.
	MetaAuthor = "author"
)

// Document represents an ingested document ready for graph construction.
type Document struct {
	// ID is the unique document identifier.
	ID string `json:"documentId"`

	// FileName is the original file name.
	FileName string `json:"fileName"`

	// Content is the full extracted text.
	Content string `json:"textContent"`

	// Metadata carries extraction-stage metadata (keywords, author, type).
	Metadata map[string]string `json:"metadata,omitempty"`

	// IngestedAt is when the document entered the pipeline.
	IngestedAt time.Time `json:"ingestedAt"`
}

// Chunk is one text segment of a document.
type Chunk struct {
	// ChunkID is the 0-based ordinal of this chunk within its document.
	ChunkID int `json:"chunkId"`

	// Text is the chunk content.
	Text string `json:"text"`

	// StartPosition is the character offset of the chunk in the cleaned text.
	StartPosition int `json:"startPosition"`

	// EndPosition is the character offset one past the end of the chunk.
	EndPosition int `json:"endPosition"`

	// Length is the length of Text in characters.
	Length int `json:"length"`
}
