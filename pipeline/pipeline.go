// Package pipeline orchestrates document ingestion and graph validation:
// chunking, triple generation, serialization, staging, schema validation,
// and knowledge graph publishing.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/c360studio/semstreams/natsclient"

	"github.com/c360studio/docgraph/config"
	"github.com/c360studio/docgraph/graph"
	"github.com/c360studio/docgraph/ontology"
	"github.com/c360studio/docgraph/rdf"
	"github.com/c360studio/docgraph/source"
	"github.com/c360studio/docgraph/source/chunker"
	"github.com/c360studio/docgraph/storage"
	"github.com/c360studio/docgraph/validate"
)

// Stage names reported in State.
const (
	StageIngest   = "ingest"
	StageValidate = "validate"
)

// State is the pass-through record carried between pipeline stages. It
// accumulates fields as stages run and is what callers (CLI, watcher)
// report on.
type State struct {
	DocumentID       string            `json:"documentId"`
	FileName         string            `json:"fileName"`
	ChunkCount       int               `json:"chunkCount"`
	Metadata         map[string]string `json:"metadata,omitempty"`
	RDFKey           string            `json:"rdfKey,omitempty"`
	TripleCount      int               `json:"tripleCount"`
	DroppedLines     int               `json:"droppedLines,omitempty"`
	ValidationStatus validate.Status   `json:"validationStatus,omitempty"`
	Violations       int               `json:"violations"`
	Warnings         int               `json:"warnings"`
	Success          bool              `json:"success"`
	Error            string            `json:"error,omitempty"`
	Stage            string            `json:"stage"`
}

// Pipeline wires the document-to-graph stages together.
type Pipeline struct {
	cfg       *config.Config
	store     storage.Store
	chunker   *chunker.Chunker
	builder   *rdf.Builder
	parser    *rdf.Parser
	ser       *rdf.Serializer
	validator *validate.Validator
	ontology  *ontology.Client
	nats      *natsclient.Client
	logger    *slog.Logger
	metrics   *Metrics
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithNATS attaches a NATS client for knowledge graph publishing. A nil
// client disables publishing.
func WithNATS(nc *natsclient.Client) Option {
	return func(p *Pipeline) { p.nats = nc }
}

// WithOntologyClient overrides the SPARQL client used to fetch the schema.
func WithOntologyClient(c *ontology.Client) Option {
	return func(p *Pipeline) { p.ontology = c }
}

// WithLogger sets the pipeline logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// WithMetrics registers pipeline metrics with the given registry.
func WithMetrics(m *Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// New creates a Pipeline from configuration.
func New(cfg *config.Config, store storage.Store, opts ...Option) (*Pipeline, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline config: %w", err)
	}
	if store == nil {
		return nil, fmt.Errorf("staging store is required")
	}

	ck, err := chunker.New(chunker.Config{
		ChunkSize: cfg.Chunking.ChunkSize,
		Overlap:   cfg.Chunking.Overlap,
	})
	if err != nil {
		return nil, fmt.Errorf("invalid chunking config: %w", err)
	}

	p := &Pipeline{
		cfg:       cfg,
		store:     store,
		chunker:   ck,
		builder:   rdf.NewBuilder(),
		parser:    rdf.NewParser(),
		ser:       rdf.NewSerializer(),
		validator: validate.New(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.ontology == nil && cfg.Ontology.Endpoint != "" {
		p.ontology = ontology.NewClient(cfg.Ontology.Endpoint,
			ontology.WithLogger(p.logger),
			ontology.WithHTTPClient(&http.Client{Timeout: cfg.Ontology.Timeout}),
		)
	}

	return p, nil
}

// exportFormat maps the configured format name to a serializer format.
func (p *Pipeline) exportFormat() rdf.Format {
	if p.cfg.RDF.Format == "ntriples" {
		return rdf.FormatNTriples
	}
	return rdf.FormatTurtle
}

// Ingest runs the ingestion stage for a loaded document: chunk the text,
// generate triples, serialize, stage the graph, and publish the document
// record. The staged N-Triples form is what Validate later consumes.
func (p *Pipeline) Ingest(ctx context.Context, doc *source.Document) (*State, error) {
	state := &State{
		DocumentID: doc.ID,
		FileName:   doc.FileName,
		Metadata:   doc.Metadata,
		Stage:      StageIngest,
	}

	start := time.Now()
	chunks := p.chunker.Chunk(doc.Content)
	state.ChunkCount = len(chunks)

	triples, err := p.builder.Build(rdf.BuildInput{
		DocumentID: doc.ID,
		Text:       doc.Content,
		Chunks:     chunks,
		Metadata:   doc.Metadata,
		FileName:   doc.FileName,
	})
	if err != nil {
		state.Error = err.Error()
		p.metrics.recordIngest(false, 0, time.Since(start))
		return state, fmt.Errorf("failed to build triples: %w", err)
	}
	state.TripleCount = len(triples)

	export, err := p.ser.Serialize(triples, p.exportFormat())
	if err != nil {
		state.Error = err.Error()
		p.metrics.recordIngest(false, 0, time.Since(start))
		return state, fmt.Errorf("failed to serialize graph: %w", err)
	}

	// The fully-qualified form is always staged alongside the export so
	// the validation stage can re-parse it line by line.
	ntriples, err := p.ser.Serialize(triples, rdf.FormatNTriples)
	if err != nil {
		state.Error = err.Error()
		p.metrics.recordIngest(false, 0, time.Since(start))
		return state, fmt.Errorf("failed to serialize graph: %w", err)
	}

	meta := map[string]string{
		"documentId":     doc.ID,
		"fileName":       doc.FileName,
		"format":         p.cfg.RDF.Format,
		"schema_version": p.cfg.RDF.SchemaVersion,
		"tripleCount":    fmt.Sprintf("%d", len(triples)),
	}

	exportKey := storage.StagingKey(doc.ID, exportExt(p.exportFormat()))
	if err := p.store.Put(ctx, exportKey, []byte(export), meta); err != nil {
		state.Error = err.Error()
		p.metrics.recordIngest(false, 0, time.Since(start))
		return state, fmt.Errorf("failed to stage graph: %w", err)
	}

	ntKey := storage.StagingKey(doc.ID, "nt")
	if exportKey != ntKey {
		if err := p.store.Put(ctx, ntKey, []byte(ntriples), meta); err != nil {
			state.Error = err.Error()
			p.metrics.recordIngest(false, 0, time.Since(start))
			return state, fmt.Errorf("failed to stage graph: %w", err)
		}
	}
	state.RDFKey = exportKey

	if err := graph.PublishDocument(ctx, p.nats, graph.DocumentRecord{
		DocumentID:  doc.ID,
		FileName:    doc.FileName,
		ChunkCount:  len(chunks),
		TripleCount: len(triples),
		RDFKey:      exportKey,
		CreatedAt:   doc.IngestedAt,
	}); err != nil {
		// Publishing is best-effort; the staged graph is the durable output.
		p.logger.Warn("Failed to publish document record",
			"document_id", doc.ID, "error", err)
	}

	state.Success = true
	p.metrics.recordIngest(true, len(triples), time.Since(start))
	p.logger.Info("Document ingested",
		"document_id", doc.ID,
		"file_name", doc.FileName,
		"chunks", len(chunks),
		"triples", len(triples),
		"rdf_key", exportKey)

	return state, nil
}

// Validate runs the validation stage for a previously staged document:
// load the staged N-Triples graph, parse it, fetch the ontology schema,
// and validate. A missing document is a fatal input error; a degraded
// schema fetch validates against the empty schema.
func (p *Pipeline) Validate(ctx context.Context, documentID string) (*State, error) {
	state := &State{
		DocumentID: documentID,
		Stage:      StageValidate,
	}

	start := time.Now()
	key := storage.StagingKey(documentID, "nt")
	data, err := p.store.Get(ctx, key)
	if err != nil {
		state.Error = err.Error()
		p.metrics.recordValidation("error", time.Since(start))
		return state, fmt.Errorf("failed to load staged graph for %s: %w", documentID, err)
	}

	triples, stats := p.parser.Parse(string(data))
	state.TripleCount = stats.Parsed
	state.DroppedLines = stats.Dropped
	if stats.Dropped > 0 {
		p.metrics.recordDroppedLines(stats.Dropped)
		p.logger.Warn("Dropped unparseable statements",
			"document_id", documentID, "dropped", stats.Dropped)
	}

	model := ontology.EmptyModel()
	if p.ontology != nil {
		model = p.ontology.FetchModel(ctx)
		if model.IsEmpty() {
			p.metrics.recordSchemaFallback()
		}
	}

	result := p.validator.Validate(triples, model)
	state.ValidationStatus = result.Status()
	state.Violations = len(result.Violations)
	state.Warnings = len(result.Warnings)
	state.Success = result.Status() != validate.StatusFailed

	if err := graph.PublishValidation(ctx, p.nats, documentID, result); err != nil {
		p.logger.Warn("Failed to publish validation outcome",
			"document_id", documentID, "error", err)
	}

	p.metrics.recordValidation(string(result.Status()), time.Since(start))
	p.logger.Info("Document validated",
		"document_id", documentID,
		"status", result.Status(),
		"violations", len(result.Violations),
		"warnings", len(result.Warnings),
		"instances", result.InstancesValidated)

	if !state.Success {
		return state, fmt.Errorf("validation failed for %s: %d violations",
			documentID, len(result.Violations))
	}
	return state, nil
}

// Run executes both stages back to back.
func (p *Pipeline) Run(ctx context.Context, doc *source.Document) (*State, error) {
	if _, err := p.Ingest(ctx, doc); err != nil {
		return nil, err
	}
	return p.Validate(ctx, doc.ID)
}

func exportExt(f rdf.Format) string {
	if f == rdf.FormatNTriples {
		return "nt"
	}
	return "ttl"
}
