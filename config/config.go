// Package config provides configuration loading and management for Docgraph.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Config represents the complete Docgraph configuration.
type Config struct {
	RDF      RDFConfig      `yaml:"rdf"`
	Chunking ChunkingConfig `yaml:"chunking"`
	Ontology OntologyConfig `yaml:"ontology"`
	Staging  StagingConfig  `yaml:"staging"`
	Ingest   IngestConfig   `yaml:"ingest"`
	NATS     NATSConfig     `yaml:"nats"`
}

// RDFConfig configures graph serialization.
type RDFConfig struct {
	// Format is the export serialization: "turtle" or "ntriples".
	// Validation always stages the ntriples form alongside it.
	Format string `yaml:"format"`
	// SchemaVersion tags staged graphs with the ontology schema version.
	SchemaVersion string `yaml:"schema_version"`
}

// ChunkingConfig configures document chunking.
type ChunkingConfig struct {
	// ChunkSize is the maximum characters per chunk.
	ChunkSize int `yaml:"chunk_size"`
	// Overlap is the number of characters shared between adjacent chunks.
	Overlap int `yaml:"overlap"`
}

// OntologyConfig configures the schema endpoint.
type OntologyConfig struct {
	// Endpoint is the SPARQL query endpoint URL (empty = validate against
	// the empty schema).
	Endpoint string `yaml:"endpoint"`
	// Timeout is the per-query timeout.
	Timeout time.Duration `yaml:"timeout"`
}

// StagingConfig configures the serialized graph store.
type StagingConfig struct {
	// Dir is the staging root directory.
	Dir string `yaml:"dir"`
}

// IngestConfig configures file ingestion.
type IngestConfig struct {
	// Include lists doublestar glob patterns for ingestable files.
	Include []string `yaml:"include"`
}

// NATSConfig configures the knowledge-graph connection.
type NATSConfig struct {
	// URL is the NATS server URL (empty = skip graph publishing).
	URL string `yaml:"url"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		RDF: RDFConfig{
			Format:        "turtle",
			SchemaVersion: "1.0",
		},
		Chunking: ChunkingConfig{
			ChunkSize: 1000,
			Overlap:   100,
		},
		Ontology: OntologyConfig{
			Endpoint: "",
			Timeout:  30 * time.Second,
		},
		Staging: StagingConfig{
			Dir: ".docgraph/staging",
		},
		Ingest: IngestConfig{
			Include: []string{"**/*.txt", "**/*.md", "**/*.csv"},
		},
		NATS: NATSConfig{
			URL: "",
		},
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	switch c.RDF.Format {
	case "turtle", "ntriples":
	default:
		return fmt.Errorf("rdf.format must be turtle or ntriples, got %q", c.RDF.Format)
	}
	if c.Chunking.ChunkSize <= 0 {
		return fmt.Errorf("chunking.chunk_size must be positive")
	}
	if c.Chunking.Overlap < 0 || c.Chunking.Overlap >= c.Chunking.ChunkSize {
		return fmt.Errorf("chunking.overlap must be in [0, chunk_size)")
	}
	if c.Staging.Dir == "" {
		return fmt.Errorf("staging.dir is required")
	}
	for _, pattern := range c.Ingest.Include {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid ingest.include pattern: %s", pattern)
		}
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	// Ensure parent directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// RDF
	if other.RDF.Format != "" {
		c.RDF.Format = other.RDF.Format
	}
	if other.RDF.SchemaVersion != "" {
		c.RDF.SchemaVersion = other.RDF.SchemaVersion
	}

	// Chunking
	if other.Chunking.ChunkSize != 0 {
		c.Chunking.ChunkSize = other.Chunking.ChunkSize
	}
	if other.Chunking.Overlap != 0 {
		c.Chunking.Overlap = other.Chunking.Overlap
	}

	// Ontology
	if other.Ontology.Endpoint != "" {
		c.Ontology.Endpoint = other.Ontology.Endpoint
	}
	if other.Ontology.Timeout != 0 {
		c.Ontology.Timeout = other.Ontology.Timeout
	}

	// Staging
	if other.Staging.Dir != "" {
		c.Staging.Dir = other.Staging.Dir
	}

	// Ingest
	if len(other.Ingest.Include) > 0 {
		c.Ingest.Include = other.Ingest.Include
	}

	// NATS
	if other.NATS.URL != "" {
		c.NATS.URL = other.NATS.URL
	}
}

// Ingestable reports whether a path matches any ingest include pattern.
func (c *Config) Ingestable(path string) bool {
	for _, pattern := range c.Ingest.Include {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}
