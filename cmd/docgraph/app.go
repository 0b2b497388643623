package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/c360studio/semstreams/natsclient"
	"github.com/spf13/cobra"

	"github.com/c360studio/docgraph/config"
	"github.com/c360studio/docgraph/pipeline"
	"github.com/c360studio/docgraph/source"
	"github.com/c360studio/docgraph/source/weburl"
	"github.com/c360studio/docgraph/storage"
)

const webFetchTimeout = 30 * time.Second

// app bundles the wired pipeline and its supporting clients for one
// command invocation.
type app struct {
	cfg      *config.Config
	store    *storage.FileStore
	pipeline *pipeline.Pipeline
	nats     *natsclient.Client
	logger   *slog.Logger
}

// newApp loads configuration and wires the pipeline. NATS is connected
// only when a URL is configured; without it the pipeline runs locally.
func newApp(ctx context.Context, configPath, logLevel string) (*app, error) {
	logger := setupLogging(logLevel)

	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
	} else {
		cfg, err = config.NewLoader(logger).Load()
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	store, err := storage.NewFileStore(cfg.Staging.Dir)
	if err != nil {
		return nil, fmt.Errorf("open staging store: %w", err)
	}

	var nc *natsclient.Client
	if cfg.NATS.URL != "" {
		nc, err = connectToNATS(ctx, cfg.NATS.URL, logger)
		if err != nil {
			return nil, err
		}
	}

	p, err := pipeline.New(cfg, store,
		pipeline.WithLogger(logger),
		pipeline.WithNATS(nc),
	)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		store:    store,
		pipeline: p,
		nats:     nc,
		logger:   logger,
	}, nil
}

// close releases the app's connections.
func (a *app) close(ctx context.Context) {
	if a.nats != nil {
		a.nats.Close(ctx)
	}
}

func ingestCmd(configPath, logLevel *string) *cobra.Command {
	var skipValidation bool

	cmd := &cobra.Command{
		Use:   "ingest <file|url>",
		Short: "Ingest a document and stage its graph",
		Long: `Ingest a document file (.txt, .md, .csv) or an HTTPS URL: chunk the
text, generate RDF triples, stage the serialized graph, and validate it
against the configured ontology schema.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, *configPath, *logLevel)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			doc, err := a.loadDocument(ctx, args[0])
			if err != nil {
				return err
			}

			var state *pipeline.State
			if skipValidation {
				state, err = a.pipeline.Ingest(ctx, doc)
			} else {
				state, err = a.pipeline.Run(ctx, doc)
			}
			printState(state)
			return err
		},
	}

	cmd.Flags().BoolVar(&skipValidation, "skip-validation", false, "Stage the graph without validating it")

	return cmd
}

func validateCmd(configPath, logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <document-id>",
		Short: "Validate a previously staged graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, *configPath, *logLevel)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			state, err := a.pipeline.Validate(ctx, args[0])
			printState(state)
			return err
		},
	}
}

func watchCmd(configPath, logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the staging directory and validate new graphs",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			a, err := newApp(ctx, *configPath, *logLevel)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			w, err := pipeline.NewWatcher(a.pipeline, a.store.Root(), a.logger)
			if err != nil {
				return err
			}
			if err := w.Start(ctx); err != nil {
				return err
			}
			defer func() { _ = w.Stop() }()

			for {
				select {
				case <-ctx.Done():
					a.logger.Info("Received shutdown signal")
					return nil
				case state, ok := <-w.Results():
					if !ok {
						return nil
					}
					printState(state)
				}
			}
		},
	}
}

// loadDocument loads a document from a local file or an HTTPS URL.
func (a *app) loadDocument(ctx context.Context, arg string) (*source.Document, error) {
	if strings.HasPrefix(arg, "http://") || strings.HasPrefix(arg, "https://") {
		return a.fetchWebDocument(ctx, arg)
	}

	if !a.cfg.Ingestable(filepath.ToSlash(arg)) {
		a.logger.Warn("Path does not match ingest include patterns",
			"path", arg, "patterns", a.cfg.Ingest.Include)
	}

	return source.Load(arg)
}

// fetchWebDocument fetches a web page and converts it to a markdown
// document.
func (a *app) fetchWebDocument(ctx context.Context, rawURL string) (*source.Document, error) {
	if err := weburl.ValidateURL(rawURL); err != nil {
		return nil, err
	}

	fetcher := weburl.NewFetcher(webFetchTimeout, appName+"/"+Version)
	result, err := fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	converted, err := weburl.NewConverter().Convert(rawURL, result.Body)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", rawURL, err)
	}

	fileName := converted.Title
	if fileName == "" {
		fileName = rawURL
	}

	return &source.Document{
		ID:       weburl.SourceID(rawURL),
		FileName: fileName,
		Content:  converted.Markdown,
		Metadata: map[string]string{
			"sourceUrl":     rawURL,
			"title":         converted.Title,
			"contentType":   result.ContentType,
			"parsingMethod": "web",
		},
		IngestedAt: time.Now().UTC(),
	}, nil
}

// printState writes the pipeline state to stdout as JSON.
func printState(state *pipeline.State) {
	if state == nil {
		return
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return
	}
	fmt.Fprintln(os.Stdout, string(data))
}

func connectToNATS(ctx context.Context, url string, logger *slog.Logger) (*natsclient.Client, error) {
	// Environment variable override takes precedence
	if envURL := os.Getenv("NATS_URL"); envURL != "" {
		url = envURL
	} else if envURL := os.Getenv("DOCGRAPH_NATS_URL"); envURL != "" {
		url = envURL
	}

	logger.Info("Connecting to NATS", "url", url)

	client, err := natsclient.NewClient(url,
		natsclient.WithName(appName),
		natsclient.WithMaxReconnects(-1),
		natsclient.WithReconnectWait(time.Second),
		natsclient.WithHealthInterval(30*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("create NATS client: %w", err)
	}

	if err := client.Connect(ctx); err != nil {
		return nil, wrapNATSError(err, url)
	}

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := client.WaitForConnection(connCtx); err != nil {
		return nil, wrapNATSError(err, url)
	}

	logger.Info("Connected to NATS", "url", url)
	return client, nil
}

// wrapNATSError provides helpful guidance when NATS connection fails.
func wrapNATSError(err error, url string) error {
	errStr := err.Error()

	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no servers available") ||
		strings.Contains(errStr, "timeout") {
		return fmt.Errorf(`NATS connection failed: %w

NATS is not running at %s.

Or set NATS_URL environment variable to point to your NATS server.`, err, url)
	}

	return fmt.Errorf("NATS connection failed: %w", err)
}
