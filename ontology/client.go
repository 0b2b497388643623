package ontology

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// Client fetches the schema model from a SPARQL-over-HTTP endpoint.
//
// The client never surfaces fetch failures to callers of FetchModel: a
// timeout, non-success status, or malformed result degrades to the empty
// model so validation still runs. A circuit breaker keeps a flapping
// endpoint from delaying every validation run, and a rate limiter bounds
// query pressure on the graph store.
type Client struct {
	endpoint   string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the HTTP client used for queries.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger for degraded-fetch warnings.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) { c.logger = logger }
}

// WithRateLimit bounds queries per second against the endpoint.
func WithRateLimit(qps float64, burst int) ClientOption {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(qps), burst) }
}

// NewClient creates a client for the given SPARQL endpoint URL.
func NewClient(endpoint string, opts ...ClientOption) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(10), 10),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "sparql-fetch",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("SPARQL circuit state changed",
				"breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return c
}

// FetchModel assembles the schema model from the endpoint's class, property,
// and restriction result sets. Any failure degrades to the empty model; the
// error is logged, never returned.
func (c *Client) FetchModel(ctx context.Context) *Model {
	model, err := c.fetchModel(ctx)
	if err != nil {
		c.logger.Warn("Could not fetch ontology model, validating against empty schema",
			"endpoint", c.endpoint, "error", err)
		return EmptyModel()
	}
	return model
}

func (c *Client) fetchModel(ctx context.Context) (*Model, error) {
	classRows, err := c.query(ctx, classesQuery)
	if err != nil {
		return nil, fmt.Errorf("query classes: %w", err)
	}

	propertyRows, err := c.query(ctx, propertiesQuery)
	if err != nil {
		return nil, fmt.Errorf("query properties: %w", err)
	}

	restrictionRows, err := c.query(ctx, restrictionsQuery)
	if err != nil {
		return nil, fmt.Errorf("query restrictions: %w", err)
	}

	model := &Model{}
	for _, row := range classRows {
		if row["class"] == "" {
			continue
		}
		model.Classes = append(model.Classes, Class{
			IRI:        row["class"],
			SubClassOf: row["subClassOf"],
		})
	}
	for _, row := range propertyRows {
		if row["property"] == "" {
			continue
		}
		model.Properties = append(model.Properties, Property{
			IRI:    row["property"],
			Domain: row["domain"],
			Range:  row["range"],
		})
	}
	for _, row := range restrictionRows {
		kind := RestrictionKind(row["restrictionType"])
		if !kind.IsValid() {
			return nil, fmt.Errorf("unknown restriction kind %q", row["restrictionType"])
		}
		model.Restrictions = append(model.Restrictions, Restriction{
			Class:    row["class"],
			Property: row["property"],
			Kind:     kind,
			Value:    row["value"],
		})
	}

	return model, nil
}

// sparqlResults is the application/sparql-results+json result shape.
type sparqlResults struct {
	Results struct {
		Bindings []map[string]struct {
			Value string `json:"value"`
		} `json:"bindings"`
	} `json:"results"`
}

// query executes one SELECT query and flattens the bindings to
// variable-name → value rows.
func (c *Client) query(ctx context.Context, query string) ([]map[string]string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	result, err := c.breaker.Execute(func() (any, error) {
		return c.doQuery(ctx, query)
	})
	if err != nil {
		return nil, err
	}
	return result.([]map[string]string), nil
}

func (c *Client) doQuery(ctx context.Context, query string) ([]map[string]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint,
		strings.NewReader(query))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/sparql-query")
	req.Header.Set("Accept", "application/sparql-results+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("SPARQL query failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var results sparqlResults
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}

	rows := make([]map[string]string, 0, len(results.Results.Bindings))
	for _, binding := range results.Results.Bindings {
		row := make(map[string]string, len(binding))
		for variable, value := range binding {
			row[variable] = value.Value
		}
		rows = append(rows, row)
	}
	return rows, nil
}
