package ontology

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func binding(vars map[string]string) string {
	parts := make([]string, 0, len(vars))
	for name, value := range vars {
		parts = append(parts, fmt.Sprintf(`%q: {"value": %q}`, name, value))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func resultsJSON(bindings ...string) string {
	return `{"results": {"bindings": [` + strings.Join(bindings, ",") + `]}}`
}

// sparqlHandler answers the three model queries based on which variable
// the SELECT asks for.
func sparqlHandler(t *testing.T, classes, properties, restrictions string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/sparql-query", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		query := string(body)

		w.Header().Set("Content-Type", "application/sparql-results+json")
		switch {
		case strings.Contains(query, "?restrictionType"):
			fmt.Fprint(w, restrictions)
		case strings.Contains(query, "?property ?domain"):
			fmt.Fprint(w, properties)
		default:
			fmt.Fprint(w, classes)
		}
	}
}

func TestFetchModel(t *testing.T) {
	classes := resultsJSON(
		binding(map[string]string{"class": "http://example.com/Document"}),
		binding(map[string]string{
			"class":      "http://example.com/TextChunk",
			"subClassOf": "http://example.com/Document",
		}),
	)
	properties := resultsJSON(
		binding(map[string]string{
			"property": "http://example.com/hasId",
			"domain":   "http://example.com/Document",
			"range":    "http://www.w3.org/2001/XMLSchema#string",
		}),
	)
	restrictions := resultsJSON(
		binding(map[string]string{
			"class":           "http://example.com/Document",
			"property":        "http://example.com/hasId",
			"restrictionType": "cardinality",
			"value":           "1",
		}),
	)

	server := httptest.NewServer(sparqlHandler(t, classes, properties, restrictions))
	defer server.Close()

	client := NewClient(server.URL)
	model := client.FetchModel(context.Background())

	require.NotNil(t, model)
	require.Len(t, model.Classes, 2)
	assert.Equal(t, "http://example.com/Document", model.Classes[0].IRI)
	assert.Equal(t, "http://example.com/Document", model.Classes[1].SubClassOf)

	require.Len(t, model.Properties, 1)
	assert.Equal(t, "http://example.com/Document", model.Properties[0].Domain)

	require.Len(t, model.Restrictions, 1)
	assert.Equal(t, KindCardinality, model.Restrictions[0].Kind)
	assert.Equal(t, "1", model.Restrictions[0].Value)
}

func TestFetchModel_ServerErrorDegradesToEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	model := client.FetchModel(context.Background())

	require.NotNil(t, model)
	assert.True(t, model.IsEmpty())
}

func TestFetchModel_UnreachableEndpointDegradesToEmpty(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")
	model := client.FetchModel(context.Background())

	require.NotNil(t, model)
	assert.True(t, model.IsEmpty())
}

func TestFetchModel_MalformedResultsDegradesToEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not json")
	}))
	defer server.Close()

	client := NewClient(server.URL)
	model := client.FetchModel(context.Background())
	assert.True(t, model.IsEmpty())
}

func TestFetchModel_UnknownRestrictionKindDegradesToEmpty(t *testing.T) {
	restrictions := resultsJSON(
		binding(map[string]string{
			"class":           "http://example.com/Document",
			"property":        "http://example.com/hasId",
			"restrictionType": "exactCardinality",
			"value":           "1",
		}),
	)
	server := httptest.NewServer(sparqlHandler(t, resultsJSON(), resultsJSON(), restrictions))
	defer server.Close()

	client := NewClient(server.URL)
	model := client.FetchModel(context.Background())
	assert.True(t, model.IsEmpty())
}

func TestClient_CircuitOpensAfterConsecutiveFailures(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		http.Error(w, "boom", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, WithRateLimit(1000, 1000))

	for range 5 {
		model := client.FetchModel(context.Background())
		assert.True(t, model.IsEmpty())
	}

	// Once the breaker opens, fetches fail fast without reaching the server.
	assert.Less(t, requests, 5*3)
}
