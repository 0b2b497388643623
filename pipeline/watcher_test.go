package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/docgraph/config"
	"github.com/c360studio/docgraph/storage"
	"github.com/c360studio/docgraph/validate"
)

func TestWatcher_DocumentIDFromPath(t *testing.T) {
	w := &Watcher{root: "/stage"}

	assert.Equal(t, "doc-1", w.documentIDFromPath("/stage/staging/doc-1/data.nt"))
	assert.Equal(t, "", w.documentIDFromPath("/stage/staging/data.nt"))
	assert.Equal(t, "", w.documentIDFromPath("/stage/other/doc-1/data.nt"))
	assert.Equal(t, "", w.documentIDFromPath("/elsewhere/staging/doc-1/data.nt"))
}

func TestWatcher_ValidatesStagedGraph(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cfg := config.DefaultConfig()
	cfg.Staging.Dir = t.TempDir()

	store, err := storage.NewFileStore(cfg.Staging.Dir)
	require.NoError(t, err)

	p, err := New(cfg, store)
	require.NoError(t, err)

	// Pre-create the document directory so its watch is in place before
	// the graph file lands.
	key := storage.StagingKey("doc-9", "nt")
	require.NoError(t, os.MkdirAll(filepath.Dir(filepath.Join(cfg.Staging.Dir, key)), 0755))

	w, err := NewWatcher(p, cfg.Staging.Dir, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start(ctx))
	defer func() { _ = w.Stop() }()

	ntriples := "<http://graph-rag.example.com/document/doc-9> " +
		"<http://www.w3.org/1999/02/22-rdf-syntax-ns#type> " +
		"<http://graph-rag.example.com/ontology/Document> .\n"
	require.NoError(t, store.Put(ctx, key, []byte(ntriples), nil))

	select {
	case state := <-w.Results():
		require.NotNil(t, state)
		assert.Equal(t, "doc-9", state.DocumentID)
		assert.Equal(t, validate.StatusPassed, state.ValidationStatus)
		assert.True(t, state.Success)
	case <-ctx.Done():
		t.Fatal("timed out waiting for validation result")
	}
}
