package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// stagedGraphExt is the staged graph form the watcher reacts to.
const stagedGraphExt = ".nt"

// defaultDebounce is how long the watcher waits for writes to settle
// before validating a staged graph.
const defaultDebounce = 500 * time.Millisecond

// Watcher watches the staging directory and validates newly staged graphs.
type Watcher struct {
	pipeline *Pipeline
	root     string
	watcher  *fsnotify.Watcher
	logger   *slog.Logger
	debounce time.Duration

	// Debouncing: collect staged documents before validating
	pendingMu sync.Mutex
	pending   map[string]struct{}

	results chan *State
}

// NewWatcher creates a watcher over the staging root directory.
func NewWatcher(p *Pipeline, root string, logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		pipeline: p,
		root:     root,
		watcher:  fsw,
		logger:   logger,
		debounce: defaultDebounce,
		pending:  make(map[string]struct{}),
		results:  make(chan *State, 64),
	}, nil
}

// Results returns the channel of validation outcomes.
func (w *Watcher) Results() <-chan *State {
	return w.results
}

// Start begins watching the staging directory. Validation outcomes are
// delivered on Results until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	if err := os.MkdirAll(w.root, 0755); err != nil {
		return err
	}

	if err := w.addWatchesRecursive(w.root); err != nil {
		return err
	}

	go w.processEvents(ctx)

	w.logger.Info("Staging watcher started",
		"root", w.root,
		"debounce", w.debounce)

	return nil
}

// Stop stops the watcher. The results channel is closed by processEvents
// when it exits.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

// addWatchesRecursive adds watches to the staging root and every
// document directory under it.
func (w *Watcher) addWatchesRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory",
				"path", path,
				"error", err)
		}
		return nil
	})
}

// processEvents handles fsnotify events with debouncing.
func (w *Watcher) processEvents(ctx context.Context) {
	defer close(w.results)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Watcher error", "error", err)

		case <-ticker.C:
			w.flushPending(ctx)
		}
	}
}

// handleFSEvent processes a single fsnotify event.
func (w *Watcher) handleFSEvent(event fsnotify.Event) {
	path := event.Name

	// Watch document directories as they appear.
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			if err := w.watcher.Add(path); err != nil {
				w.logger.Warn("Failed to watch new directory",
					"path", path,
					"error", err)
			}
			return
		}
	}

	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	if filepath.Ext(path) != stagedGraphExt {
		return
	}

	documentID := w.documentIDFromPath(path)
	if documentID == "" {
		return
	}

	w.pendingMu.Lock()
	w.pending[documentID] = struct{}{}
	w.pendingMu.Unlock()

	w.logger.Debug("Staged graph detected",
		"document_id", documentID,
		"path", path)
}

// documentIDFromPath extracts the document ID from a staged graph path
// (<root>/staging/<documentID>/data.nt).
func (w *Watcher) documentIDFromPath(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return ""
	}

	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) != 3 || parts[0] != "staging" {
		return ""
	}
	return parts[1]
}

// flushPending validates accumulated staged documents.
func (w *Watcher) flushPending(ctx context.Context) {
	w.pendingMu.Lock()
	if len(w.pending) == 0 {
		w.pendingMu.Unlock()
		return
	}
	toProcess := make([]string, 0, len(w.pending))
	for id := range w.pending {
		toProcess = append(toProcess, id)
	}
	w.pending = make(map[string]struct{})
	w.pendingMu.Unlock()

	for _, documentID := range toProcess {
		select {
		case <-ctx.Done():
			return
		default:
		}

		state, err := w.pipeline.Validate(ctx, documentID)
		if err != nil {
			w.logger.Warn("Staged graph validation failed",
				"document_id", documentID,
				"error", err)
		}

		select {
		case w.results <- state:
		default:
			w.logger.Warn("Results channel full, dropping outcome",
				"document_id", documentID)
		}
	}
}
