// Package storage provides the staging store for serialized graphs.
//
// The pipeline writes a document's serialized graph here after building and
// reads it back for validation. The Store interface is the narrow boundary
// behind which an external object store (S3, NATS object store) can be
// substituted; FileStore is the filesystem implementation.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Store persists serialized graph blobs under document-derived keys.
type Store interface {
	// Put stores data under key with optional object metadata.
	Put(ctx context.Context, key string, data []byte, meta map[string]string) error

	// Get retrieves the data stored under key. Returns ErrNotFound when the
	// key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Exists reports whether key holds a staged object.
	Exists(ctx context.Context, key string) (bool, error)
}

// StagingKey derives the staging key for a document's serialized graph.
// Layout: staging/<documentID>/data.<ext>.
func StagingKey(documentID, ext string) string {
	return fmt.Sprintf("staging/%s/data.%s", documentID, ext)
}

// metaSuffix names the sidecar file carrying object metadata.
const metaSuffix = ".meta.json"

// FileStore stores staged objects under a root directory, one file per key
// plus a JSON metadata sidecar.
type FileStore struct {
	root string
}

// NewFileStore creates a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, errors.New("staging directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create staging directory: %w", err)
	}
	return &FileStore{root: dir}, nil
}

// Root returns the store's root directory.
func (s *FileStore) Root() string { return s.root }

// Put writes the blob, then its metadata sidecar.
func (s *FileStore) Put(_ context.Context, key string, data []byte, meta map[string]string) error {
	path, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create key directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write staged object: %w", err)
	}

	if len(meta) == 0 {
		return nil
	}
	encoded, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(path+metaSuffix, encoded, 0o644); err != nil {
		return fmt.Errorf("write metadata: %w", err)
	}
	return nil
}

// Get reads the blob stored under key.
func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, fmt.Errorf("read staged object: %w", err)
	}
	return data, nil
}

// Exists reports whether key holds a staged object.
func (s *FileStore) Exists(_ context.Context, key string) (bool, error) {
	path, err := s.resolve(key)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Meta reads the metadata sidecar for key, if present.
func (s *FileStore) Meta(_ context.Context, key string) (map[string]string, error) {
	path, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path + metaSuffix)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read metadata: %w", err)
	}
	var meta map[string]string
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	return meta, nil
}

// resolve maps a key to a path under the root, rejecting traversal.
func (s *FileStore) resolve(key string) (string, error) {
	if key == "" {
		return "", errors.New("key is required")
	}
	clean := filepath.Clean(filepath.FromSlash(key))
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid key: %s", key)
	}
	return filepath.Join(s.root, clean), nil
}
