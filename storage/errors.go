package storage

import "errors"

// ErrNotFound is returned when no staged object exists under a key.
var ErrNotFound = errors.New("staged object not found")
