package memory

import "errors"

// ErrNotConfigured is returned when a store is built without an embedder.
var ErrNotConfigured = errors.New("memory not configured")
