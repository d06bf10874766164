package store

import (
	"errors"

	"github.com/karvel/ringd/internal/ring"
)

// ErrCancelled reports that a caller's context was cancelled while waiting
// for the store lock. No partial effect has occurred; the caller may retry
// the whole operation.
var ErrCancelled = errors.New("store: lock wait cancelled")

// ErrOutOfRange is returned when a seek references a non-live record or an
// offset beyond its length.
var ErrOutOfRange = ring.ErrOutOfRange

// ErrPendingOverflow is returned when a write would exceed the configured
// pending-buffer limit. Previously pending bytes are preserved.
var ErrPendingOverflow = ring.ErrPendingOverflow
