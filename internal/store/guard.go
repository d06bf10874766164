package store

import (
	"context"
	"fmt"
)

// guard is the single mutual-exclusion domain serializing every read and
// write of the engine. Acquisition is cancellable: a waiter whose context is
// cancelled gives up without holding the lock.
type guard struct {
	sem chan struct{}
}

func newGuard() guard {
	return guard{sem: make(chan struct{}, 1)}
}

// acquire blocks until the lock is held or ctx is done. A context that is
// already cancelled is refused before the lock is touched; otherwise, on
// cancellation while blocked, it returns ErrCancelled wrapping the context
// error.
func (g guard) acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrCancelled, err)
	}
	// Uncontended fast path; avoids racing ctx.Done when both are ready.
	select {
	case g.sem <- struct{}{}:
		return nil
	default:
	}
	select {
	case g.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
	}
}

func (g guard) release() {
	<-g.sem
}
