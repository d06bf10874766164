package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestGuardAcquireRelease(t *testing.T) {
	g := newGuard()
	if err := g.acquire(context.Background()); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	g.release()
	if err := g.acquire(context.Background()); err != nil {
		t.Fatalf("re-acquire: %v", err)
	}
	g.release()
}

func TestGuardRefusesCancelledContext(t *testing.T) {
	g := newGuard()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Even uncontended, a cancelled caller never gets the lock.
	err := g.acquire(ctx)
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("want ErrCancelled, got %v", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("should wrap context error: %v", err)
	}

	// The lock was never taken; a live caller acquires immediately.
	if err := g.acquire(context.Background()); err != nil {
		t.Fatalf("acquire after refused caller: %v", err)
	}
	g.release()
}

func TestGuardCancelledWhileBlocked(t *testing.T) {
	g := newGuard()
	if err := g.acquire(context.Background()); err != nil {
		t.Fatalf("acquire: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- g.acquire(ctx) }()

	// Give the waiter time to block, then cancel it.
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, ErrCancelled) {
			t.Fatalf("want ErrCancelled, got %v", err)
		}
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("should wrap context error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("cancelled waiter did not return")
	}

	// The holder still owns the lock; release and confirm a fresh waiter
	// gets in.
	g.release()
	if err := g.acquire(context.Background()); err != nil {
		t.Fatalf("acquire after cancel: %v", err)
	}
	g.release()
}

func TestGuardHandoff(t *testing.T) {
	g := newGuard()
	if err := g.acquire(context.Background()); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	done := make(chan struct{})
	go func() {
		if err := g.acquire(context.Background()); err != nil {
			t.Errorf("waiter acquire: %v", err)
		}
		g.release()
		close(done)
	}()
	time.Sleep(10 * time.Millisecond)
	g.release()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("waiter never acquired after release")
	}
}
