package archive

import (
	"context"
	"testing"

	pebblestore "github.com/karvel/ringd/internal/storage/pebble"
	logpkg "github.com/karvel/ringd/pkg/log"
)

func newTestArchive(t *testing.T, dir string) (*Archive, *pebblestore.DB) {
	t.Helper()
	db, err := pebblestore.Open(pebblestore.Options{DataDir: dir, Fsync: pebblestore.FsyncModeAlways})
	if err != nil {
		t.Fatalf("open pebble: %v", err)
	}
	logger := logpkg.NewLogger(logpkg.WithLevel(logpkg.ErrorLevel))
	a, err := Open(db, logger)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	return a, db
}

func TestAppendAssignsSequential(t *testing.T) {
	a, db := newTestArchive(t, t.TempDir())
	t.Cleanup(func() { _ = db.Close() })

	a.OnAppend([]byte("aa\n"))
	a.OnAppend([]byte("bb\n"))
	if got := a.LastSeq(); got != 2 {
		t.Fatalf("last seq: got %d want 2", got)
	}
}

func TestReplayOrder(t *testing.T) {
	a, db := newTestArchive(t, t.TempDir())
	t.Cleanup(func() { _ = db.Close() })

	want := []string{"aa\n", "bb\n", "cc\n"}
	for _, w := range want {
		a.OnAppend([]byte(w))
	}
	// Eviction does not remove history.
	a.OnEvict([]byte("aa\n"))

	var got []string
	var seqs []uint64
	err := a.Replay(context.Background(), func(seq uint64, rec []byte) error {
		seqs = append(seqs, seq)
		got = append(got, string(rec))
		return nil
	})
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("replayed %d records, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("record %d: got %q want %q", i, got[i], want[i])
		}
		if seqs[i] != uint64(i+1) {
			t.Fatalf("seq %d: got %d", i, seqs[i])
		}
	}
}

func TestSequenceRestoredAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	a, db := newTestArchive(t, dir)
	a.OnAppend([]byte("x\n"))
	first := a.LastSeq()
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	a2, db2 := newTestArchive(t, dir)
	t.Cleanup(func() { _ = db2.Close() })
	if got := a2.LastSeq(); got != first {
		t.Fatalf("last seq after reopen: got %d want %d", got, first)
	}
	a2.OnAppend([]byte("y\n"))
	if got := a2.LastSeq(); got != first+1 {
		t.Fatalf("next seq after reopen: got %d want %d", got, first+1)
	}
}

func TestReplayStopsOnCallbackError(t *testing.T) {
	a, db := newTestArchive(t, t.TempDir())
	t.Cleanup(func() { _ = db.Close() })

	a.OnAppend([]byte("a\n"))
	a.OnAppend([]byte("b\n"))
	calls := 0
	err := a.Replay(context.Background(), func(uint64, []byte) error {
		calls++
		return context.Canceled
	})
	if err == nil || calls != 1 {
		t.Fatalf("replay should stop at first error: calls=%d err=%v", calls, err)
	}
}
