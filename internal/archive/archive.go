package archive

import (
	"context"
	"encoding/binary"
	"errors"
	"sync"

	"github.com/cockroachdb/pebble"

	pebblestore "github.com/karvel/ringd/internal/storage/pebble"
	logpkg "github.com/karvel/ringd/pkg/log"
)

// Archive persists every record the in-memory store completes, so history
// survives both eviction and process restarts. It implements the store's
// Hooks seam: OnAppend assigns the next sequence and writes the record,
// OnEvict is a no-op because the archive keeps evicted history by design.
type Archive struct {
	db     *pebblestore.DB
	logger logpkg.Logger

	mu      sync.Mutex
	lastSeq uint64
}

// Open initializes an Archive over db and restores the last assigned
// sequence from metadata if present.
func Open(db *pebblestore.DB, logger logpkg.Logger) (*Archive, error) {
	a := &Archive{db: db, logger: logger}
	meta, err := db.Get(metaKey)
	switch {
	case err == nil && len(meta) >= 8:
		a.lastSeq = binary.BigEndian.Uint64(meta[:8])
	case errors.Is(err, pebblestore.ErrNotFound):
		// fresh archive
	case err != nil:
		return nil, err
	}
	return a, nil
}

// OnAppend archives one completed record under the next sequence. The hook
// contract gives the archive its own copy of the bytes, so rec is stored
// as-is. Failures are logged and do not propagate: the in-memory store has
// already committed the append, and the archive is best-effort by contract.
func (a *Archive) OnAppend(rec []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()

	seq := a.lastSeq + 1
	b := a.db.NewBatch()
	defer b.Close()
	if err := b.Set(recordKey(seq), rec, nil); err != nil {
		a.logger.Error("archive append failed", logpkg.Int64("seq", int64(seq)), logpkg.Err(err))
		return
	}
	var meta [8]byte
	binary.BigEndian.PutUint64(meta[:], seq)
	if err := b.Set(metaKey, meta[:], nil); err != nil {
		a.logger.Error("archive meta update failed", logpkg.Err(err))
		return
	}
	if err := a.db.CommitBatch(context.Background(), b); err != nil {
		a.logger.Error("archive commit failed", logpkg.Int64("seq", int64(seq)), logpkg.Err(err))
		return
	}
	a.lastSeq = seq
}

// OnEvict implements the hook seam. Evicted records are already archived by
// their append, so nothing is removed here.
func (a *Archive) OnEvict([]byte) {}

// LastSeq returns the highest sequence assigned so far.
func (a *Archive) LastSeq() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastSeq
}

// Replay invokes fn for every archived record in sequence order, stopping at
// the first error or when ctx is cancelled.
func (a *Archive) Replay(ctx context.Context, fn func(seq uint64, rec []byte) error) error {
	low := recordKey(0)
	hi := recordKey(^uint64(0))
	iter, err := a.db.NewIter(&pebble.IterOptions{LowerBound: low, UpperBound: append(hi, 0x00)})
	if err != nil {
		return err
	}
	defer iter.Close()

	for ok := iter.First(); ok; ok = iter.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		seq, valid := seqFromKey(iter.Key())
		if !valid {
			continue
		}
		rec := append([]byte(nil), iter.Value()...)
		if err := fn(seq, rec); err != nil {
			return err
		}
	}
	return iter.Error()
}
