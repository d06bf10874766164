package store

import (
	"context"
	"io"
	"sync"

	"github.com/karvel/ringd/internal/ring"
)

// Hooks observes completed appends and evictions. Callbacks run outside the
// store's critical section and receive bytes the callee may retain; appended
// records are copied before delivery, and an evicted record's bytes are no
// longer referenced by any slot. Delivery is serialized and follows ring
// order even across concurrent writers, so collaborators like an archive can
// assign sequence numbers from the callback order.
type Hooks interface {
	OnAppend(rec []byte)
	OnEvict(rec []byte)
}

// NoopHooks is used when no hooks are configured.
type NoopHooks struct{}

func (NoopHooks) OnAppend([]byte) {}
func (NoopHooks) OnEvict([]byte)  {}

// Options configures a Store.
type Options struct {
	// Capacity is the number of record slots; zero selects ring.DefaultCapacity.
	Capacity int
	// Delimiter terminates records; zero selects '\n'.
	Delimiter byte
	// MaxPendingBytes bounds unterminated input; zero means unbounded.
	MaxPendingBytes int
	// Hooks receives append/evict notifications. Optional.
	Hooks Hooks
}

// Store is the engine facade: a record accumulator feeding a bounded ring of
// records, with every operation serialized behind one cancellable guard. A
// Store holds no per-caller cursor; hosts keep their own cursor per session
// and pass it to ReadAt and the seek operations.
type Store struct {
	gate  guard
	acc   *ring.Accumulator
	buf   *ring.Buffer
	hooks Hooks

	hookMu      sync.Mutex
	hookQ       []hookEvent
	dispatching bool
}

// hookEvent is one queued hook delivery.
type hookEvent struct {
	rec   []byte
	evict bool
}

// Open constructs a Store.
func Open(opts Options) *Store {
	hooks := opts.Hooks
	if hooks == nil {
		hooks = NoopHooks{}
	}
	return &Store{
		gate:  newGuard(),
		acc:   ring.NewAccumulator(opts.Delimiter, opts.MaxPendingBytes),
		buf:   ring.New(opts.Capacity),
		hooks: hooks,
	}
}

// Write feeds p to the accumulator and appends every record it completes,
// evicting the oldest record per append once the ring is full. On success the
// full length of p is accepted; partial writes are not modeled. On error no
// slot has been mutated and previously pending bytes are intact.
func (s *Store) Write(ctx context.Context, p []byte) (int, error) {
	if err := s.gate.acquire(ctx); err != nil {
		return 0, err
	}
	records, err := s.acc.Feed(p)
	if err != nil {
		s.gate.release()
		return 0, err
	}
	events := make([]hookEvent, 0, len(records))
	for _, rec := range records {
		evicted, was := s.buf.Append(ring.Record{Data: rec})
		if was {
			events = append(events, hookEvent{rec: evicted.Data, evict: true})
		}
		cp := make([]byte, len(rec))
		copy(cp, rec)
		events = append(events, hookEvent{rec: cp})
	}
	// Enqueue while still inside the critical section so the dispatch order
	// matches ring order across concurrent writers.
	if len(events) > 0 {
		s.hookMu.Lock()
		s.hookQ = append(s.hookQ, events...)
		s.hookMu.Unlock()
	}
	s.gate.release()

	s.dispatchHooks()
	return len(p), nil
}

// dispatchHooks drains queued hook events in order. One drainer runs at a
// time and hookMu is never held across a callback, so hooks can re-enter the
// store without deadlocking.
func (s *Store) dispatchHooks() {
	s.hookMu.Lock()
	if s.dispatching {
		s.hookMu.Unlock()
		return
	}
	s.dispatching = true
	for len(s.hookQ) > 0 {
		ev := s.hookQ[0]
		s.hookQ = s.hookQ[1:]
		s.hookMu.Unlock()
		if ev.evict {
			s.hooks.OnEvict(ev.rec)
		} else {
			s.hooks.OnAppend(ev.rec)
		}
		s.hookMu.Lock()
	}
	s.dispatching = false
	s.hookMu.Unlock()
}

// ReadAt copies up to maxLen bytes starting at the global byte offset cursor.
// A read never spans more than one record; sequential consumers advance the
// cursor by the returned length and call again. A cursor at or beyond
// TotalBytes yields an empty slice and nil error, signalling end of stream.
func (s *Store) ReadAt(ctx context.Context, cursor, maxLen int) ([]byte, error) {
	if err := s.gate.acquire(ctx); err != nil {
		return nil, err
	}
	defer s.gate.release()

	idx, off, ok := s.buf.FindAtOffset(cursor)
	if !ok {
		return nil, nil
	}
	rec := s.buf.At(idx)
	n := rec.Size() - off
	if n > maxLen {
		n = maxLen
	}
	out := make([]byte, n)
	copy(out, rec.Data[off:off+n])
	return out, nil
}

// SeekToCommand resolves a (record index, offset within record) address to a
// cursor. The index is zero-based among live records, oldest first. Both an
// index beyond the live count and an offset beyond the record's length return
// ErrOutOfRange.
func (s *Store) SeekToCommand(ctx context.Context, recordIndex, offsetInRecord int) (int, error) {
	if err := s.gate.acquire(ctx); err != nil {
		return 0, err
	}
	defer s.gate.release()
	return s.buf.ResolveRecordOffset(recordIndex, offsetInRecord)
}

// SeekFrom computes a new cursor from cur, offset, and whence (io.SeekStart,
// io.SeekCurrent, io.SeekEnd). Positions outside [0, TotalBytes] and unknown
// whence values return ErrOutOfRange.
func (s *Store) SeekFrom(ctx context.Context, cur, offset, whence int) (int, error) {
	if err := s.gate.acquire(ctx); err != nil {
		return 0, err
	}
	defer s.gate.release()

	total := s.buf.TotalSize()
	var next int
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = cur + offset
	case io.SeekEnd:
		next = total + offset
	default:
		return 0, ErrOutOfRange
	}
	if next < 0 || next > total {
		return 0, ErrOutOfRange
	}
	return next, nil
}

// TotalBytes returns the sum of live record lengths.
func (s *Store) TotalBytes(ctx context.Context) (int, error) {
	if err := s.gate.acquire(ctx); err != nil {
		return 0, err
	}
	defer s.gate.release()
	return s.buf.TotalSize(), nil
}

// LiveCount returns the number of live records.
func (s *Store) LiveCount(ctx context.Context) (int, error) {
	if err := s.gate.acquire(ctx); err != nil {
		return 0, err
	}
	defer s.gate.release()
	return s.buf.LiveCount(), nil
}

// PendingBytes returns the size of the unterminated input currently held by
// the accumulator.
func (s *Store) PendingBytes(ctx context.Context) (int, error) {
	if err := s.gate.acquire(ctx); err != nil {
		return 0, err
	}
	defer s.gate.release()
	return s.acc.Pending(), nil
}

// Capacity returns the fixed slot count.
func (s *Store) Capacity() int { return s.buf.Capacity() }

// Snapshot copies all live records in logical order. No caller holds
// references into the ring after it returns.
func (s *Store) Snapshot(ctx context.Context) ([][]byte, error) {
	if err := s.gate.acquire(ctx); err != nil {
		return nil, err
	}
	defer s.gate.release()

	out := make([][]byte, s.buf.LiveCount())
	for i := range out {
		rec := s.buf.At(i)
		cp := make([]byte, rec.Size())
		copy(cp, rec.Data)
		out[i] = cp
	}
	return out, nil
}

// Reset clears the ring and the accumulator back to the initial state.
func (s *Store) Reset(ctx context.Context) error {
	if err := s.gate.acquire(ctx); err != nil {
		return err
	}
	defer s.gate.release()
	s.buf.Reset()
	s.acc.Reset()
	return nil
}
