package ring

import "errors"

// DefaultCapacity is the number of record slots used when no capacity is
// configured, matching the device this engine descends from.
const DefaultCapacity = 10

// ErrOutOfRange reports a record index or byte offset that does not reference
// live data. It is never clamped or rounded.
var ErrOutOfRange = errors.New("ring: record index or offset out of range")

// Record is one complete, delimiter-terminated unit of stored data. A record
// is immutable once stored; the slot holding it owns its bytes until the slot
// is overwritten by eviction.
type Record struct {
	Data []byte
}

// Size returns the record length in bytes.
func (r Record) Size() int { return len(r.Data) }

// Buffer is a fixed-capacity circular store of records. When full, appending
// overwrites the oldest record. The empty and full states both have
// writeIndex == readIndex; the full flag disambiguates them.
//
// Buffer performs no locking; callers serialize access (see the store
// package's guard).
type Buffer struct {
	slots      []Record
	writeIndex int
	readIndex  int
	full       bool
}

// New creates a Buffer with the given capacity. Non-positive capacities fall
// back to DefaultCapacity.
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{slots: make([]Record, capacity)}
}

// Capacity returns the fixed number of record slots.
func (b *Buffer) Capacity() int { return len(b.slots) }

// Empty reports whether no live records are stored.
func (b *Buffer) Empty() bool { return !b.full && b.writeIndex == b.readIndex }

// Full reports whether every slot holds a live record.
func (b *Buffer) Full() bool { return b.full }

// LiveCount returns the number of live records.
func (b *Buffer) LiveCount() int {
	if b.full {
		return len(b.slots)
	}
	return (b.writeIndex - b.readIndex + len(b.slots)) % len(b.slots)
}

// Append installs rec at the write position. If the buffer is full the oldest
// record is evicted and returned so the caller can release or archive its
// bytes; the evicted record is captured before the slot is overwritten, so it
// is never referenced by two live slots and remains valid when returned.
func (b *Buffer) Append(rec Record) (evicted Record, wasEvicted bool) {
	if b.full {
		evicted = b.slots[b.writeIndex]
		wasEvicted = true
	}
	b.slots[b.writeIndex] = rec
	if b.full {
		b.readIndex = (b.readIndex + 1) % len(b.slots)
	}
	b.writeIndex = (b.writeIndex + 1) % len(b.slots)
	if b.writeIndex == b.readIndex {
		b.full = true
	}
	return evicted, wasEvicted
}

// FindAtOffset locates the live record containing globalOffset, where offsets
// address the logical concatenation of all live records oldest-first. The
// returned recordIndex is zero-based among live records. ok is false when the
// buffer is empty or globalOffset is at or beyond the total stored bytes;
// that is end-of-stream, not an error.
func (b *Buffer) FindAtOffset(globalOffset int) (recordIndex, offsetInRecord int, ok bool) {
	if b.Empty() || globalOffset < 0 {
		return 0, 0, false
	}
	cumulative := 0
	idx := b.readIndex
	for i := 0; i < b.LiveCount(); i++ {
		size := b.slots[idx].Size()
		if globalOffset < cumulative+size {
			return i, globalOffset - cumulative, true
		}
		cumulative += size
		idx = (idx + 1) % len(b.slots)
	}
	return 0, 0, false
}

// At returns the live record at zero-based logical index i (0 = oldest). The
// returned record aliases stored bytes; callers must copy before releasing
// whatever serialization they hold.
func (b *Buffer) At(i int) Record {
	return b.slots[(b.readIndex+i)%len(b.slots)]
}

// TotalSize returns the sum of live record sizes. It scans all live slots
// rather than maintaining a running total; capacity is small and fixed, and
// the scan keeps append and eviction trivial.
func (b *Buffer) TotalSize() int {
	total := 0
	idx := b.readIndex
	for i := 0; i < b.LiveCount(); i++ {
		total += b.slots[idx].Size()
		idx = (idx + 1) % len(b.slots)
	}
	return total
}

// ResolveRecordOffset converts a (record index, byte offset within record)
// address to the equivalent global byte offset. recordIndex is zero-based
// among live records, oldest first. Both an index beyond the live count and
// an offset beyond the addressed record's length return ErrOutOfRange.
func (b *Buffer) ResolveRecordOffset(recordIndex, offsetInRecord int) (int, error) {
	if recordIndex < 0 || offsetInRecord < 0 {
		return 0, ErrOutOfRange
	}
	live := b.LiveCount()
	if recordIndex >= live {
		return 0, ErrOutOfRange
	}
	if offsetInRecord >= b.At(recordIndex).Size() {
		return 0, ErrOutOfRange
	}
	global := 0
	for i := 0; i < recordIndex; i++ {
		global += b.At(i).Size()
	}
	return global + offsetInRecord, nil
}

// Reset releases all live records and returns the buffer to the empty state.
func (b *Buffer) Reset() {
	for i := range b.slots {
		b.slots[i] = Record{}
	}
	b.writeIndex = 0
	b.readIndex = 0
	b.full = false
}
