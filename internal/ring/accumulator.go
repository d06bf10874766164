package ring

import (
	"bytes"
	"errors"
)

// DefaultDelimiter terminates records at ingestion time.
const DefaultDelimiter = '\n'

// ErrPendingOverflow reports a chunk whose unterminated remainder would
// exceed the configured pending limit. The pending buffer is left unchanged
// so the caller can retry or abort cleanly.
var ErrPendingOverflow = errors.New("ring: pending buffer limit exceeded")

// Accumulator assembles partial byte chunks into complete, delimiter
// terminated records. It performs no locking; callers serialize access.
type Accumulator struct {
	delim      byte
	maxPending int // 0 means unbounded
	pending    []byte
}

// NewAccumulator creates an Accumulator using delim as the record terminator.
// maxPending bounds the bytes held for an unterminated record; zero means
// unbounded growth.
func NewAccumulator(delim byte, maxPending int) *Accumulator {
	if delim == 0 {
		delim = DefaultDelimiter
	}
	return &Accumulator{delim: delim, maxPending: maxPending}
}

// Feed appends chunk to the pending buffer and extracts every record the
// chunk completes, in order. Each returned record includes its trailing
// delimiter and owns its bytes. The unterminated remainder, if any, stays
// pending for future calls; the maxPending limit applies to that remainder,
// so a terminated record of any length passes. On ErrPendingOverflow nothing
// is consumed and the pending buffer is unchanged.
func (a *Accumulator) Feed(chunk []byte) ([][]byte, error) {
	buf := make([]byte, 0, len(a.pending)+len(chunk))
	buf = append(append(buf, a.pending...), chunk...)

	var records [][]byte
	for {
		i := bytes.IndexByte(buf, a.delim)
		if i < 0 {
			break
		}
		rec := make([]byte, i+1)
		copy(rec, buf[:i+1])
		records = append(records, rec)
		buf = buf[i+1:]
	}
	if a.maxPending > 0 && len(buf) > a.maxPending {
		return nil, ErrPendingOverflow
	}
	if len(buf) == 0 {
		a.pending = nil
	} else {
		a.pending = append([]byte(nil), buf...)
	}
	return records, nil
}

// Pending returns the number of bytes received but not yet terminated.
func (a *Accumulator) Pending() int { return len(a.pending) }

// Reset discards any pending bytes.
func (a *Accumulator) Reset() { a.pending = nil }
