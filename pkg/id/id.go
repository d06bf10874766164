package id

import (
	"encoding/binary"
	"sync"
	"time"
)

// ID is a 128-bit, lexicographically sortable identifier: 8 bytes of
// millisecond timestamp followed by 8 bytes of per-process sequence, both
// big-endian.
type ID [16]byte

// Bytes returns the raw 16-byte representation.
func (i ID) Bytes() []byte { b := make([]byte, 16); copy(b, i[:]); return b }

// String returns the hex form.
func (i ID) String() string {
	const digits = "0123456789abcdef"
	out := make([]byte, 32)
	for n, v := range i {
		out[n*2] = digits[v>>4]
		out[n*2+1] = digits[v&0x0f]
	}
	return string(out)
}

// Short returns the trailing 12 hex characters, enough to distinguish
// concurrent sessions in log output.
func (i ID) Short() string {
	s := i.String()
	return s[len(s)-12:]
}

// Generator produces monotonically increasing IDs per process.
type Generator struct {
	mu     sync.Mutex
	lastMs int64
	seq    uint64
}

// NewGenerator creates a Generator.
func NewGenerator() *Generator { return &Generator{} }

// nowMs is replaceable in tests.
var nowMs = func() int64 { return time.Now().UnixMilli() }

// Next returns a new ID. A regressing clock pins to the last observed
// millisecond and advances the sequence instead of going backwards.
func (g *Generator) Next() ID {
	g.mu.Lock()
	defer g.mu.Unlock()

	ms := nowMs()
	if ms <= g.lastMs {
		ms = g.lastMs
		g.seq++
	} else {
		g.seq = 0
	}
	g.lastMs = ms

	var out ID
	binary.BigEndian.PutUint64(out[0:8], uint64(ms))
	binary.BigEndian.PutUint64(out[8:16], g.seq)
	return out
}
