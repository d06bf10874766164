// Package ring implements the bounded record store at the heart of ringd.
//
// # Overview
//
// Buffer is a fixed-capacity circular array of variable-length byte records.
// Appending to a full buffer evicts the oldest record and hands it back to
// the caller, so the bytes can be released or archived exactly once. Two
// indices plus a full flag track the live range; writeIndex == readIndex is
// ambiguous between empty and full, and the flag disambiguates.
//
// The buffer is byte-addressable: FindAtOffset maps a global offset into the
// logical concatenation of live records to a (record, offset-in-record) pair,
// and ResolveRecordOffset inverts that for seek-style positioning.
//
// Accumulator converts an unbounded sequence of partial writes into complete
// delimiter-terminated records before they enter the buffer.
//
// Neither type locks; the store package serializes access through a single
// cancellable guard.
package ring
