// Package archive is the external persistence collaborator for the ringd
// store. The store itself is purely in-memory; the archive subscribes to its
// append hook and writes every completed record to Pebble under a
// monotonically increasing sequence, surviving eviction and restarts.
//
// The archive is optional and best-effort: a persistence failure is logged
// but never fails the in-memory append.
package archive
