// Package id provides sortable 128-bit identifiers for sessions and other
// short-lived objects. IDs are 8 bytes of millisecond timestamp plus 8 bytes
// of per-process sequence, so byte-wise comparison preserves creation order.
package id
