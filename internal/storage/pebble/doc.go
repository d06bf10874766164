// Package pebblestore wraps a Pebble database with the fsync policy and the
// minimal key/value surface the archive collaborator needs. Keys are plain
// byte strings ordered lexicographically, which the archive relies on for
// sequence-ordered range scans.
package pebblestore
