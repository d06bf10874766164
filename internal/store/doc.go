// Package store exposes the ringd engine behind a single cancellable
// mutual-exclusion domain.
//
// Every public operation (Write, ReadAt, SeekToCommand, SeekFrom,
// TotalBytes, Snapshot) runs as one guarded critical section; no partial
// ring state is ever observable. A caller blocked waiting for the lock can
// be cancelled through its context and receives ErrCancelled with no effect
// applied.
//
// The store keeps no per-caller position. Hosts (the TCP daemon, the HTTP
// API) hold one cursor per session and pass it into ReadAt/SeekFrom, so
// independent sessions seek and read without affecting each other.
//
// Hooks provide a seam for collaborators that track appends and evictions,
// such as the archive package's external persister. Callbacks run outside
// the critical section with bytes that are safe to retain.
package store
