// Package runtime assembles a ringd instance: the bounded store, the
// optional Pebble-backed archive, metrics wiring, and configuration. Servers
// receive the runtime by handle and never reach for global state.
package runtime
