// Package client provides the `ringd` command-line client.
//
// The CLI talks to the ringd HTTP API to perform common log operations
// from a terminal. It is primarily intended for developers and operators.
//
// # Address configuration
//
// The HTTP base URL is discovered by the application that embeds the
// commands via a BaseURLFunc. When using the standalone binary, it is
// read from the RINGD_HTTP environment variable (default
// http://127.0.0.1:8080).
//
// Usage
//
//	ringd log write --data hello
//	printf 'a\nb\n' | ringd log write --data -
//
//	ringd log cat
//	ringd log read --at 4 --max 64
//
//	# Resolve record 1, byte 2 to a cursor, then read from it
//	ringd log seek --record 1 --offset 2
//	ringd log read --at 6
//
//	ringd log stats
//
// Notes
//
//   - write appends the record delimiter unless --raw is set; bytes
//     without a trailing delimiter stay pending on the server until a
//     later write completes the record.
//   - read returns at most one record per call; an empty response means
//     end of the retained log.
package client
