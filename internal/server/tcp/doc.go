// Package tcpserver implements the ringd ingest daemon: a newline-framed
// TCP protocol in front of the bounded store.
//
// # Protocol
//
// Clients send delimiter-terminated packets. A data packet is appended to
// the store (evicting the oldest record when the ring is full) and answered
// with the full current log content. A control packet of the form
//
//	SEEKTO:<record>,<offset>\n
//
// repositions the session cursor to the given zero-based live record and
// byte offset within it and is answered with the log content from that
// position onward; it is never stored. Out-of-range seeks are rejected
// without disturbing the session.
//
// Each connection owns its cursor and its framing state; the store holds no
// per-caller position.
package tcpserver
