// Package httpserver exposes the control-plane HTTP API: record writes,
// offset reads, command-indexed seeks, stats, health, and the Prometheus
// scrape endpoint.
package httpserver
