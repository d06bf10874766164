// Package metrics declares the Prometheus collectors for the ringd daemon.
// Collectors are package variables; Register attaches them to a registry,
// which the HTTP server exposes on /metrics.
package metrics
