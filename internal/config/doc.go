// Package config loads ringd configuration from a JSON file with RINGD_*
// environment variables overlaid on top. Defaults match the reference
// device: a ten-slot ring of newline-terminated records.
package config
