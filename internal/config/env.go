package config

import (
	"os"
	"strconv"
)

// FromEnv overlays RINGD_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("RINGD_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Capacity = n
		}
	}
	if v := os.Getenv("RINGD_DELIMITER"); v != "" {
		cfg.Delimiter = v
	}
	if v := os.Getenv("RINGD_MAX_PENDING_BYTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxPendingBytes = n
		}
	}
	if v := os.Getenv("RINGD_TCP_ADDR"); v != "" {
		cfg.TCPAddr = v
	}
	if v := os.Getenv("RINGD_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("RINGD_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("RINGD_ARCHIVE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.ArchiveEnabled = b
		}
	}
	if v := os.Getenv("RINGD_FSYNC"); v != "" {
		cfg.Fsync = v
	}
	if v := os.Getenv("RINGD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("RINGD_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
}
