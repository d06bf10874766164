package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	// Capacity is the ring's fixed record slot count.
	Capacity int `json:"capacity"`
	// Delimiter is the single-character record terminator.
	Delimiter string `json:"delimiter"`
	// MaxPendingBytes bounds unterminated input; zero means unbounded.
	MaxPendingBytes int `json:"maxPendingBytes"`

	TCPAddr  string `json:"tcpAddr"`
	HTTPAddr string `json:"httpAddr"`

	// DataDir holds the archive database when archiving is enabled.
	DataDir        string `json:"dataDir"`
	ArchiveEnabled bool   `json:"archiveEnabled"`
	// Fsync is the archive WAL policy: always|interval|never.
	Fsync string `json:"fsync"`

	LogLevel  string `json:"logLevel"`
	LogFormat string `json:"logFormat"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		Capacity:  10,
		Delimiter: "\n",
		TCPAddr:   ":9000",
		HTTPAddr:  ":8080",
		Fsync:     "always",
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads configuration from a JSON file, overlaying defaults. An empty
// path returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks constraints that would otherwise surface as runtime
// misbehavior.
func (c Config) Validate() error {
	if c.Capacity < 0 {
		return fmt.Errorf("config: capacity must be >= 0, got %d", c.Capacity)
	}
	if len(c.Delimiter) > 1 {
		return fmt.Errorf("config: delimiter must be a single character, got %q", c.Delimiter)
	}
	if c.MaxPendingBytes < 0 {
		return fmt.Errorf("config: maxPendingBytes must be >= 0, got %d", c.MaxPendingBytes)
	}
	if c.ArchiveEnabled && c.DataDir == "" {
		return fmt.Errorf("config: dataDir required when archive is enabled")
	}
	switch c.Fsync {
	case "", "always", "interval", "never":
	default:
		return fmt.Errorf("config: invalid fsync mode %q", c.Fsync)
	}
	return nil
}

// DelimiterByte returns the configured delimiter as a byte, defaulting to
// newline.
func (c Config) DelimiterByte() byte {
	if c.Delimiter == "" {
		return '\n'
	}
	return c.Delimiter[0]
}
