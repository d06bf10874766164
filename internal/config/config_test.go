package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.Capacity != 10 {
		t.Fatalf("capacity: %d", cfg.Capacity)
	}
	if cfg.DelimiterByte() != '\n' {
		t.Fatalf("delimiter: %q", cfg.DelimiterByte())
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ringd.json")
	body := `{"capacity": 3, "tcpAddr": ":9100", "delimiter": ";"}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Capacity != 3 || cfg.TCPAddr != ":9100" || cfg.DelimiterByte() != ';' {
		t.Fatalf("loaded config: %+v", cfg)
	}
	// Untouched values keep defaults.
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("default overlay lost: %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("RINGD_CAPACITY", "5")
	t.Setenv("RINGD_TCP_ADDR", ":9999")
	t.Setenv("RINGD_ARCHIVE", "true")
	t.Setenv("RINGD_DATA_DIR", "/tmp/ringd-data")
	cfg := Default()
	FromEnv(&cfg)
	if cfg.Capacity != 5 || cfg.TCPAddr != ":9999" || !cfg.ArchiveEnabled || cfg.DataDir != "/tmp/ringd-data" {
		t.Fatalf("env overlay: %+v", cfg)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Capacity = -1
	if err := cfg.Validate(); err == nil {
		t.Fatalf("negative capacity should fail")
	}

	cfg = Default()
	cfg.Delimiter = ";;"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("multi-char delimiter should fail")
	}

	cfg = Default()
	cfg.ArchiveEnabled = true
	if err := cfg.Validate(); err == nil {
		t.Fatalf("archive without data dir should fail")
	}

	cfg = Default()
	cfg.Fsync = "sometimes"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("bad fsync mode should fail")
	}
}
