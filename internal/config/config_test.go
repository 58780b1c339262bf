package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if cfg.Crack.Lang != nil || cfg.Crack.MaxKeyLength != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigReadsCrackTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[crack]
lang = "Portuguese"
max-key-length = 12
method = "chi"
reduce = false
tolerance = 0.001
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Crack.Lang == nil || *cfg.Crack.Lang != "Portuguese" {
		t.Fatalf("unexpected lang: %v", cfg.Crack.Lang)
	}
	if cfg.Crack.MaxKeyLength == nil || *cfg.Crack.MaxKeyLength != 12 {
		t.Fatalf("unexpected max key length: %v", cfg.Crack.MaxKeyLength)
	}
	if cfg.Crack.ReducePeriod == nil || *cfg.Crack.ReducePeriod {
		t.Fatalf("expected reduce = false")
	}
	if cfg.Crack.Statistic != nil {
		t.Fatalf("expected statistic unset")
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[crack]\nlanguage = \"en\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "language") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/cfg", "vigcrack", "config.toml") {
		t.Fatalf("unexpected config path %s", got)
	}
	if got := DefaultTableDir(); got != filepath.Join("/tmp/cfg", "vigcrack", "tables") {
		t.Fatalf("unexpected table dir %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/tmp/data", "vigcrack", "vigcrack.db") {
		t.Fatalf("unexpected db path %s", got)
	}
	if got := DefaultClearDir(); got != filepath.Join("/tmp/data", "vigcrack", "clear") {
		t.Fatalf("unexpected clear dir %s", got)
	}
}
