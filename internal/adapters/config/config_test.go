package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
broker = "mqtt://localhost:1883"
identity = "car"

[aliases]
dash = "mu:browse:dash"

[defaults]
browse = "dash"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Broker != "mqtt://localhost:1883" || cfg.Identity != "car" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Defaults.Browse != "dash" || cfg.Aliases["dash"] != "mu:browse:dash" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestLoadFileMissing(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Aliases == nil {
		t.Fatalf("expected empty alias map")
	}
}

func TestLoadFileDirectory(t *testing.T) {
	if _, err := LoadFile(t.TempDir()); err == nil {
		t.Fatalf("expected error for directory")
	}
}
