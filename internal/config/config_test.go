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
		t.Fatalf("missing file must not fail: %v", err)
	}
	if cfg.Serie.Sort != nil || cfg.Input.XColumn != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[serie]
sort = true
order = "date"
direction = "DESC"
fill-null-date-values = true

[input]
x-column = "day"
date-format = "02/01/2006"

[output]
format = "json"
pretty = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Serie.Sort == nil || !*cfg.Serie.Sort {
		t.Fatalf("expected sort=true")
	}
	if cfg.Serie.Order == nil || *cfg.Serie.Order != "date" {
		t.Fatalf("expected order=date")
	}
	if cfg.Serie.Cumulative != nil {
		t.Fatalf("unset keys must stay nil")
	}
	if cfg.Input.XColumn == nil || *cfg.Input.XColumn != "day" {
		t.Fatalf("expected x-column=day")
	}
	if cfg.Output.Pretty == nil || !*cfg.Output.Pretty {
		t.Fatalf("expected pretty=true")
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[serie]\nsorted = true\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "serie.sorted") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("POINTPREP_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/xdg", "pointprep", "config.toml") {
		t.Fatalf("unexpected path %q", got)
	}
	t.Setenv("POINTPREP_CONFIG", "/etc/pointprep.toml")
	if got := DefaultConfigPath(); got != "/etc/pointprep.toml" {
		t.Fatalf("expected override, got %q", got)
	}
}
