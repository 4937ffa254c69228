package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) *FileLoader {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return &FileLoader{Path: path}
}

func TestLoad_MissingFileIsZeroConfig(t *testing.T) {
	loader := &FileLoader{Path: filepath.Join(t.TempDir(), "absent.yaml")}
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if cfg.AWS.DefaultProfile != "" || cfg.Scan.Parallel || cfg.Output.Format != "" {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestLoad_FullConfig(t *testing.T) {
	loader := writeConfig(t, `
aws:
  default_profile: prod
  default_regions:
    - us-east-1
    - eu-west-1
scan:
  parallel: true
  workers: 8
  hardening: true
output:
  format: json
  colored: true
`)

	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AWS.DefaultProfile != "prod" {
		t.Errorf("default profile = %q, want prod", cfg.AWS.DefaultProfile)
	}
	if len(cfg.AWS.DefaultRegions) != 2 || cfg.AWS.DefaultRegions[1] != "eu-west-1" {
		t.Errorf("default regions = %v", cfg.AWS.DefaultRegions)
	}
	if !cfg.Scan.Parallel || cfg.Scan.Workers != 8 || !cfg.Scan.Hardening {
		t.Errorf("scan config = %+v", cfg.Scan)
	}
	if cfg.Output.Format != "json" || !cfg.Output.Colored {
		t.Errorf("output config = %+v", cfg.Output)
	}
}

func TestLoad_PartialConfigKeepsZeroDefaults(t *testing.T) {
	loader := writeConfig(t, "aws:\n  default_profile: staging\n")

	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AWS.DefaultProfile != "staging" {
		t.Errorf("default profile = %q, want staging", cfg.AWS.DefaultProfile)
	}
	if cfg.Scan.Parallel || cfg.Scan.Workers != 0 || cfg.Output.Format != "" {
		t.Errorf("expected zero defaults for unset sections, got %+v", cfg)
	}
}

func TestLoad_InvalidFormatRejected(t *testing.T) {
	loader := writeConfig(t, "output:\n  format: xml\n")
	if _, err := loader.Load(); err == nil {
		t.Fatal("expected error for unsupported output format")
	}
}

func TestLoad_NegativeWorkersRejected(t *testing.T) {
	loader := writeConfig(t, "scan:\n  workers: -2\n")
	if _, err := loader.Load(); err == nil {
		t.Fatal("expected error for negative worker count")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	loader := writeConfig(t, "aws: [unclosed\n")
	if _, err := loader.Load(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestNewFileLoader_DefaultPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	loader, err := NewFileLoader()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := filepath.Join(os.Getenv("HOME"), ".config", "posturescan", "config.yaml")
	if loader.ConfigPath() != want {
		t.Errorf("path = %q, want %q", loader.ConfigPath(), want)
	}
}
