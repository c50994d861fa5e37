package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tonylturner/merlinctl/internal/logging"
	"github.com/tonylturner/merlinctl/internal/programs"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "merlinctl.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: verbose
  format: json
  log_every_n: 10
output:
  format: yaml
  color: false
labels:
  fallback: "Warming up"
theme:
  colors:
    drizzle-red: "#aa0000"
catalog:
  file: /etc/merlin/programs.toml
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.LogLevel() != logging.LogLevelVerbose {
		t.Errorf("log level: got %d, want verbose", cfg.LogLevel())
	}
	if cfg.Logging.Format != "json" || cfg.Logging.LogEveryN != 10 {
		t.Errorf("logging: got %+v", cfg.Logging)
	}
	if cfg.Output.Format != "yaml" {
		t.Errorf("output format: got %q", cfg.Output.Format)
	}
	if cfg.ColorEnabled() {
		t.Error("color should be disabled")
	}
	if cfg.Labels.Fallback != "Warming up" {
		t.Errorf("fallback: got %q", cfg.Labels.Fallback)
	}
	if cfg.Theme.Colors["drizzle-red"] != "#aa0000" {
		t.Errorf("theme colors: got %v", cfg.Theme.Colors)
	}
	if cfg.Catalog.File != "/etc/merlin/programs.toml" {
		t.Errorf("catalog file: got %q", cfg.Catalog.File)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "logging:\n  file: /tmp/merlinctl.log\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" || cfg.Logging.LogEveryN != 1 {
		t.Errorf("logging defaults not applied: %+v", cfg.Logging)
	}
	if cfg.Logging.File != "/tmp/merlinctl.log" {
		t.Errorf("file: got %q", cfg.Logging.File)
	}
	if cfg.Output.Format != "table" || !cfg.ColorEnabled() {
		t.Errorf("output defaults not applied: %+v", cfg.Output)
	}
	if cfg.Labels.Fallback != programs.DefaultFallbackLabel {
		t.Errorf("fallback: got %q, want %q", cfg.Labels.Fallback, programs.DefaultFallbackLabel)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should yield defaults, got %v", err)
	}
	if cfg.Output.Format != "table" {
		t.Errorf("expected default output format, got %q", cfg.Output.Format)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "bad yaml", content: "logging: [", wantErr: "parse YAML"},
		{name: "bad level", content: "logging:\n  level: loud\n", wantErr: "logging.level"},
		{name: "bad format", content: "logging:\n  format: xml\n", wantErr: "logging.format"},
		{name: "bad sampling", content: "logging:\n  log_every_n: -2\n", wantErr: "logging.log_every_n"},
		{name: "bad output", content: "output:\n  format: csv\n", wantErr: "output.format"},
		{name: "blank fallback", content: "labels:\n  fallback: \"  \"\n", wantErr: "labels.fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := LoadConfig(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), path) {
				t.Errorf("error should name the config path: %v", err)
			}
		})
	}
}

func TestWriteDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.yaml")
	if err := WriteDefaultConfig(path); err != nil {
		t.Fatalf("WriteDefaultConfig: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("reload default config: %v", err)
	}
	want := CreateDefaultConfig()
	if cfg.Logging != want.Logging || cfg.Output.Format != want.Output.Format || cfg.Labels != want.Labels {
		t.Errorf("round trip mismatch: got %+v, want %+v", cfg, want)
	}
}

func TestDefaultPath(t *testing.T) {
	if !strings.HasSuffix(DefaultPath(), DefaultFileName) {
		t.Errorf("DefaultPath() = %q", DefaultPath())
	}
}
