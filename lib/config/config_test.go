// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "outputs.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Artifacts.Extension != ".bin" {
		t.Errorf("expected extension=.bin, got %s", cfg.Artifacts.Extension)
	}
	if cfg.Manifest.Compression != "none" {
		t.Errorf("expected compression=none, got %s", cfg.Manifest.Compression)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoad_RequiresOutputsConfig(t *testing.T) {
	t.Setenv(EnvConfig, "")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error when OUTPUTS_CONFIG not set, got nil")
	}
	if !strings.HasPrefix(err.Error(), "OUTPUTS_CONFIG environment variable not set") {
		t.Errorf("unexpected error message: %q", err.Error())
	}
}

func TestLoad_WithOutputsConfig(t *testing.T) {
	path := writeConfig(t, `
module: app
paths:
  root: /work
manifest:
  directory: META-INF
  compression: zstd
`)
	t.Setenv(EnvConfig, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Module != "app" {
		t.Errorf("expected module=app, got %s", cfg.Module)
	}
	if cfg.Manifest.Directory != "META-INF" || cfg.Manifest.Compression != "zstd" {
		t.Errorf("manifest config = %+v", cfg.Manifest)
	}
	// Unset fields keep their defaults.
	if cfg.Artifacts.Extension != ".bin" {
		t.Errorf("expected default extension, got %s", cfg.Artifacts.Extension)
	}
}

func TestLoadFile_ExpandsVariables(t *testing.T) {
	t.Setenv("BUILD_DIR", "")
	path := writeConfig(t, `
paths:
  root: /work
manifest:
  compiled: ${OUTPUTS_ROOT}/previous/${BUILD_DIR:-default}/m.manifest
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if want := filepath.Join("/work", "out"); cfg.Paths.Output != want {
		t.Errorf("expected output=%s, got %s", want, cfg.Paths.Output)
	}
	if want := "/work/previous/default/m.manifest"; cfg.Manifest.Compiled != want {
		t.Errorf("expected compiled=%s, got %s", want, cfg.Manifest.Compiled)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := LoadFile(writeConfig(t, "module: [unterminated")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Artifacts.Extension = "bin"
	cfg.Manifest.Directory = "/abs"
	cfg.Manifest.Compression = "gzip"
	cfg.Log.Level = "loud"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, fragment := range []string{"artifacts.extension", "manifest.directory", "manifest.compression", "log.level"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Errorf("validation error does not mention %s: %v", fragment, err)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
	}
	for _, test := range tests {
		got, err := ParseLevel(test.input)
		if err != nil || got != test.want {
			t.Errorf("ParseLevel(%q) = %v, %v; want %v", test.input, got, err, test.want)
		}
	}

	cfg := Default()
	cfg.Log.Level = "bogus"
	if cfg.SlogLevel() != slog.LevelInfo {
		t.Error("invalid level did not fall back to info")
	}
}
