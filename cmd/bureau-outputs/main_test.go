// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/outputs/lib/grouping"
	"github.com/bureau-foundation/outputs/lib/manifest"
)

const sessionText = `{
  // One class, one facade part, one retracted class.
  "module": "m",
  "artifacts": [
    {"name": "p/Q", "file": "classes/Q.bin", "sources": [{"path": "src/p/Q.kt", "callables": true}]},
    {"name": "p/U__UtilKt", "kind": "package-part", "file": "classes/U.bin", "sources": [{"path": "src/p/U.kt"}]},
    {"name": "p/Stale", "file": "classes/Q.bin"},
  ],
  "packages": [
    {"package": "p", "sources": [{"path": "src/p/Q.kt", "callables": true}], "parts": [{"name": "Q"}]},
    {"facade": "p.UtilKt", "sources": [{"path": "src/p/U.kt", "callables": true}], "parts": [{"name": "U__UtilKt", "facade": "UtilKt"}]},
  ],
  "remove": ["p/Stale"],
}`

func writeSession(t *testing.T) string {
	t.Helper()
	directory := t.TempDir()
	if err := os.MkdirAll(filepath.Join(directory, "classes"), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	for name, content := range map[string][]byte{
		"classes/Q.bin": {1, 2, 3},
		"classes/U.bin": {4, 5},
		"session.jsonc": []byte(sessionText),
	} {
		if err := os.WriteFile(filepath.Join(directory, name), content, 0o644); err != nil {
			t.Fatalf("WriteFile %s: %v", name, err)
		}
	}
	return filepath.Join(directory, "session.jsonc")
}

func runCommand(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestBuildAndInspect(t *testing.T) {
	t.Setenv("OUTPUTS_CONFIG", "")
	sessionPath := writeSession(t)
	outputDir := t.TempDir()

	code, stdout, stderr := runCommand(t, "build", "--session", sessionPath, "--out", outputDir, "--log-level", "error")
	if code != 0 {
		t.Fatalf("build exited %d: %s", code, stderr)
	}
	for _, path := range []string{"p/Q.bin", "p/U__UtilKt.bin", "m.manifest"} {
		if !strings.Contains(stdout, path) {
			t.Errorf("build output does not list %s:\n%s", path, stdout)
		}
	}
	if strings.Contains(stdout, "p/Stale.bin") {
		t.Errorf("removed artifact was written:\n%s", stdout)
	}

	data, err := os.ReadFile(filepath.Join(outputDir, "p", "Q.bin"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(data, []byte{1, 2, 3}) {
		t.Errorf("p/Q.bin = %v", data)
	}
	if _, err := os.Stat(filepath.Join(outputDir, "p", "Stale.bin")); !os.IsNotExist(err) {
		t.Errorf("p/Stale.bin exists (err=%v)", err)
	}

	manifestPath := filepath.Join(outputDir, manifest.FileName("m"))
	code, stdout, stderr = runCommand(t, "inspect", manifestPath)
	if code != 0 {
		t.Fatalf("inspect exited %d: %s", code, stderr)
	}
	want := "package p\n  Q\n  U__UtilKt -> UtilKt\n1 packages, 2 parts, none compression\n"
	if stdout != want {
		t.Errorf("inspect output:\n%s\nwant:\n%s", stdout, want)
	}

	code, stdout, stderr = runCommand(t, "inspect", "--diagnose", manifestPath)
	if code != 0 {
		t.Fatalf("inspect --diagnose exited %d: %s", code, stderr)
	}
	if !strings.Contains(stdout, `"UtilKt"`) {
		t.Errorf("diagnostic output missing facade name:\n%s", stdout)
	}
}

func TestBuildMergesCompiledManifest(t *testing.T) {
	t.Setenv("OUTPUTS_CONFIG", "")
	sessionPath := writeSession(t)
	directory := t.TempDir()
	compiledPath := filepath.Join(directory, "previous.manifest")

	previous, err := manifest.Encoder{}.Encode([]grouping.Group{
		{Package: "q", Parts: []grouping.Part{{Name: "R"}}},
	})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if err := os.WriteFile(compiledPath, previous, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	configPath := filepath.Join(directory, "outputs.yaml")
	configText := "manifest:\n  compression: zstd\n  directory: META-INF\n  compiled: " + compiledPath + "\n"
	if err := os.WriteFile(configPath, []byte(configText), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	outputDir := filepath.Join(directory, "out")
	code, _, stderr := runCommand(t, "build", "--config", configPath, "--session", sessionPath, "--out", outputDir)
	if code != 0 {
		t.Fatalf("build exited %d: %s", code, stderr)
	}
	data, err := os.ReadFile(filepath.Join(outputDir, "META-INF", "m.manifest"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	groups, err := manifest.Decode(data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(groups) != 2 || groups[0].Package != "p" || len(groups[0].Parts) != 2 || groups[1].Package != "q" {
		t.Errorf("manifest table = %+v", groups)
	}
}

func TestBuildReportsMissingArtifactFile(t *testing.T) {
	t.Setenv("OUTPUTS_CONFIG", "")
	sessionPath := writeSession(t)
	if err := os.Remove(filepath.Join(filepath.Dir(sessionPath), "classes", "U.bin")); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	code, _, stderr := runCommand(t, "build", "--session", sessionPath, "--out", t.TempDir())
	if code != 1 {
		t.Fatalf("build exited %d, want 1", code)
	}
	if !strings.Contains(stderr, "p/U__UtilKt.bin") || !strings.Contains(stderr, "src/p/U.kt") {
		t.Errorf("error does not name the artifact and its source: %s", stderr)
	}
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no arguments", nil},
		{"unknown command", []string{"frobnicate"}},
		{"build without session", []string{"build"}},
		{"build with bad flag", []string{"build", "--nope"}},
		{"inspect without path", []string{"inspect"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if code, _, _ := runCommand(t, test.args...); code != 2 {
				t.Errorf("exit code = %d, want 2", code)
			}
		})
	}
}

func TestInspectRejectsCorruptManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.manifest")
	if err := os.WriteFile(path, []byte("garbage"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	code, _, stderr := runCommand(t, "inspect", path)
	if code != 1 || !strings.Contains(stderr, "corrupt") {
		t.Errorf("inspect exited %d with %q, want 1 and a corruption error", code, stderr)
	}
}

func TestVersion(t *testing.T) {
	code, stdout, _ := runCommand(t, "--version")
	if code != 0 || !strings.HasPrefix(stdout, binaryName+" ") {
		t.Errorf("--version exited %d with %q", code, stdout)
	}
}
