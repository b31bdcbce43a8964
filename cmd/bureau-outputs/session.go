// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/tidwall/jsonc"

	"github.com/bureau-foundation/outputs/lib/output"
)

// sessionFile is the on-disk description of a compilation session.
// Comments and trailing commas are allowed.
type sessionFile struct {
	// Module overrides the configured module name.
	Module string `json:"module,omitempty"`

	Artifacts []sessionArtifact `json:"artifacts"`
	Packages  []sessionPackage  `json:"packages"`

	// Remove lists internal names retracted after registration.
	Remove []string `json:"remove,omitempty"`

	// Obsolete lists slash-separated part paths dropped from the
	// previous compilation's manifest.
	Obsolete []string `json:"obsolete,omitempty"`
}

type sessionArtifact struct {
	// Name is the internal name, e.g. "org/example/UtilKt".
	Name string `json:"name"`
	// Kind is class (default), package-part, or facade.
	Kind string `json:"kind,omitempty"`
	// File holds the compiled bytes, relative to the session file.
	File    string          `json:"file"`
	Sources []sessionSource `json:"sources,omitempty"`
}

type sessionSource struct {
	// Path is empty for in-memory files.
	Path      string `json:"path"`
	Callables bool   `json:"callables,omitempty"`
}

type sessionPackage struct {
	// Package is the dotted package name. Ignored when Facade is set.
	Package string `json:"package"`
	// Facade is the qualified name of a multi-file facade; its parts
	// belong to the facade's parent package.
	Facade  string          `json:"facade,omitempty"`
	Sources []sessionSource `json:"sources,omitempty"`
	Parts   []sessionPart   `json:"parts"`
}

type sessionPart struct {
	Name   string `json:"name"`
	Facade string `json:"facade,omitempty"`
}

func loadSession(path string) (*sessionFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}
	var session sessionFile
	if err := json.Unmarshal(jsonc.ToJSON(data), &session); err != nil {
		return nil, fmt.Errorf("parsing session %s: %w", path, err)
	}

	baseDirectory := filepath.Dir(path)
	for i := range session.Artifacts {
		artifact := &session.Artifacts[i]
		if artifact.Name == "" {
			return nil, fmt.Errorf("session %s: artifact %d has no name", path, i)
		}
		if artifact.File == "" {
			return nil, fmt.Errorf("session %s: artifact %s has no file", path, artifact.Name)
		}
		if !filepath.IsAbs(artifact.File) {
			artifact.File = filepath.Join(baseDirectory, artifact.File)
		}
		if _, err := parseOriginKind(artifact.Kind); err != nil {
			return nil, fmt.Errorf("session %s: artifact %s: %w", path, artifact.Name, err)
		}
	}
	return &session, nil
}

func parseOriginKind(kind string) (output.OriginKind, error) {
	switch kind {
	case "", "class":
		return output.OriginClass, nil
	case "package-part":
		return output.OriginPackagePart, nil
	case "facade":
		return output.OriginFacade, nil
	default:
		return 0, fmt.Errorf("unknown artifact kind %q", kind)
	}
}

func sourceFiles(sources []sessionSource) []output.SourceFile {
	files := make([]output.SourceFile, 0, len(sources))
	for _, source := range sources {
		files = append(files, output.SourceFile{Path: source.Path, HasCallables: source.Callables})
	}
	return files
}

// replay feeds the session into store in file order: artifacts, then
// package parts, then removals.
func (s *sessionFile) replay(store *output.Store) {
	for _, artifact := range s.Artifacts {
		kind, _ := parseOriginKind(artifact.Kind)
		store.RegisterClass(artifact.Name, output.Origin{Kind: kind, Name: artifact.File}, sourceFiles(artifact.Sources))
	}
	for _, entry := range s.Packages {
		var sink *output.PartSink
		if entry.Facade != "" {
			sink = store.ForFacade(entry.Facade, sourceFiles(entry.Sources))
		} else {
			sink = store.ForPackage(entry.Package, sourceFiles(entry.Sources))
		}
		for _, part := range entry.Parts {
			sink.AddPart(part.Name, part.Facade)
		}
	}
	store.Remove(s.Remove...)
}

// fileFactory builds artifacts from files on disk. The origin name is
// the file path; the file is read on every render.
type fileFactory struct{}

func (fileFactory) NewBuilder(origin output.Origin) output.Builder {
	return fileBuilder{path: origin.Name}
}

type fileBuilder struct {
	path string
}

func (b fileBuilder) Bytes() ([]byte, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Text returns UTF-8 content verbatim and a hex dump of anything else.
func (b fileBuilder) Text() (string, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		return "", err
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	return hex.Dump(data), nil
}
