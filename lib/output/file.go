// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"strings"
)

// File is a view of one artifact in a [Store]. It holds only the path;
// every method reads the store's current record, so a File obtained
// before [Store.Remove] or [Store.Release] reports ErrNoSuchArtifact
// afterwards.
type File struct {
	store *Store
	path  string
}

// Path returns the artifact's relative path.
func (f File) Path() string {
	return f.path
}

// SourceFiles returns the source files the artifact was compiled from.
func (f File) SourceFiles() ([]string, error) {
	return f.store.SourceFiles(f.path)
}

// Bytes renders the artifact.
func (f File) Bytes() ([]byte, error) {
	return f.store.Bytes(f.path)
}

// Text renders the artifact's text form.
func (f File) Text() (string, error) {
	return f.store.Text(f.path)
}

func (f File) String() string {
	sources, err := f.SourceFiles()
	if err != nil {
		return f.path + " (removed)"
	}
	return fmt.Sprintf("%s (compiled from [%s])", f.path, strings.Join(sources, ", "))
}
