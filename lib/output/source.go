// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package output

// SourceFile is a front-end file handed to the store. Path is empty
// for files that exist only in memory (scratch buffers, generated
// stubs); those cannot be tracked by an incremental build and are left
// out of every source list.
type SourceFile struct {
	Path string

	// HasCallables reports whether the file declares top-level
	// functions or properties. Only such files contribute package
	// parts, and only they are recorded as manifest sources.
	HasCallables bool
}

// physicalPaths returns the paths of files that exist on disk, in
// order.
func physicalPaths(files []SourceFile) []string {
	paths := make([]string, 0, len(files))
	for _, file := range files {
		if file.Path != "" {
			paths = append(paths, file.Path)
		}
	}
	return paths
}

// callablePaths returns the physical paths of files with top-level
// callables.
func callablePaths(files []SourceFile) []string {
	var paths []string
	for _, file := range files {
		if file.Path != "" && file.HasCallables {
			paths = append(paths, file.Path)
		}
	}
	return paths
}
