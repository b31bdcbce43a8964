// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

// Extension is the suffix of every manifest file.
const Extension = ".manifest"

// FileName returns the manifest file name for a module: the module
// name followed by [Extension]. Tools locate a module's manifest by
// this name, so the format is fixed.
func FileName(module string) string {
	return module + Extension
}
