// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the YAML configuration of the outputs tooling.
//
// Configuration comes from a single file named either by the
// OUTPUTS_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no discovery and no per-key environment
// override: what the file says is what runs.
//
// ${HOME}, ${OUTPUTS_ROOT}, and ${VAR:-default} patterns are expanded in
// path fields after loading.
//
// This package depends on no other packages in this module.
package config
