// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package digest provides domain-separated BLAKE3 hashing for build
// outputs.
//
// Two domains exist. The manifest domain covers the decoded body of a
// package-part manifest and is stored in the manifest trailer so that a
// truncated or hand-edited manifest is rejected on load. The output
// domain covers the bytes of any artifact written to disk and is what
// the CLI and logs report. Keeping the domains separate means a
// manifest body and an artifact with identical bytes still hash
// differently.
//
// This package has no dependencies on other packages in this module.
package digest
