// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package manifest encodes the package-part table of a compilation
// session into the binary manifest that downstream tooling reads to
// resolve facade membership.
//
// Layout (all integers little-endian):
//
//	offset  size  field
//	0       8     magic "PKGMAP" + version byte + reserved byte
//	8       1     compression tag
//	9       3     reserved, zero
//	12      4     uncompressed body length
//	16      4     stored body length
//	20      n     body
//	20+n    32    BLAKE3 manifest-domain digest of the uncompressed body
//
// The body is CBOR in Core Deterministic Encoding (see lib/codec). Each
// package carries its part names, a table of distinct facade names in
// first-use order, and a per-part facade index (1-based, 0 for parts
// without a facade). The encoder sorts nothing itself: callers pass a
// table already ordered by [grouping.Sort], which is what makes the
// output stable across compilation orders.
//
// The file name is a cross-tool contract: [FileName] derives it from
// the module name and must not change format.
package manifest
