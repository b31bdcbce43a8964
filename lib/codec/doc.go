// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec holds the one CBOR configuration used for every binary
// structure this module writes.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. The
// package-part manifest is consumed byte-for-byte by downstream
// tooling, so the same logical table must always produce the same
// bytes. Routing every encode through this package keeps that property
// in one place.
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// Types encoded here use `cbor` struct tags only; none of them are
// shared with JSON.
package codec
