// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package grouping accumulates package-part facts reported by the code
// generator and merges them into the canonical table that the manifest
// serializes.
//
// A fact says "the compiled part Q holds top-level declarations of
// package p", optionally adding "and Q is one file of the multi-file
// facade F". [Registry] collects these per package in the order they
// were reported. [Merge] combines them with parts recovered from a
// previous compilation and applies [Sort], so that two sessions fed the
// same facts in different orders produce identical tables.
package grouping
