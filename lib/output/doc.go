// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package output collects the artifacts a code generator produces during
// one compilation session and synthesizes the package-part manifest
// when the session ends.
//
// A [Store] maps relative artifact paths to records in registration
// order. A record holds the source files it was compiled from and a
// producer that renders it on demand. Producers are never cached: every
// [Store.Bytes] or [Store.Text] call runs the producer again. Generated
// records delegate to a [Builder] obtained from the session's
// [Factory]; the single synthetic record serializes the merged
// package-part table through a [ManifestEncoder].
//
// The store is a two-state machine. While [StateOpen] it accepts
// registrations and package-part facts. [Store.Finalize] moves it to
// [StateFinalized] exactly once, merges the facts with those of the
// previous compilation (see [grouping.Merger]), and registers the
// manifest at [Store.ManifestPath] if the table has any parts. After
// that, registering or recording panics with a [*ContractError];
// reading, removing, and releasing remain allowed.
//
// A typical session:
//
//	store, err := output.New(output.Options{Module: "m", Factory: factory})
//	builder := store.Register("p/Q.bin", origin, []string{"src/p/Q.kt"})
//	store.RecordContribution("p", "Q", "")
//	for _, file := range store.List() { // finalizes
//		data, err := file.Bytes()
//		...
//	}
//	store.Release()
package output
