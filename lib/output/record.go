// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"github.com/bureau-foundation/outputs/lib/grouping"
)

// OriginKind classifies the declaration an artifact is generated from.
type OriginKind uint8

const (
	OriginClass OriginKind = iota
	OriginPackagePart
	OriginFacade
)

func (k OriginKind) String() string {
	switch k {
	case OriginClass:
		return "class"
	case OriginPackagePart:
		return "package-part"
	case OriginFacade:
		return "facade"
	default:
		return "unknown"
	}
}

// Origin identifies what an artifact is generated from. The store never
// inspects it; it is passed unchanged to [Factory.NewBuilder].
type Origin struct {
	Kind OriginKind
	Name string
}

// Builder renders one generated artifact. Both methods may be called
// any number of times and may redo expensive work on each call.
type Builder interface {
	Bytes() ([]byte, error)
	Text() (string, error)
}

// Factory creates a Builder for each registered artifact. The code
// generator writes into the returned builder; the store asks it for
// bytes or text later.
type Factory interface {
	NewBuilder(origin Origin) Builder
}

// ManifestEncoder turns the merged package-part table into the
// manifest's binary and text forms. manifest.Encoder is the standard
// implementation.
type ManifestEncoder interface {
	Encode(groups []grouping.Group) ([]byte, error)
	Render(groups []grouping.Group) (string, error)
}

type recordKind uint8

const (
	generatedRecord recordKind = iota
	syntheticRecord
)

// record is one entry of the store. Exactly one of builder (generated)
// or table (synthetic) is set, selected by kind.
type record struct {
	kind    recordKind
	sources []string

	builder Builder

	table   []grouping.Group
	encoder ManifestEncoder
}

func (r *record) bytes() ([]byte, error) {
	switch r.kind {
	case generatedRecord:
		return r.builder.Bytes()
	case syntheticRecord:
		return r.encoder.Encode(r.table)
	default:
		panic("output: unknown record kind")
	}
}

func (r *record) text() (string, error) {
	switch r.kind {
	case generatedRecord:
		return r.builder.Text()
	case syntheticRecord:
		return r.encoder.Render(r.table)
	default:
		panic("output: unknown record kind")
	}
}
