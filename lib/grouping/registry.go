// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package grouping

import (
	"slices"
)

// Part is one compiled unit contributing top-level declarations to a
// package. Facade is the short name of the multi-file facade that
// exposes the part, or empty when the part is not behind a facade.
type Part struct {
	Name   string
	Facade string
}

// HasFacade reports whether the part is exposed through a facade.
func (p Part) HasFacade() bool {
	return p.Facade != ""
}

// Group is the ordered list of parts reported for one package.
type Group struct {
	Package string
	Parts   []Part
}

// Clone returns a copy of g that shares no memory with it.
func (g Group) Clone() Group {
	return Group{Package: g.Package, Parts: slices.Clone(g.Parts)}
}

// Registry accumulates package-part facts for one compilation session.
// It performs no de-duplication: a part recorded twice appears twice.
// Registry is not safe for concurrent use.
type Registry struct {
	order      []string
	groups     map[string]*Group
	provenance map[string]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		groups:     make(map[string]*Group),
		provenance: make(map[string]struct{}),
	}
}

// Record appends a part to the named package, creating the package on
// first use. Pass an empty facade for parts that are not behind a
// facade.
func (r *Registry) Record(packageName, partName, facade string) {
	group, exists := r.groups[packageName]
	if !exists {
		group = &Group{Package: packageName}
		r.groups[packageName] = group
		r.order = append(r.order, packageName)
	}
	group.Parts = append(group.Parts, Part{Name: partName, Facade: facade})
}

// RecordProvenance adds source files that contributed top-level
// callables. The manifest lists them as its sources.
func (r *Registry) RecordProvenance(files ...string) {
	for _, file := range files {
		r.provenance[file] = struct{}{}
	}
}

// Snapshot returns a copy of every group in the order packages were
// first recorded.
func (r *Registry) Snapshot() []Group {
	snapshot := make([]Group, 0, len(r.order))
	for _, name := range r.order {
		snapshot = append(snapshot, r.groups[name].Clone())
	}
	return snapshot
}

// Provenance returns the recorded source files, sorted.
func (r *Registry) Provenance() []string {
	files := make([]string, 0, len(r.provenance))
	for file := range r.provenance {
		files = append(files, file)
	}
	slices.Sort(files)
	return files
}

// Len returns the number of packages recorded so far.
func (r *Registry) Len() int {
	return len(r.order)
}
