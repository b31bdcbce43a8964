// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package grouping

import (
	"slices"
	"strings"
)

// Merger combines freshly recorded groups with facts recovered from an
// earlier compilation of the same module. Implementations must be
// deterministic: identical inputs produce identical output, already
// sorted with [Sort].
type Merger interface {
	MergeCompiled(fresh []Group, module string) []Group
}

// Compiled is the default [Merger]. Groups holds the table of a
// previously written manifest; Obsolete names compiled parts that the
// current session invalidated, as slash-separated paths
// ("org/example/UtilKt"). Obsolete parts are dropped from Groups before
// merging so that a recompiled file does not linger in the manifest.
//
// The zero value merges nothing and only sorts.
type Compiled struct {
	Groups   []Group
	Obsolete []string
}

// MergeCompiled implements [Merger].
func (c Compiled) MergeCompiled(fresh []Group, module string) []Group {
	return Merge(c.withoutObsolete(), fresh)
}

func (c Compiled) withoutObsolete() []Group {
	if len(c.Obsolete) == 0 {
		return c.Groups
	}

	// package -> part names to drop
	drop := make(map[string]map[string]struct{})
	for _, path := range c.Obsolete {
		packageName, partName := SplitPartPath(path)
		if drop[packageName] == nil {
			drop[packageName] = make(map[string]struct{})
		}
		drop[packageName][partName] = struct{}{}
	}

	kept := make([]Group, 0, len(c.Groups))
	for _, group := range c.Groups {
		names, affected := drop[group.Package]
		if !affected {
			kept = append(kept, group)
			continue
		}
		filtered := Group{Package: group.Package}
		for _, part := range group.Parts {
			if _, obsolete := names[part.Name]; !obsolete {
				filtered.Parts = append(filtered.Parts, part)
			}
		}
		kept = append(kept, filtered)
	}
	return kept
}

// SplitPartPath splits a slash-separated part path into its dotted
// package name and the part's short name. A path without a slash
// belongs to the root package.
func SplitPartPath(path string) (packageName, partName string) {
	index := strings.LastIndexByte(path, '/')
	if index < 0 {
		return "", path
	}
	return strings.ReplaceAll(path[:index], "/", "."), path[index+1:]
}

// Merge returns the union of compiled and fresh groups. Within a
// package the compiled parts come first, followed by the fresh ones;
// packages left without parts are dropped. The result is sorted with
// [Sort]. Neither input is modified.
func Merge(compiled, fresh []Group) []Group {
	var order []string
	merged := make(map[string]*Group)

	add := func(groups []Group) {
		for _, group := range groups {
			target, exists := merged[group.Package]
			if !exists {
				target = &Group{Package: group.Package}
				merged[group.Package] = target
				order = append(order, group.Package)
			}
			target.Parts = append(target.Parts, group.Parts...)
		}
	}
	add(compiled)
	add(fresh)

	result := make([]Group, 0, len(order))
	for _, name := range order {
		if group := merged[name]; len(group.Parts) > 0 {
			result = append(result, *group)
		}
	}
	Sort(result)
	return result
}

// Sort orders groups by package name and the parts inside each group
// by part name, then facade name (no facade first). Parts that compare
// equal keep their relative order. Sort modifies groups in place.
func Sort(groups []Group) {
	slices.SortStableFunc(groups, func(a, b Group) int {
		return strings.Compare(a.Package, b.Package)
	})
	for i := range groups {
		slices.SortStableFunc(groups[i].Parts, func(a, b Part) int {
			if c := strings.Compare(a.Name, b.Name); c != 0 {
				return c
			}
			return strings.Compare(a.Facade, b.Facade)
		})
	}
}

// PartCount returns the total number of parts across groups.
func PartCount(groups []Group) int {
	var total int
	for _, group := range groups {
		total += len(group.Parts)
	}
	return total
}
