// Package grouper implements the semantic grouper (spec §4.6). This is a
// single-pass, non-transitive expansion over the dependency graph — NOT
// full connected components. The spec requires this exact semantics so
// tests are reproducible; see spec.md §9 for the open question over whether
// this is intended.
package grouper

import (
	"jjdivide/internal/division/deps"
	"jjdivide/internal/division/model"
)

// Group is an ordered, deduplicated list of file paths.
type Group []string

// Partition groups d.Files into groups using g. Iteration follows the order
// of d.Files for determinism.
func Partition(d model.DiffResult, g deps.Graph) []Group {
	processed := make(map[string]struct{})
	var groups []Group

	for _, f := range d.Files {
		if _, done := processed[f.Path]; done {
			continue
		}
		neighbors := g[f.Path]
		if len(neighbors) == 0 {
			continue
		}
		group := Group{f.Path}
		processed[f.Path] = struct{}{}
		for _, n := range neighbors {
			if _, done := processed[n]; done {
				continue
			}
			group = append(group, n)
			processed[n] = struct{}{}
		}
		groups = append(groups, group)
	}

	for _, f := range d.Files {
		if _, done := processed[f.Path]; done {
			continue
		}
		groups = append(groups, Group{f.Path})
		processed[f.Path] = struct{}{}
	}

	return groups
}
