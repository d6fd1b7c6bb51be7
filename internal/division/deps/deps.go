// Package deps implements the dependency analyzer (spec §4.5): for every
// ordered pair of files it emits an edge when their keyword sets intersect.
package deps

import (
	"jjdivide/internal/division/keywords"
	"jjdivide/internal/division/model"
)

// Graph is a directed adjacency map keyed by path (spec §9 design notes:
// avoid pointer/reference graphs, use path strings as stable handles).
type Graph map[string][]string

// Analyze builds the dependency graph for d. Complexity O(F^2 x K).
func Analyze(d model.DiffResult) Graph {
	sets, order := keywords.ExtractFiles(d)
	g := make(Graph, len(order))
	for _, a := range order {
		g[a] = nil
	}
	for i, a := range order {
		for j, b := range order {
			if i == j {
				continue
			}
			if keywords.Intersects(sets[a], sets[b]) {
				g[a] = append(g[a], b)
			}
		}
	}
	return g
}
