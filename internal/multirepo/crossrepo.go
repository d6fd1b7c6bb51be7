// Package multirepo implements the cross-repository dependency analyzer and
// coordinated-proposal coordinator (spec §3, §4.10).
package multirepo

import (
	"strings"

	"jjdivide/internal/division/keywords"
	"jjdivide/internal/division/model"
	"jjdivide/internal/division/symbols"
)

// DependencyKind distinguishes a symbol-level import from a looser
// keyword-overlap reference (spec §4.10).
type DependencyKind string

const (
	Import    DependencyKind = "import"
	Reference DependencyKind = "reference"
)

// CrossRepoDependency is one inferred dependency edge between two
// repositories' changesets.
type CrossRepoDependency struct {
	Source     string
	Target     string
	Kind       DependencyKind
	Confidence float64
}

// repoIndex caches the per-repo keyword set and symbol names so Analyze's
// O(n^2) pair loop does not re-extract them per pair.
type repoIndex struct {
	keywords map[string]struct{}
	symbols  map[string]struct{} // lowercased symbol names declared in this repo
	added    []string            // every added-line's content, for import detection
}

// Analyze extracts a union keyword set per repository from diffs, then
// emits a CrossRepoDependency for every ordered pair (a, b) in names whose
// keyword sets intersect. Confidence is |intersection| / max(|a|, |b|)
// capped at 0.95. Kind is Import when a symbol name declared in b appears on
// one of a's added lines (detected via the symbol extractor), else
// Reference (spec §4.10).
func Analyze(diffs map[string]model.DiffResult, names []string) []CrossRepoDependency {
	indexes := make(map[string]repoIndex, len(names))
	for _, name := range names {
		indexes[name] = buildIndex(diffs[name])
	}

	var deps []CrossRepoDependency
	for _, a := range names {
		for _, b := range names {
			if a == b {
				continue
			}
			ia, ib := indexes[a], indexes[b]
			inter := keywords.Intersection(ia.keywords, ib.keywords)
			if len(inter) == 0 {
				continue
			}
			confidence := float64(len(inter)) / float64(maxInt(len(ia.keywords), len(ib.keywords)))
			if confidence > 0.95 {
				confidence = 0.95
			}
			kind := Reference
			if symbolAppearsOnAddedLine(ib.symbols, ia.added) {
				kind = Import
			}
			deps = append(deps, CrossRepoDependency{
				Source:     a,
				Target:     b,
				Kind:       kind,
				Confidence: confidence,
			})
		}
	}
	return deps
}

func buildIndex(d model.DiffResult) repoIndex {
	sets, _ := keywords.ExtractFiles(d)
	setList := make([]map[string]struct{}, 0, len(sets))
	for _, s := range sets {
		setList = append(setList, s)
	}
	union := keywords.Union(setList...)
	keywordSet := make(map[string]struct{}, len(union))
	for _, k := range union {
		keywordSet[k] = struct{}{}
	}

	symbolSet := make(map[string]struct{})
	for _, sym := range symbols.ExtractDiff(d) {
		symbolSet[strings.ToLower(sym.Name)] = struct{}{}
	}

	var added []string
	for _, f := range d.Files {
		for _, line := range strings.Split(f.Patch, "\n") {
			if model.IsAddedLine(line) {
				added = append(added, strings.ToLower(line))
			}
		}
	}

	return repoIndex{keywords: keywordSet, symbols: symbolSet, added: added}
}

// symbolAppearsOnAddedLine reports whether any name in symbolNames occurs as
// a substring of any line in addedLines.
func symbolAppearsOnAddedLine(symbolNames map[string]struct{}, addedLines []string) bool {
	for name := range symbolNames {
		if name == "" {
			continue
		}
		for _, line := range addedLines {
			if strings.Contains(line, name) {
				return true
			}
		}
	}
	return false
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
