package synth

import (
	"strings"

	"jjdivide/internal/division/model"
)

// specializedPattern pairs a path predicate with the fixed kind/confidence
// it always emits when at least one file in a DiffResult matches (spec §4.8).
// Predicates are data-driven per-file functions; the label/kind/confidence
// triple is the data a test suite asserts against.
type specializedPattern struct {
	label      string
	predicate  func(path string) bool
	kind       model.ChangeKind
	confidence float64
}

var specializedPatterns = []specializedPattern{
	{
		label:      "Documentation updates",
		predicate:  isDocsPath,
		kind:       model.Docs,
		confidence: 0.95,
	},
	{
		label:      "Test changes",
		predicate:  isTestPath,
		kind:       model.Tests,
		confidence: 0.95,
	},
	{
		label:      "Configuration changes",
		predicate:  isConfigPath,
		kind:       model.Chore,
		confidence: 0.9,
	},
}

func isDocsPath(path string) bool {
	lower := strings.ToLower(path)
	if strings.Contains(lower, "/doc/") || strings.Contains(lower, "/docs/") {
		return true
	}
	for _, suf := range []string{".md", ".rst", ".txt"} {
		if strings.HasSuffix(lower, suf) {
			return true
		}
	}
	return strings.Contains(lower, "readme") || strings.Contains(lower, "contributing")
}

func isTestPath(path string) bool {
	lower := strings.ToLower(path)
	base := lower
	if idx := strings.LastIndexByte(lower, '/'); idx >= 0 {
		base = lower[idx+1:]
	}
	if strings.Contains(lower, "/test/") || strings.Contains(lower, "/tests/") {
		return true
	}
	if strings.HasPrefix(base, "test_") {
		return true
	}
	ext := extensionOf(lower)
	if ext != "" {
		if strings.HasSuffix(lower, "_test."+ext) || strings.HasSuffix(lower, ".test."+ext) {
			return true
		}
	}
	return false
}

var configExtensions = map[string]struct{}{
	"conf": {}, "config": {}, "json": {}, "yml": {}, "yaml": {}, "toml": {}, "ini": {},
}

func isConfigPath(path string) bool {
	_, ok := configExtensions[extensionOf(strings.ToLower(path))]
	return ok
}

func extensionOf(path string) string {
	idx := strings.LastIndexByte(path, '.')
	slash := strings.LastIndexByte(path, '/')
	if idx <= slash {
		return ""
	}
	return path[idx+1:]
}

// specializedChangePatterns returns the specialized patterns that match d,
// each covering every path in d that satisfies its predicate.
func specializedChangePatterns(d model.DiffResult) []model.ChangePattern {
	var out []model.ChangePattern
	for _, sp := range specializedPatterns {
		var files []string
		for _, f := range d.Files {
			if sp.predicate(f.Path) {
				files = append(files, f.Path)
			}
		}
		if len(files) == 0 {
			continue
		}
		out = append(out, model.ChangePattern{
			Label:      sp.label,
			Confidence: sp.confidence,
			Kind:       sp.kind,
			Files:      files,
			Keywords:   unionKeywordsForPaths(d, files),
		})
	}
	return out
}
