// Package keywords implements the keyword extractor (spec §4.2): it turns a
// patch's added/removed lines into a set of lowercased identifiers used by
// the dependency analyzer, the proposal synthesizer, and the cohesion scorer.
package keywords

import (
	"sort"
	"strings"

	"jjdivide/internal/division/model"
)

// Stopwords is the language-agnostic control-flow/declaration stopword list.
// It is data, not code, so callers can extend it (spec §4.2 permits this).
var Stopwords = map[string]struct{}{
	"if": {}, "else": {}, "elif": {}, "while": {}, "for": {}, "case": {},
	"of": {}, "return": {}, "break": {}, "continue": {}, "yield": {},
	"and": {}, "or": {}, "not": {}, "xor": {}, "shl": {}, "shr": {},
	"func": {}, "proc": {}, "type": {}, "var": {}, "let": {}, "const": {},
	"import": {}, "from": {}, "include": {}, "export": {},
}

// isSeparator reports whether r splits tokens: whitespace and
// "()[]{},;:." are treated as separators.
func isSeparator(r rune) bool {
	switch r {
	case '(', ')', '[', ']', '{', '}', ',', ';', ':', '.':
		return true
	}
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// Extract returns the lowercased identifier set for a patch's content lines.
func Extract(patch string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, line := range strings.Split(patch, "\n") {
		if model.IsMetadataLine(line) {
			continue
		}
		content := line
		if strings.HasPrefix(content, "+") || strings.HasPrefix(content, "-") {
			content = content[1:]
		}
		for _, tok := range strings.FieldsFunc(content, isSeparator) {
			addToken(set, tok)
		}
	}
	return set
}

func addToken(set map[string]struct{}, tok string) {
	tok = strings.TrimSpace(tok)
	if len(tok) <= 2 {
		return
	}
	r := rune(tok[0])
	if !isAlpha(r) {
		return
	}
	lower := strings.ToLower(tok)
	if _, stop := Stopwords[lower]; stop {
		return
	}
	set[lower] = struct{}{}
}

// ExtractFiles returns the per-file keyword set, keyed by path, preserving
// the order of d.Files for deterministic downstream iteration.
func ExtractFiles(d model.DiffResult) (map[string]map[string]struct{}, []string) {
	sets := make(map[string]map[string]struct{}, len(d.Files))
	order := make([]string, 0, len(d.Files))
	for _, f := range d.Files {
		sets[f.Path] = Extract(f.Patch)
		order = append(order, f.Path)
	}
	return sets, order
}

// Union returns the union of a list of keyword sets, sorted lexicographically.
func Union(sets ...map[string]struct{}) []string {
	all := make(map[string]struct{})
	for _, s := range sets {
		for k := range s {
			all[k] = struct{}{}
		}
	}
	out := make([]string, 0, len(all))
	for k := range all {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Intersects reports whether a and b share at least one keyword.
func Intersects(a, b map[string]struct{}) bool {
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	for k := range small {
		if _, ok := large[k]; ok {
			return true
		}
	}
	return false
}

// Intersection returns the set intersection of a and b.
func Intersection(a, b map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{})
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	for k := range small {
		if _, ok := large[k]; ok {
			out[k] = struct{}{}
		}
	}
	return out
}
