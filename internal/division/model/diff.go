// Package model holds the typed representation of a multi-file patch and the
// proposal-side entities the division engine produces (spec §3).
package model

import "strings"

// ChangeKind is the closed taxonomy of change kinds. Total order is not
// meaningful; ties between scores break in this declaration order.
type ChangeKind string

const (
	Feature     ChangeKind = "feature"
	Bugfix      ChangeKind = "bugfix"
	Refactor    ChangeKind = "refactor"
	Docs        ChangeKind = "docs"
	Tests       ChangeKind = "tests"
	Style       ChangeKind = "style"
	Performance ChangeKind = "performance"
	Chore       ChangeKind = "chore"
)

// Kinds is the declaration order used to break score ties deterministically.
var Kinds = []ChangeKind{Feature, Bugfix, Refactor, Docs, Tests, Style, Performance, Chore}

// ConventionalType returns the conventional-commits token for a kind (§4.8).
func (k ChangeKind) ConventionalType() string {
	switch k {
	case Feature:
		return "feat"
	case Bugfix:
		return "fix"
	case Refactor:
		return "refactor"
	case Docs:
		return "docs"
	case Tests:
		return "test"
	case Style:
		return "style"
	case Performance:
		return "perf"
	case Chore:
		return "chore"
	default:
		return "chore"
	}
}

// FileChangeKind is the per-file change kind (distinct from ChangeKind, which
// classifies the semantic nature of a change rather than its VCS operation).
type FileChangeKind string

const (
	Add    FileChangeKind = "add"
	Modify FileChangeKind = "modify"
	Delete FileChangeKind = "delete"
	Rename FileChangeKind = "rename"
)

// FileDiff is immutable after construction (spec §3).
type FileDiff struct {
	Path       string
	ChangeKind FileChangeKind
	Patch      string
}

// Extension returns the lowercased file extension, without the leading dot,
// or "" when the path has none.
func (f FileDiff) Extension() string {
	idx := strings.LastIndexByte(f.Path, '.')
	slash := strings.LastIndexByte(f.Path, '/')
	if idx <= slash {
		return ""
	}
	return strings.ToLower(f.Path[idx+1:])
}

// Directory returns the directory component of the path, or "" for a
// top-level file.
func (f FileDiff) Directory() string {
	idx := strings.LastIndexByte(f.Path, '/')
	if idx < 0 {
		return ""
	}
	return f.Path[:idx]
}

// DiffResult is the full per-file patch set for one revision range.
// Invariant: Files contains each Path at most once.
type DiffResult struct {
	Range string
	Files []FileDiff
}

// ByPath returns the FileDiff for path, or the zero value and false.
func (d DiffResult) ByPath(path string) (FileDiff, bool) {
	for _, f := range d.Files {
		if f.Path == path {
			return f, true
		}
	}
	return FileDiff{}, false
}

// IsMetadataLine reports whether a patch line is a unified-diff metadata
// line (hunk header or file header), per spec §4.1.
func IsMetadataLine(line string) bool {
	return strings.HasPrefix(line, "@@") ||
		strings.HasPrefix(line, "+++") ||
		strings.HasPrefix(line, "---")
}

// IsAddedLine reports whether line is an addition (leading '+', not '+++').
func IsAddedLine(line string) bool {
	return strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++")
}

// IsRemovedLine reports whether line is a deletion (leading '-', not '---').
func IsRemovedLine(line string) bool {
	return strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---")
}
