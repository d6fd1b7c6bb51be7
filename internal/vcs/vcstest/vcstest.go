// Package vcstest provides a deterministic in-memory vcs.VCS double, so
// division-engine and realizer tests never shell out to a real jj binary.
package vcstest

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"jjdivide/internal/errs"
	"jjdivide/internal/vcs"
)

// Fake is an in-memory vcs.VCS. Build it with New, which allocates the
// Ranges and Files maps that callers seed and CreateCommit writes to.
type Fake struct {
	mu sync.Mutex

	// Ranges maps a rangeExpr to the DiffRangeResult DiffRange returns for
	// it. Populate before calling DiffRange.
	Ranges map[string]vcs.DiffRangeResult

	// Files holds current file content by path, seeded by the caller and
	// mutated by CreateCommit.
	Files map[string][]byte

	commits     []vcs.CommitInfo
	commitFiles map[string][]string
	nextID      int
	validPaths  map[string]bool
}

// New builds an empty Fake. validPaths, when non-empty, restricts which
// paths Init accepts; an empty set accepts any path.
func New() *Fake {
	return &Fake{
		Ranges: make(map[string]vcs.DiffRangeResult),
		Files:  make(map[string][]byte),
	}
}

// AllowPath marks path as a valid repository root for Init. If never
// called, Init accepts any path.
func (f *Fake) AllowPath(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.validPaths == nil {
		f.validPaths = make(map[string]bool)
	}
	f.validPaths[path] = true
}

func (f *Fake) Init(_ context.Context, path string) (vcs.Repo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.validPaths) > 0 && !f.validPaths[path] {
		return vcs.Repo{}, errs.New(errs.NotARepository, "not a repository: "+path)
	}
	return vcs.Repo{Path: path}, nil
}

func (f *Fake) DiffRange(_ context.Context, _ vcs.Repo, rangeExpr string) (vcs.DiffRangeResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result, ok := f.Ranges[rangeExpr]
	if !ok {
		return vcs.DiffRangeResult{}, errs.New(errs.InvalidInput, "unknown range: "+rangeExpr)
	}
	return result, nil
}

func (f *Fake) CommitHistory(_ context.Context, _ vcs.Repo, limit int, _ string) ([]vcs.CommitInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	history := make([]vcs.CommitInfo, len(f.commits))
	for i, c := range f.commits {
		history[len(f.commits)-1-i] = c
	}
	if limit > 0 && limit < len(history) {
		history = history[:limit]
	}
	return history, nil
}

func (f *Fake) CommitInfo(_ context.Context, _ vcs.Repo, id string) (vcs.CommitInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.commits {
		if c.ID == id {
			return c, nil
		}
	}
	return vcs.CommitInfo{}, errs.New(errs.VCSError, "commit not found: "+id)
}

func (f *Fake) CommitFiles(_ context.Context, _ vcs.Repo, id string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	paths, ok := f.commitFiles[id]
	if !ok {
		return nil, errs.New(errs.VCSError, "commit not found: "+id)
	}
	out := append([]string(nil), paths...)
	sort.Strings(out)
	return out, nil
}

func (f *Fake) CreateCommit(_ context.Context, _ vcs.Repo, message string, changes []vcs.Change) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	id := "fake-" + strconv.Itoa(f.nextID)

	var paths []string
	for _, c := range changes {
		f.Files[c.Path] = c.Content
		paths = append(paths, c.Path)
	}
	if f.commitFiles == nil {
		f.commitFiles = make(map[string][]string)
	}
	f.commitFiles[id] = paths

	f.commits = append(f.commits, vcs.CommitInfo{ID: id, Message: message})
	return id, nil
}
