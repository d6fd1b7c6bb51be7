// Package vcs defines the external collaborator interface the division
// engine and realizer consume (spec §6). The engine never talks to Jujutsu
// directly; it only ever sees this interface, so tests can substitute
// vcstest.Fake for a real jjexec.Adapter.
package vcs

import (
	"context"
	"time"
)

// Repo identifies a VCS repository once Init has validated it.
type Repo struct {
	Path string
}

// CommitInfo is metadata about one existing commit.
type CommitInfo struct {
	ID        string
	Author    string
	Timestamp time.Time
	Message   string
}

// Change is one file's path plus its desired post-image content, as
// consumed by CreateCommit. Content reconstruction (turning a unified diff
// into a post-image) is the realizer's job (internal/realize), not the
// collaborator's — the collaborator only ever writes bytes it is handed.
type Change struct {
	Path    string
	Content []byte
}

// VCS is the collaborator interface the engine and realizer depend on.
// Implementations: jjexec.Adapter (real `jj` CLI) and vcstest.Fake
// (deterministic in-memory double for tests).
type VCS interface {
	// Init validates path as a repository root. Returns NotARepository
	// (internal/errs) when path lacks VCS metadata.
	Init(ctx context.Context, path string) (Repo, error)

	// DiffRange resolves rangeExpr (an opaque VCS-specific string, e.g.
	// "A..B") against repo into a DiffRangeResult, which mirrors
	// division/model.DiffResult without importing it; see DiffRangeResult
	// below.
	DiffRange(ctx context.Context, repo Repo, rangeExpr string) (DiffRangeResult, error)

	// CommitHistory returns up to limit commits reachable from ref, most
	// recent first.
	CommitHistory(ctx context.Context, repo Repo, limit int, ref string) ([]CommitInfo, error)

	// CommitInfo looks up a single commit by id.
	CommitInfo(ctx context.Context, repo Repo, id string) (CommitInfo, error)

	// CommitFiles lists the paths touched by commit id.
	CommitFiles(ctx context.Context, repo Repo, id string) ([]string, error)

	// CreateCommit applies changes and records a new commit with message,
	// returning its id. The collaborator owns applying content to the
	// working copy; callers supply fully reconstructed post-image content
	// via internal/realize, never raw diff text (spec §9 design notes).
	CreateCommit(ctx context.Context, repo Repo, message string, changes []Change) (string, error)
}

// DiffRangeResult mirrors division/model.DiffResult's shape without
// importing that package, keeping vcs a leaf package with no dependency on
// the division engine. jjexec and vcstest construct this directly; callers
// that need a division/model.DiffResult convert with division.FromVCS.
type DiffRangeResult struct {
	Range string
	Files []FileDiff
}

// FileDiff mirrors division/model.FileDiff.
type FileDiff struct {
	Path       string
	ChangeKind string // one of "add", "modify", "delete", "rename"
	Patch      string
}
