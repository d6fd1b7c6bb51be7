// Package realize implements the proposal realizer: it turns a
// CommitDivisionProposal into actual VCS commits by reconstructing each
// FileChange's post-image content from its patch and handing that content,
// never raw diff text, to the vcs.VCS collaborator (spec §9 design notes —
// this content-reconstruction contract is explicitly flagged unresolved by
// the spec; this package is the implementer's answer).
package realize

import (
	"context"
	"fmt"
	"strings"

	"jjdivide/internal/division/model"
	"jjdivide/internal/errs"
	"jjdivide/internal/vcs"
)

// ContentProvider returns the current on-disk content of path, or an error
// if it cannot be read. For an add or a delete, the realizer never calls it;
// for a modify or rename, it supplies the base the patch's hunks apply
// against.
type ContentProvider func(path string) (current []byte, err error)

// Realizer drives one or more ProposedCommits through a vcs.VCS, in commit
// order, reconstructing content per FileChange before calling CreateCommit.
type Realizer struct {
	VCS     vcs.VCS
	Content ContentProvider
}

// New builds a Realizer over collaborator v, reading current content
// through content.
func New(v vcs.VCS, content ContentProvider) *Realizer {
	return &Realizer{VCS: v, Content: content}
}

// Result reports one proposal realization (spec §5: realization is not
// transactional — a failure aborts the remainder but does not roll back
// commits already created).
type Result struct {
	CreatedCommitIDs []string
	Err              error
}

// Realize creates one VCS commit per ProposedCommit in proposal, in order.
// On the first failure it stops and returns the commit ids created so far
// alongside the error (spec §5 realization atomicity, §7 VCSError handling).
func (r *Realizer) Realize(ctx context.Context, repo vcs.Repo, proposal model.CommitDivisionProposal) Result {
	var created []string
	for _, commit := range proposal.Commits {
		changes, err := r.reconstruct(commit)
		if err != nil {
			return Result{CreatedCommitIDs: created, Err: err}
		}
		id, err := r.VCS.CreateCommit(ctx, repo, commit.Message, changes)
		if err != nil {
			return Result{CreatedCommitIDs: created, Err: err}
		}
		created = append(created, id)
	}
	return Result{CreatedCommitIDs: created}
}

// reconstruct computes the post-image content for every FileChange in
// commit, in FileChange order (spec §5 ordering guarantees).
func (r *Realizer) reconstruct(commit model.ProposedCommit) ([]vcs.Change, error) {
	changes := make([]vcs.Change, 0, len(commit.Changes))
	for _, fc := range commit.Changes {
		content, err := r.reconstructOne(fc)
		if err != nil {
			return nil, err
		}
		changes = append(changes, vcs.Change{Path: fc.Path, Content: content})
	}
	return changes, nil
}

func (r *Realizer) reconstructOne(fc model.FileChange) ([]byte, error) {
	switch fc.ChangeKind {
	case model.Delete:
		return nil, nil
	case model.Add:
		return applyHunks(nil, fc.Patch)
	default: // Modify, Rename: modify on the destination path (spec §9).
		base, err := r.Content(fc.Path)
		if err != nil {
			return nil, errs.Wrap(errs.VCSError, "reading current content of "+fc.Path, err)
		}
		return applyHunks(base, fc.Patch)
	}
}

// applyHunks applies a unified diff's hunks against base, returning the
// post-image. Each hunk is positioned by the pre-image start line in its
// header; within a hunk it follows the patch's added/removed line markers
// (spec §4.1 IsAddedLine/IsRemovedLine) and copies context lines from base
// rather than from the patch, so base whitespace on context lines is kept.
func applyHunks(base []byte, patch string) ([]byte, error) {
	baseLines := splitLines(string(base))
	var out []string
	baseIdx := 0

	lines := strings.Split(patch, "\n")
	i := 0
	for i < len(lines) {
		line := lines[i]
		if !strings.HasPrefix(line, "@@") {
			i++
			continue
		}
		startOld, err := hunkOldStart(line)
		if err != nil {
			return nil, err
		}
		// Copy unchanged lines up to the hunk's start.
		for baseIdx < startOld-1 && baseIdx < len(baseLines) {
			out = append(out, baseLines[baseIdx])
			baseIdx++
		}
		i++
		for i < len(lines) && !strings.HasPrefix(lines[i], "@@") {
			hunkLine := lines[i]
			switch {
			case model.IsAddedLine(hunkLine):
				out = append(out, hunkLine[1:])
			case model.IsRemovedLine(hunkLine):
				baseIdx++
			case strings.HasPrefix(hunkLine, "\\"):
				// "\ No newline at end of file" — not content.
			default:
				// Context line: keep base content in sync with the patch.
				if baseIdx < len(baseLines) {
					out = append(out, baseLines[baseIdx])
					baseIdx++
				} else if strings.HasPrefix(hunkLine, " ") {
					out = append(out, hunkLine[1:])
				}
			}
			i++
		}
	}
	for baseIdx < len(baseLines) {
		out = append(out, baseLines[baseIdx])
		baseIdx++
	}

	return []byte(strings.Join(out, "\n")), nil
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// hunkOldStart parses the pre-image starting line number out of a
// "@@ -a,b +c,d @@" header.
func hunkOldStart(header string) (int, error) {
	fields := strings.Fields(header)
	if len(fields) < 2 {
		return 0, errs.New(errs.VCSError, "malformed hunk header: "+header)
	}
	oldSpec := strings.TrimPrefix(fields[1], "-")
	commaIdx := strings.IndexByte(oldSpec, ',')
	numStr := oldSpec
	if commaIdx >= 0 {
		numStr = oldSpec[:commaIdx]
	}
	var n int
	if _, err := fmt.Sscanf(numStr, "%d", &n); err != nil {
		return 0, errs.Wrap(errs.VCSError, "malformed hunk line number: "+header, err)
	}
	if n == 0 {
		n = 1
	}
	return n, nil
}
