package synth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jjdivide/internal/division/grouper"
	"jjdivide/internal/division/model"
)

func TestSynthesize_EveryFileAssignedToExactlyOneCommit(t *testing.T) {
	d := model.DiffResult{Files: []model.FileDiff{
		{Path: "pkg/a.go", ChangeKind: model.Modify, Patch: "+fix null pointer bug\n"},
		{Path: "pkg/b.go", ChangeKind: model.Modify, Patch: "+fix another bug\n"},
		{Path: "docs/README.md", ChangeKind: model.Modify, Patch: "+update readme\n"},
	}}
	groups := []grouper.Group{
		{"pkg/a.go", "pkg/b.go"},
		{"docs/README.md"},
	}

	proposal := New().Synthesize(d, groups)

	assert.Equal(t, 3, proposal.TotalFiles)

	seen := map[string]int{}
	for _, c := range proposal.Commits {
		for _, ch := range c.Changes {
			seen[ch.Path]++
		}
	}
	require.Len(t, seen, 3, "every file in d must appear in exactly one commit")
	for path, count := range seen {
		assert.Equal(t, 1, count, "file %s must not be claimed by more than one commit", path)
	}
}

func TestSynthesize_BugfixGroupGetsScopedConventionalMessage(t *testing.T) {
	d := model.DiffResult{Files: []model.FileDiff{
		{Path: "pkg/a.go", ChangeKind: model.Modify, Patch: "+fix null pointer bug\n"},
		{Path: "pkg/b.go", ChangeKind: model.Modify, Patch: "+fix another stray bug\n"},
	}}
	groups := []grouper.Group{{"pkg/a.go", "pkg/b.go"}}

	proposal := New().Synthesize(d, groups)
	require.Len(t, proposal.Commits, 1)
	commit := proposal.Commits[0]

	assert.Equal(t, model.Bugfix, commit.Kind)
	assert.True(t, strings.HasPrefix(commit.Message, "fix(pkg): "), "message %q must be scoped to the shared pkg directory", commit.Message)
	assert.InDelta(t, 0.95, commit.Confidence, 1e-9, "same directory, same extension, and a rich keyword union must saturate confidence at 0.95")
}

func TestSynthesize_SpecializedDocsPatternOutranksSemanticGroup(t *testing.T) {
	// docs/README.md and pkg/a.go are handed in as one semantic group, but
	// the specialized docs pattern (confidence
	// 0.95) must claim the README first, leaving only pkg/a.go for the
	// lower-confidence semantic-group commit.
	d := model.DiffResult{Files: []model.FileDiff{
		{Path: "docs/README.md", ChangeKind: model.Modify, Patch: "+update intro paragraph\n"},
		{Path: "pkg/a.go", ChangeKind: model.Modify, Patch: "+adjust widget settings\n"},
	}}
	groups := []grouper.Group{{"docs/README.md", "pkg/a.go"}}

	proposal := New().Synthesize(d, groups)

	var docsCommit, otherCommit *model.ProposedCommit
	for i := range proposal.Commits {
		c := &proposal.Commits[i]
		if c.Kind == model.Docs {
			docsCommit = c
		} else {
			otherCommit = c
		}
	}
	require.NotNil(t, docsCommit, "the specialized docs pattern must produce a Docs commit")
	require.NotNil(t, otherCommit)

	require.Len(t, docsCommit.Changes, 1)
	assert.Equal(t, "docs/README.md", docsCommit.Changes[0].Path)
	assert.InDelta(t, 0.95, docsCommit.Confidence, 1e-9)

	require.Len(t, otherCommit.Changes, 1)
	assert.Equal(t, "pkg/a.go", otherCommit.Changes[0].Path, "pkg/a.go must fall back to the semantic-group commit once README is claimed")
}

func TestSynthesize_ConfidenceIsMeanOfCommitConfidences(t *testing.T) {
	d := model.DiffResult{Files: []model.FileDiff{
		{Path: "a.go", ChangeKind: model.Modify, Patch: "+fix bug\n"},
	}}
	proposal := New().Synthesize(d, []grouper.Group{{"a.go"}})
	require.Len(t, proposal.Commits, 1)
	assert.Equal(t, proposal.Commits[0].Confidence, proposal.Confidence)
}
