package division

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jjdivide/internal/division/model"
	"jjdivide/internal/division/strategy"
)

// TestEngine_S1_FeatureAndDocsSplit mirrors the S1 end-to-end scenario.
func TestEngine_S1_FeatureAndDocsSplit(t *testing.T) {
	d := model.DiffResult{
		Range: "a..b",
		Files: []model.FileDiff{
			{Path: "src/foo.nim", ChangeKind: model.Modify, Patch: "@@ -1,2 +1,3 @@\n+proc newThing() =\n+  discard\n"},
			{Path: "src/bar.nim", ChangeKind: model.Modify, Patch: "@@ -1,2 +1,3 @@\n+let x = newThing()\n"},
			{Path: "docs/README.md", ChangeKind: model.Modify, Patch: "@@ -1 +1,2 @@\n+Updated docs.\n"},
		},
	}

	e := New()
	proposal := e.Run(d, Options{Strategy: strategy.Balanced, Size: strategy.SizeBalanced})

	require.Len(t, proposal.Commits, 2)
	assert.GreaterOrEqual(t, proposal.Confidence, 0.8)

	var featCommit, docsCommit *model.ProposedCommit
	for i := range proposal.Commits {
		switch {
		case proposal.Commits[i].Kind == model.Feature:
			featCommit = &proposal.Commits[i]
		case proposal.Commits[i].Kind == model.Docs:
			docsCommit = &proposal.Commits[i]
		}
	}
	require.NotNil(t, featCommit)
	require.NotNil(t, docsCommit)

	assert.Regexp(t, `^feat\(src\): `, featCommit.Message)
	assert.ElementsMatch(t, []string{"src/foo.nim", "src/bar.nim"}, featCommit.Paths())

	assert.ElementsMatch(t, []string{"docs/README.md"}, docsCommit.Paths())
}

// TestEngine_S2_TestFileSpecializedPattern mirrors the S2 scenario.
func TestEngine_S2_TestFileSpecializedPattern(t *testing.T) {
	d := model.DiffResult{
		Files: []model.FileDiff{
			{Path: "tests/test_x.nim", ChangeKind: model.Add, Patch: "@@ -0,0 +1,2 @@\n+proc setup() =\n+  discard\n"},
		},
	}

	proposal := New().Run(d, Options{})
	require.Len(t, proposal.Commits, 1)
	assert.Equal(t, model.Tests, proposal.Commits[0].Kind)
	assert.Regexp(t, `^test`, proposal.Commits[0].Message)
	assert.Equal(t, 0.95, proposal.Commits[0].Confidence)
}

// TestEngine_S3_DirectoryCentricSingleCommit mirrors the S3 scenario.
func TestEngine_S3_DirectoryCentricSingleCommit(t *testing.T) {
	var files []model.FileDiff
	for i := 0; i < 8; i++ {
		files = append(files, model.FileDiff{
			Path:       "src/a/file" + string(rune('0'+i)) + ".rs",
			ChangeKind: model.Modify,
			Patch:      "@@ -1 +1 @@\n-old\n+new\n",
		})
	}
	d := model.DiffResult{Files: files}

	proposal := New().Run(d, Options{Strategy: strategy.DirectoryCentric, Size: strategy.SizeBalanced})
	require.Len(t, proposal.Commits, 1)
	assert.Equal(t, "chore: update files in src/a", proposal.Commits[0].Message)
	assert.Len(t, proposal.Commits[0].Changes, 8)
}

// TestEngine_S6_FileTypeCentricTwelveCommits mirrors the S6 scenario.
func TestEngine_S6_FileTypeCentricTwelveCommits(t *testing.T) {
	exts := []string{"go", "py", "rb", "js", "ts", "rs", "c", "cpp", "java", "kt", "swift", "sh"}
	var files []model.FileDiff
	for i, ext := range exts {
		files = append(files, model.FileDiff{
			Path:       "file" + string(rune('a'+i)) + "." + ext,
			ChangeKind: model.Modify,
			Patch:      "@@ -1 +1 @@\n-old\n+new\n",
		})
	}
	d := model.DiffResult{Files: files}

	proposal := New().Run(d, Options{Strategy: strategy.FileTypeCentric})
	require.Len(t, proposal.Commits, 12)
	for i, c := range proposal.Commits {
		assert.Len(t, c.Changes, 1)
		assert.Equal(t, "chore: update "+exts[i]+" files", c.Message)
	}
}

func TestEngine_MaxCommitsTruncates(t *testing.T) {
	d := model.DiffResult{
		Files: []model.FileDiff{
			{Path: "a.md", ChangeKind: model.Modify, Patch: "+doc\n"},
			{Path: "b_test.go", ChangeKind: model.Modify, Patch: "+test\n"},
			{Path: "c.json", ChangeKind: model.Modify, Patch: "+{}\n"},
		},
	}

	proposal := New().Run(d, Options{MaxCommits: 1})
	assert.Len(t, proposal.Commits, 1)
}

func TestShownCount_FiltersByConfidenceWithoutDroppingFiles(t *testing.T) {
	commits := []model.ProposedCommit{
		{Confidence: 0.95, Changes: []model.FileChange{{Path: "a"}}},
		{Confidence: 0.5, Changes: []model.FileChange{{Path: "b"}}},
	}

	assert.Equal(t, 1, ShownCount(commits, 0.9))
	assert.Equal(t, 2, ShownCount(commits, 0))

	total := 0
	for _, c := range commits {
		total += len(c.Changes)
	}
	assert.Equal(t, 2, total)
}
