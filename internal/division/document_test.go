package division

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jjdivide/internal/division/model"
)

func TestBuildDocument_ShapesCommitsAndSummary(t *testing.T) {
	proposal := model.CommitDivisionProposal{
		OriginalRevision: "a..b",
		TotalFiles:       2,
		Confidence:       0.8,
		Commits: []model.ProposedCommit{
			{
				Message:    "feat: add greet",
				Kind:       model.Feature,
				Keywords:   []string{"greet"},
				Confidence: 0.9,
				Changes: []model.FileChange{
					{Path: "greet.go", ChangeKind: model.Add, SimilarityGroupIDs: []int{0}},
				},
			},
			{
				Message:    "chore: tidy config",
				Kind:       model.Chore,
				Confidence: 0.4,
				Changes: []model.FileChange{
					{Path: "config.yaml", ChangeKind: model.Modify},
				},
			},
		},
	}

	doc := BuildDocument(proposal, Options{MinConfidence: 0.5})

	require.Len(t, doc.ProposedCommits, 2)
	assert.Equal(t, "a..b", doc.OriginalCommitRange)
	assert.Equal(t, 2, doc.TotalFiles)
	assert.Equal(t, "feat", doc.ProposedCommits[0].ChangeType)
	assert.Equal(t, []int{0}, doc.ProposedCommits[0].Changes[0].AffectedGroups)

	assert.Equal(t, 2, doc.Summary.TotalCommits)
	assert.Equal(t, 1, doc.Summary.ShownCommits, "only the 0.9-confidence commit meets the 0.5 floor")
	assert.Equal(t, 1, doc.Summary.CommitTypes["feature"])
	assert.Equal(t, 1, doc.Summary.CommitTypes["chore"])
	assert.Equal(t, 0, doc.Summary.CommitTypes["bugfix"])
	assert.InDelta(t, 0.65, doc.Summary.MeanConfidence, 1e-9)

	assert.Equal(t, 1, doc.Stats["feat"])
	assert.Equal(t, 1, doc.Stats["chore"])
}

func TestBuildDocument_EmptyProposal(t *testing.T) {
	doc := BuildDocument(model.CommitDivisionProposal{}, Options{})
	assert.Empty(t, doc.ProposedCommits)
	assert.Equal(t, 0, doc.Summary.TotalCommits)
	assert.Equal(t, float64(0), doc.Summary.MeanConfidence)
}
