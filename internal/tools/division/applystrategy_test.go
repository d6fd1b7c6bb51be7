package division

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jjdivide/internal/division"
	"jjdivide/internal/division/model"
)

func TestApplyStrategy_RegroupsStoredProposal(t *testing.T) {
	store := division.NewStore()
	id := store.Put(model.CommitDivisionProposal{
		Commits: []model.ProposedCommit{
			{Message: "feat: a", Kind: model.Feature, Changes: []model.FileChange{{Path: "a.go", ChangeKind: model.Modify}}},
			{Message: "fix: b", Kind: model.Bugfix, Changes: []model.FileChange{{Path: "other/b.go", ChangeKind: model.Modify}}},
		},
	})

	tool := NewApplyStrategy(store)
	params, _ := json.Marshal(map[string]any{"proposal_id": id, "strategy": "directoryCentric"})
	result, err := tool.Execute(context.Background(), params)
	require.NoError(t, err)
	require.False(t, result.IsError)

	updated, ok := store.Get(id)
	require.True(t, ok)
	assert.Len(t, updated.Commits, 2, "one commit per distinct directory (root, other)")
}

func TestApplyStrategy_UnknownProposalIsErrorResult(t *testing.T) {
	store := division.NewStore()
	tool := NewApplyStrategy(store)

	params, _ := json.Marshal(map[string]any{"proposal_id": "missing"})
	result, err := tool.Execute(context.Background(), params)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestApplyStrategy_UnknownStrategyIsInvalidInputErrorResult(t *testing.T) {
	store := division.NewStore()
	id := store.Put(model.CommitDivisionProposal{
		Commits: []model.ProposedCommit{
			{Message: "feat: a", Kind: model.Feature, Changes: []model.FileChange{{Path: "a.go", ChangeKind: model.Modify}}},
		},
	})
	tool := NewApplyStrategy(store)

	params, _ := json.Marshal(map[string]any{"proposal_id": id, "strategy": "bogus"})
	result, err := tool.Execute(context.Background(), params)
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "InvalidInput")
}

func TestApplyStrategy_UnknownSizeIsInvalidInputErrorResult(t *testing.T) {
	store := division.NewStore()
	id := store.Put(model.CommitDivisionProposal{
		Commits: []model.ProposedCommit{
			{Message: "feat: a", Kind: model.Feature, Changes: []model.FileChange{{Path: "a.go", ChangeKind: model.Modify}}},
		},
	})
	tool := NewApplyStrategy(store)

	params, _ := json.Marshal(map[string]any{"proposal_id": id, "size": "bogus"})
	result, err := tool.Execute(context.Background(), params)
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "InvalidInput")
}
