package division

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jjdivide/internal/division"
	"jjdivide/internal/vcs"
	"jjdivide/internal/vcs/vcstest"
)

func TestPropose_BuildsProposalAndStoresIt(t *testing.T) {
	fake := vcstest.New()
	fake.Ranges["main..@"] = vcs.DiffRangeResult{
		Range: "main..@",
		Files: []vcs.FileDiff{
			{Path: "README.md", ChangeKind: "modify", Patch: "@@ -1 +1 @@\n-old\n+new docs\n"},
		},
	}

	store := division.NewStore()
	tool := NewPropose(fake, store)

	params, _ := json.Marshal(map[string]any{"repo_path": "/repo", "range": "main..@"})
	result, err := tool.Execute(context.Background(), params)
	require.NoError(t, err)
	require.False(t, result.IsError)

	var payload struct {
		ProposalID string `json:"proposal_id"`
	}
	require.NoError(t, json.Unmarshal([]byte(result.Content[0].Text), &payload))
	assert.NotEmpty(t, payload.ProposalID)

	stored, ok := store.Get(payload.ProposalID)
	require.True(t, ok)
	assert.NotEmpty(t, stored.Commits)
}

func TestPropose_MissingRequiredParamsIsErrorResult(t *testing.T) {
	store := division.NewStore()
	tool := NewPropose(vcstest.New(), store)

	params, _ := json.Marshal(map[string]any{"repo_path": "/repo"})
	result, err := tool.Execute(context.Background(), params)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestPropose_UnknownRangeIsErrorResult(t *testing.T) {
	store := division.NewStore()
	tool := NewPropose(vcstest.New(), store)

	params, _ := json.Marshal(map[string]any{"repo_path": "/repo", "range": "unknown"})
	result, err := tool.Execute(context.Background(), params)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestPropose_UnknownStrategyIsInvalidInputErrorResult(t *testing.T) {
	store := division.NewStore()
	tool := NewPropose(vcstest.New(), store)

	params, _ := json.Marshal(map[string]any{"repo_path": "/repo", "range": "main..@", "strategy": "bogus"})
	result, err := tool.Execute(context.Background(), params)
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "InvalidInput")
}

func TestPropose_UnknownSizeIsInvalidInputErrorResult(t *testing.T) {
	store := division.NewStore()
	tool := NewPropose(vcstest.New(), store)

	params, _ := json.Marshal(map[string]any{"repo_path": "/repo", "range": "main..@", "size": "bogus"})
	result, err := tool.Execute(context.Background(), params)
	require.NoError(t, err)
	require.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "InvalidInput")
}
