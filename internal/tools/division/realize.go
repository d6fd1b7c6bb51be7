package division

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"jjdivide/internal/division"
	"jjdivide/internal/mcp"
	"jjdivide/internal/realize"
	"jjdivide/internal/vcs"
)

type realizeParams struct {
	ProposalID string `json:"proposal_id"`
	RepoPath   string `json:"repo_path"`
}

// Realize implements division_realize: it hands a stored proposal to
// internal/realize, reading each file's current content off disk under
// repo_path to reconstruct post-image content before creating commits
// through the VCS collaborator.
type Realize struct {
	VCS   vcs.VCS
	Store *division.Store
}

func NewRealize(v vcs.VCS, store *division.Store) *Realize {
	return &Realize{VCS: v, Store: store}
}

func (t *Realize) Name() string { return "division_realize" }

func (t *Realize) Description() string {
	return "Create real VCS commits from a proposal previously built by division_propose/division_apply_strategy, one commit per ProposedCommit, in order."
}

func (t *Realize) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "proposal_id": {"type": "string", "description": "id returned by division_propose"},
    "repo_path": {"type": "string", "description": "Filesystem path to the repository root"}
  },
  "required": ["proposal_id", "repo_path"]
}`)
}

func (t *Realize) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p realizeParams
	if err := json.Unmarshal(params, &p); err != nil {
		return mcp.ErrorResult(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if p.ProposalID == "" || p.RepoPath == "" {
		return mcp.ErrorResult("proposal_id and repo_path are required"), nil
	}

	proposal, ok := t.Store.Get(p.ProposalID)
	if !ok {
		return mcp.ErrorResult("unknown proposal_id: " + p.ProposalID), nil
	}

	repo, err := t.VCS.Init(ctx, p.RepoPath)
	if err != nil {
		return mcp.ErrorResult(fmt.Sprintf("opening repository: %v", err)), nil
	}

	content := func(path string) ([]byte, error) {
		return os.ReadFile(filepath.Join(p.RepoPath, path))
	}
	r := realize.New(t.VCS, content)
	result := r.Realize(ctx, repo, proposal)

	response := map[string]any{
		"created_commit_ids": result.CreatedCommitIDs,
	}
	if result.Err != nil {
		response["error"] = result.Err.Error()
		return mcp.JSONResult(response)
	}
	return mcp.JSONResult(response)
}
