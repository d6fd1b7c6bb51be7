// Package division exposes the division engine over MCP: division_propose,
// division_apply_strategy, division_realize.
package division

import (
	"context"
	"encoding/json"
	"fmt"

	"jjdivide/internal/division"
	"jjdivide/internal/division/strategy"
	"jjdivide/internal/errs"
	"jjdivide/internal/mcp"
	"jjdivide/internal/vcs"
)

type proposeParams struct {
	RepoPath      string  `json:"repo_path"`
	Range         string  `json:"range"`
	Strategy      string  `json:"strategy,omitempty"`
	Size          string  `json:"size,omitempty"`
	MinConfidence float64 `json:"min_confidence,omitempty"`
	MaxCommits    int     `json:"max_commits,omitempty"`
}

// Propose implements division_propose: it diffs repoPath over range through
// the VCS collaborator, runs the division engine, and stores the resulting
// proposal for later division_apply_strategy/division_realize calls.
type Propose struct {
	VCS     vcs.VCS
	Store   *division.Store
	Default division.Options // server-configured fallback when a call omits a field
}

func NewPropose(v vcs.VCS, store *division.Store) *Propose {
	return &Propose{
		VCS:   v,
		Store: store,
		Default: division.Options{
			Strategy: strategy.Balanced,
			Size:     strategy.SizeBalanced,
		},
	}
}

// NewProposeWithDefaults is like NewPropose, but seeds the strategy/size/
// confidence/commit-cap fallbacks from server configuration (internal/config)
// instead of the engine's built-in balanced defaults.
func NewProposeWithDefaults(v vcs.VCS, store *division.Store, defaults division.Options) *Propose {
	return &Propose{VCS: v, Store: store, Default: defaults}
}

func (t *Propose) Name() string { return "division_propose" }

func (t *Propose) Description() string {
	return "Analyze a revision range in a Jujutsu repository and propose a set of semantically coherent commits with conventional-commit messages."
}

func (t *Propose) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "repo_path": {"type": "string", "description": "Filesystem path to the repository root"},
    "range": {"type": "string", "description": "VCS-specific revision range expression, e.g. \"main..@\""},
    "strategy": {"type": "string", "enum": ["balanced", "semanticCentric", "fileTypeCentric", "directoryCentric"], "description": "Grouping strategy (default balanced)"},
    "size": {"type": "string", "enum": ["balanced", "many", "few"], "description": "Commit size preference (default balanced)"},
    "min_confidence": {"type": "number", "description": "Confidence floor for summary.shownCommits (does not drop files)"},
    "max_commits": {"type": "integer", "description": "Cap the number of commits in the proposal"}
  },
  "required": ["repo_path", "range"]
}`)
}

func (t *Propose) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p proposeParams
	if err := json.Unmarshal(params, &p); err != nil {
		return mcp.ErrorResult(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if p.RepoPath == "" || p.Range == "" {
		return mcp.ErrorResult("repo_path and range are required"), nil
	}
	if !strategy.ValidDivisionStrategy(strategy.DivisionStrategy(p.Strategy)) {
		return mcp.ErrorResult(errs.New(errs.InvalidInput, "unknown strategy: "+p.Strategy).Error()), nil
	}
	if !strategy.ValidCommitSizePreference(strategy.CommitSizePreference(p.Size)) {
		return mcp.ErrorResult(errs.New(errs.InvalidInput, "unknown size: "+p.Size).Error()), nil
	}

	repo, err := t.VCS.Init(ctx, p.RepoPath)
	if err != nil {
		return mcp.ErrorResult(fmt.Sprintf("opening repository: %v", err)), nil
	}

	diffResult, err := t.VCS.DiffRange(ctx, repo, p.Range)
	if err != nil {
		return mcp.ErrorResult(fmt.Sprintf("diffing range: %v", err)), nil
	}

	opts := division.Options{
		Strategy:      strategy.DivisionStrategy(orDefault(p.Strategy, string(t.Default.Strategy))),
		Size:          strategy.CommitSizePreference(orDefault(p.Size, string(t.Default.Size))),
		MinConfidence: p.MinConfidence,
		MaxCommits:    p.MaxCommits,
	}
	if opts.MinConfidence == 0 {
		opts.MinConfidence = t.Default.MinConfidence
	}
	if opts.MaxCommits == 0 {
		opts.MaxCommits = t.Default.MaxCommits
	}

	engine := division.New()
	proposal := engine.Run(division.FromVCS(diffResult), opts)
	proposal.OriginalRevision = p.Range

	id := t.Store.Put(proposal)
	doc := division.BuildDocument(proposal, opts)

	return mcp.JSONResult(map[string]any{
		"proposal_id": id,
		"proposal":    doc,
	})
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
