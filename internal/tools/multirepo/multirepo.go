// Package multirepo exposes the cross-repository analyzer and coordinator
// over MCP: multirepo_analyze, multirepo_propose.
package multirepo

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"jjdivide/internal/division"
	divmodel "jjdivide/internal/division/model"
	"jjdivide/internal/division/strategy"
	"jjdivide/internal/mcp"
	"jjdivide/internal/multirepo"
	"jjdivide/internal/repo"
	"jjdivide/internal/vcs"
)

// --- multirepo_analyze ---

type analyzeParams struct {
	Ranges map[string]string `json:"ranges"` // repo name -> range expression
}

// Analyze implements multirepo_analyze: for every named repository known to
// the manager, diffs it over the caller-supplied range and runs the
// cross-repo dependency analyzer (spec §4.10) over the resulting keyword
// sets.
type Analyze struct {
	Manager *repo.Manager
	VCS     vcs.VCS
}

func NewAnalyze(m *repo.Manager, v vcs.VCS) *Analyze { return &Analyze{Manager: m, VCS: v} }

func (t *Analyze) Name() string { return "multirepo_analyze" }
func (t *Analyze) Description() string {
	return "Infer cross-repository dependency edges from the keyword and symbol overlap between each repository's changeset over its given revision range."
}
func (t *Analyze) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "ranges": {
      "type": "object",
      "description": "Map of repository name (as known to the manager) to a revision range expression",
      "additionalProperties": {"type": "string"}
    }
  },
  "required": ["ranges"]
}`)
}

func (t *Analyze) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p analyzeParams
	if err := json.Unmarshal(params, &p); err != nil {
		return mcp.ErrorResult(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if len(p.Ranges) == 0 {
		return mcp.ErrorResult("ranges must name at least one repository"), nil
	}

	names := make([]string, 0, len(p.Ranges))
	for name := range p.Ranges {
		names = append(names, name)
	}
	sort.Strings(names)

	diffs := make(map[string]divmodel.DiffResult, len(names))
	for _, name := range names {
		r, ok := t.Manager.Get(name)
		if !ok {
			return mcp.ErrorResult("unknown repository: " + name), nil
		}
		repoHandle, err := t.VCS.Init(ctx, r.Path)
		if err != nil {
			return mcp.ErrorResult(fmt.Sprintf("opening repository %s: %v", name, err)), nil
		}
		diffResult, err := t.VCS.DiffRange(ctx, repoHandle, p.Ranges[name])
		if err != nil {
			return mcp.ErrorResult(fmt.Sprintf("diffing %s: %v", name, err)), nil
		}
		diffs[name] = division.FromVCS(diffResult)
	}

	deps := multirepo.Analyze(diffs, names)
	return mcp.JSONResult(map[string]any{"dependencies": deps})
}

// --- multirepo_propose ---

type proposeParams struct {
	Ranges        map[string]string `json:"ranges"`
	Strategy      string            `json:"strategy,omitempty"`
	Size          string            `json:"size,omitempty"`
	MinConfidence float64           `json:"min_confidence,omitempty"`
}

// Propose implements multirepo_propose: runs the division engine
// independently per repository, then coordinates the results by kind across
// repositories in dependency order (spec §4.10).
type Propose struct {
	Manager *repo.Manager
	VCS     vcs.VCS
	Default division.Options
}

func NewPropose(m *repo.Manager, v vcs.VCS) *Propose {
	return &Propose{
		Manager: m,
		VCS:     v,
		Default: division.Options{Strategy: strategy.Balanced, Size: strategy.SizeBalanced},
	}
}

// NewProposeWithDefaults is like NewPropose, but seeds the strategy/size
// fallbacks from server configuration (internal/config) instead of the
// engine's built-in balanced defaults.
func NewProposeWithDefaults(m *repo.Manager, v vcs.VCS, defaults division.Options) *Propose {
	return &Propose{Manager: m, VCS: v, Default: defaults}
}

func (t *Propose) Name() string { return "multirepo_propose" }
func (t *Propose) Description() string {
	return "Propose a coordinated, dependency-ordered set of commits across multiple repositories: one division-engine run per repository, grouped by kind across repositories."
}
func (t *Propose) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "ranges": {
      "type": "object",
      "description": "Map of repository name (as known to the manager) to a revision range expression",
      "additionalProperties": {"type": "string"}
    },
    "strategy": {"type": "string", "enum": ["balanced", "semanticCentric", "fileTypeCentric", "directoryCentric"]},
    "size": {"type": "string", "enum": ["balanced", "many", "few"]},
    "min_confidence": {"type": "number"}
  },
  "required": ["ranges"]
}`)
}

func (t *Propose) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p proposeParams
	if err := json.Unmarshal(params, &p); err != nil {
		return mcp.ErrorResult(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if len(p.Ranges) == 0 {
		return mcp.ErrorResult("ranges must name at least one repository"), nil
	}

	order, err := t.Manager.DependencyOrder()
	if err != nil {
		return mcp.ErrorResult(err.Error()), nil
	}

	opts := division.Options{
		Strategy:      strategy.DivisionStrategy(orDefault(p.Strategy, string(t.Default.Strategy))),
		Size:          strategy.CommitSizePreference(orDefault(p.Size, string(t.Default.Size))),
		MinConfidence: p.MinConfidence,
	}
	if opts.MinConfidence == 0 {
		opts.MinConfidence = t.Default.MinConfidence
	}

	engine := division.New()
	perRepo := make(map[string]divmodel.CommitDivisionProposal, len(p.Ranges))
	for name, rangeExpr := range p.Ranges {
		r, ok := t.Manager.Get(name)
		if !ok {
			return mcp.ErrorResult("unknown repository: " + name), nil
		}
		repoHandle, err := t.VCS.Init(ctx, r.Path)
		if err != nil {
			return mcp.ErrorResult(fmt.Sprintf("opening repository %s: %v", name, err)), nil
		}
		diffResult, err := t.VCS.DiffRange(ctx, repoHandle, rangeExpr)
		if err != nil {
			return mcp.ErrorResult(fmt.Sprintf("diffing %s: %v", name, err)), nil
		}
		proposal := engine.Run(division.FromVCS(diffResult), opts)
		proposal.OriginalRevision = rangeExpr
		perRepo[name] = proposal
	}

	coordinated := multirepo.Coordinate(perRepo, order)

	documents := make(map[string]division.ProposalDocument, len(perRepo))
	for name, proposal := range perRepo {
		documents[name] = division.BuildDocument(proposal, opts)
	}

	return mcp.JSONResult(map[string]any{
		"repo_order": coordinated.RepoOrder,
		"groups":     coordinated.Groups,
		"proposals":  documents,
	})
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
