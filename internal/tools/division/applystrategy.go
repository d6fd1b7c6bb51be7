package division

import (
	"context"
	"encoding/json"
	"fmt"

	"jjdivide/internal/division"
	"jjdivide/internal/division/strategy"
	"jjdivide/internal/errs"
	"jjdivide/internal/mcp"
)

type applyStrategyParams struct {
	ProposalID    string  `json:"proposal_id"`
	Strategy      string  `json:"strategy,omitempty"`
	Size          string  `json:"size,omitempty"`
	MinConfidence float64 `json:"min_confidence,omitempty"`
}

// ApplyStrategy implements division_apply_strategy: re-groups a
// previously-proposed CommitDivisionProposal under a different strategy/size
// (spec §4.9), replacing it in the store under the same proposal_id.
type ApplyStrategy struct {
	Store *division.Store
}

func NewApplyStrategy(store *division.Store) *ApplyStrategy {
	return &ApplyStrategy{Store: store}
}

func (t *ApplyStrategy) Name() string { return "division_apply_strategy" }

func (t *ApplyStrategy) Description() string {
	return "Re-group a previously proposed commit division under a different strategy (balanced/semanticCentric/fileTypeCentric/directoryCentric) and/or size preference (balanced/many/few)."
}

func (t *ApplyStrategy) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "proposal_id": {"type": "string", "description": "id returned by division_propose"},
    "strategy": {"type": "string", "enum": ["balanced", "semanticCentric", "fileTypeCentric", "directoryCentric"]},
    "size": {"type": "string", "enum": ["balanced", "many", "few"]},
    "min_confidence": {"type": "number", "description": "Confidence floor for summary.shownCommits"}
  },
  "required": ["proposal_id"]
}`)
}

func (t *ApplyStrategy) Execute(ctx context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p applyStrategyParams
	if err := json.Unmarshal(params, &p); err != nil {
		return mcp.ErrorResult(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if p.ProposalID == "" {
		return mcp.ErrorResult("proposal_id is required"), nil
	}
	if !strategy.ValidDivisionStrategy(strategy.DivisionStrategy(p.Strategy)) {
		return mcp.ErrorResult(errs.New(errs.InvalidInput, "unknown strategy: "+p.Strategy).Error()), nil
	}
	if !strategy.ValidCommitSizePreference(strategy.CommitSizePreference(p.Size)) {
		return mcp.ErrorResult(errs.New(errs.InvalidInput, "unknown size: "+p.Size).Error()), nil
	}

	proposal, ok := t.Store.Get(p.ProposalID)
	if !ok {
		return mcp.ErrorResult("unknown proposal_id: " + p.ProposalID), nil
	}

	strat := strategy.DivisionStrategy(orDefault(p.Strategy, string(strategy.Balanced)))
	size := strategy.CommitSizePreference(orDefault(p.Size, string(strategy.SizeBalanced)))
	proposal = strategy.Apply(proposal, strat, size)
	t.Store.Replace(p.ProposalID, proposal)

	doc := division.BuildDocument(proposal, division.Options{MinConfidence: p.MinConfidence})
	return mcp.JSONResult(map[string]any{
		"proposal_id": p.ProposalID,
		"proposal":    doc,
	})
}
