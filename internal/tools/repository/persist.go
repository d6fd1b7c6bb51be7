package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"jjdivide/internal/mcp"
	"jjdivide/internal/repo"
)

type pathParams struct {
	Path string `json:"path"`
}

// --- repo_save ---

type Save struct{ Manager *repo.Manager }

func NewSave(m *repo.Manager) *Save { return &Save{Manager: m} }

func (t *Save) Name() string { return "repo_save" }
func (t *Save) Description() string {
	return "Persist the repository manager's current contents to a TOML or JSON file (format chosen by extension)."
}
func (t *Save) InputSchema() json.RawMessage {
	return json.RawMessage(`{"type": "object", "properties": {"path": {"type": "string"}}, "required": ["path"]}`)
}

func (t *Save) Execute(_ context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p pathParams
	if err := json.Unmarshal(params, &p); err != nil {
		return mcp.ErrorResult(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if p.Path == "" {
		return mcp.ErrorResult("path is required"), nil
	}
	if err := repo.Save(t.Manager, p.Path); err != nil {
		return mcp.ErrorResult(err.Error()), nil
	}
	return mcp.JSONResult(map[string]any{"saved_to": p.Path, "repositories": t.Manager.List()})
}

// --- repo_load ---

// Load implements repo_load. It replaces the contents of the shared Target
// manager in place via repo.Manager.ReplaceFrom, so every tool sharing
// *Target sees the new contents.
type Load struct {
	Target *repo.Manager
}

func NewLoad(target *repo.Manager) *Load { return &Load{Target: target} }

func (t *Load) Name() string { return "repo_load" }
func (t *Load) Description() string {
	return "Replace the repository manager's contents with those loaded from a TOML or JSON file. A load failure leaves the manager empty and is reported as a diagnostic, per the non-fatal ConfigLoadError contract."
}
func (t *Load) InputSchema() json.RawMessage {
	return json.RawMessage(`{"type": "object", "properties": {"path": {"type": "string"}}, "required": ["path"]}`)
}

func (t *Load) Execute(_ context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p pathParams
	if err := json.Unmarshal(params, &p); err != nil {
		return mcp.ErrorResult(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if p.Path == "" {
		return mcp.ErrorResult("path is required"), nil
	}

	loaded, err := repo.Load(p.Path)
	t.Target.ReplaceFrom(loaded)
	if err != nil {
		return mcp.JSONResult(map[string]any{
			"loaded_from":  p.Path,
			"warning":      err.Error(),
			"repositories": t.Target.List(),
		})
	}
	return mcp.JSONResult(map[string]any{"loaded_from": p.Path, "repositories": t.Target.List()})
}
