// Package repository exposes the repo.Manager over MCP: repo_add,
// repo_remove, repo_list, repo_dependency_order, repo_save, repo_load.
package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"jjdivide/internal/mcp"
	"jjdivide/internal/repo"
)

// --- repo_add ---

type addParams struct {
	Name         string   `json:"name"`
	Path         string   `json:"path"`
	Dependencies []string `json:"dependencies,omitempty"`
}

type Add struct{ Manager *repo.Manager }

func NewAdd(m *repo.Manager) *Add { return &Add{Manager: m} }

func (t *Add) Name() string        { return "repo_add" }
func (t *Add) Description() string { return "Add (or replace) a repository entry in the multi-repository manager." }
func (t *Add) InputSchema() json.RawMessage {
	return json.RawMessage(`{
  "type": "object",
  "properties": {
    "name": {"type": "string"},
    "path": {"type": "string"},
    "dependencies": {"type": "array", "items": {"type": "string"}}
  },
  "required": ["name", "path"]
}`)
}

func (t *Add) Execute(_ context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p addParams
	if err := json.Unmarshal(params, &p); err != nil {
		return mcp.ErrorResult(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if p.Name == "" || p.Path == "" {
		return mcp.ErrorResult("name and path are required"), nil
	}
	t.Manager.Add(p.Name, p.Path, p.Dependencies)
	return mcp.JSONResult(map[string]any{"name": p.Name, "path": p.Path, "dependencies": p.Dependencies})
}

// --- repo_remove ---

type removeParams struct {
	Name string `json:"name"`
}

type Remove struct{ Manager *repo.Manager }

func NewRemove(m *repo.Manager) *Remove { return &Remove{Manager: m} }

func (t *Remove) Name() string        { return "repo_remove" }
func (t *Remove) Description() string { return "Remove a repository entry from the multi-repository manager. Does not cascade into other entries' dependencies." }
func (t *Remove) InputSchema() json.RawMessage {
	return json.RawMessage(`{"type": "object", "properties": {"name": {"type": "string"}}, "required": ["name"]}`)
}

func (t *Remove) Execute(_ context.Context, params json.RawMessage) (*mcp.ToolsCallResult, error) {
	var p removeParams
	if err := json.Unmarshal(params, &p); err != nil {
		return mcp.ErrorResult(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	t.Manager.Remove(p.Name)
	return mcp.JSONResult(map[string]any{"removed": p.Name})
}

// --- repo_list ---

type List struct{ Manager *repo.Manager }

func NewList(m *repo.Manager) *List { return &List{Manager: m} }

func (t *List) Name() string        { return "repo_list" }
func (t *List) Description() string { return "List every repository name currently known to the manager, in insertion order." }
func (t *List) InputSchema() json.RawMessage {
	return json.RawMessage(`{"type": "object", "properties": {}}`)
}

func (t *List) Execute(_ context.Context, _ json.RawMessage) (*mcp.ToolsCallResult, error) {
	names := t.Manager.List()
	repos := make([]repo.Repository, 0, len(names))
	for _, name := range names {
		r, ok := t.Manager.Get(name)
		if ok {
			repos = append(repos, r)
		}
	}
	return mcp.JSONResult(map[string]any{"repositories": repos})
}

// --- repo_dependency_order ---

type DependencyOrder struct{ Manager *repo.Manager }

func NewDependencyOrder(m *repo.Manager) *DependencyOrder { return &DependencyOrder{Manager: m} }

func (t *DependencyOrder) Name() string { return "repo_dependency_order" }
func (t *DependencyOrder) Description() string {
	return "Compute a dependency-respecting realization order over every known repository (Kahn's algorithm). Fails with CyclicDependency if the dependency graph has a cycle."
}
func (t *DependencyOrder) InputSchema() json.RawMessage {
	return json.RawMessage(`{"type": "object", "properties": {}}`)
}

func (t *DependencyOrder) Execute(_ context.Context, _ json.RawMessage) (*mcp.ToolsCallResult, error) {
	order, err := t.Manager.DependencyOrder()
	if err != nil {
		return mcp.ErrorResult(err.Error()), nil
	}
	return mcp.JSONResult(map[string]any{"order": order})
}
