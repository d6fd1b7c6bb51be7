// Package repo implements the multi-repository manager (spec §3, §4.10): a
// mutable name -> Repository mapping plus dependency-ordering and cycle
// detection over the repositories' declared dependency sets.
package repo

import (
	"context"
	"sort"
	"sync"

	"jjdivide/internal/errs"
	"jjdivide/internal/vcs"
)

// Repository is one managed repo. Dependencies names other repositories by
// name; a name with no corresponding entry in the Manager is a dangling
// dependency and is tolerated (spec §3, §4.10).
type Repository struct {
	Name         string
	Path         string
	Dependencies []string
}

// Manager holds name -> Repository, with serialized mutation (spec §5: the
// manager is process-wide state; writes are exclusive, reads may overlap).
type Manager struct {
	mu    sync.RWMutex
	repos map[string]Repository
	order []string // first-seen insertion order, for deterministic List/save.
}

// New builds an empty Manager.
func New() *Manager {
	return &Manager{repos: make(map[string]Repository)}
}

// Add replaces any existing entry under name.
func (m *Manager) Add(name, path string, deps []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.repos[name]; !exists {
		m.order = append(m.order, name)
	}
	m.repos[name] = Repository{Name: name, Path: path, Dependencies: append([]string(nil), deps...)}
}

// Remove deletes name. It does not cascade into other repositories'
// Dependencies lists (spec §4.10: dangling dependencies are tolerated).
func (m *Manager) Remove(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.repos[name]; !exists {
		return
	}
	delete(m.repos, name)
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Get returns the Repository under name, and whether it exists.
func (m *Manager) Get(name string) (Repository, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.repos[name]
	return r, ok
}

// List returns every managed name in insertion order.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.order...)
}

// DependencyOrder runs Kahn's algorithm over the subgraph whose nodes are
// present names: dangling dependencies on absent names do not contribute an
// edge. Returns CyclicDependency if any node remains unvisited.
func (m *Manager) DependencyOrder() ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	inDegree := make(map[string]int, len(m.repos))
	dependents := make(map[string][]string, len(m.repos)) // dep -> repos that depend on it
	for _, name := range m.order {
		inDegree[name] = 0
	}
	for _, name := range m.order {
		for _, dep := range m.repos[name].Dependencies {
			if _, present := m.repos[dep]; !present {
				continue // dangling dependency, no edge.
			}
			inDegree[name]++
			dependents[dep] = append(dependents[dep], name)
		}
	}

	var queue []string
	for _, name := range m.order {
		if inDegree[name] == 0 {
			queue = append(queue, name)
		}
	}

	var result []string
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		result = append(result, n)
		for _, dependent := range dependents[n] {
			inDegree[dependent]--
			if inDegree[dependent] == 0 {
				queue = append(queue, dependent)
			}
		}
	}

	if len(result) != len(m.repos) {
		return nil, errs.New(errs.CyclicDependency, "dependency graph contains a cycle")
	}
	return result, nil
}

// HasCycle reports whether the dependency graph over present nodes contains
// a cycle, via DFS with a visiting/visited tri-state (spec §4.10).
func (m *Manager) HasCycle() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	const (
		unvisited = 0
		visiting  = 1
		visited   = 2
	)
	state := make(map[string]int, len(m.repos))

	var visit func(name string) bool
	visit = func(name string) bool {
		switch state[name] {
		case visiting:
			return true
		case visited:
			return false
		}
		state[name] = visiting
		for _, dep := range m.repos[name].Dependencies {
			if _, present := m.repos[dep]; !present {
				continue
			}
			if visit(dep) {
				return true
			}
		}
		state[name] = visited
		return false
	}

	for _, name := range m.order {
		if state[name] == unvisited && visit(name) {
			return true
		}
	}
	return false
}

// ValidateRepository checks that name exists in the manager and that v
// accepts its path as a valid repository.
func (m *Manager) ValidateRepository(ctx context.Context, v vcs.VCS, name string) error {
	r, ok := m.Get(name)
	if !ok {
		return errs.New(errs.InvalidInput, "unknown repository: "+name)
	}
	_, err := v.Init(ctx, r.Path)
	return err
}

// ReplaceFrom swaps m's entire contents for other's, so a tool that shares a
// single *Manager across its lifetime can still implement repo_load's
// "replace everything" semantics without handing callers a new pointer
// (spec §4.10 defines no in-place replace-all operation, only add/remove).
func (m *Manager) ReplaceFrom(other *Manager) {
	other.mu.RLock()
	repos := make(map[string]Repository, len(other.repos))
	for k, v := range other.repos {
		repos[k] = v
	}
	order := append([]string(nil), other.order...)
	other.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.repos = repos
	m.order = order
}

// SortedNames returns every managed name sorted lexicographically, used by
// persistence (spec §6) where a stable key order matters more than
// insertion order.
func (m *Manager) SortedNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.repos))
	for name := range m.repos {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
