package repository

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jjdivide/internal/repo"
)

func TestSaveThenLoad_RoundTripsThroughSharedManager(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "repos.toml")

	m := repo.New()
	m.Add("core", filepath.Join(dir, "core"), nil)

	save := NewSave(m)
	params, _ := json.Marshal(map[string]any{"path": path})
	result, err := save.Execute(context.Background(), params)
	require.NoError(t, err)
	require.False(t, result.IsError)

	target := repo.New()
	target.Add("stale", "/stale", nil)
	load := NewLoad(target)
	result, err = load.Execute(context.Background(), params)
	require.NoError(t, err)
	require.False(t, result.IsError)

	assert.Equal(t, []string{"core"}, target.List())
}

func TestLoad_MissingFileEmptiesManagerAndWarns(t *testing.T) {
	target := repo.New()
	target.Add("stale", "/stale", nil)
	load := NewLoad(target)

	params, _ := json.Marshal(map[string]any{"path": "/nonexistent/repos.toml"})
	result, err := load.Execute(context.Background(), params)
	require.NoError(t, err)
	assert.False(t, result.IsError, "ConfigLoadError is non-fatal at the tool layer, reported as a warning field")
	assert.Contains(t, result.Content[0].Text, "warning")
	assert.Empty(t, target.List())
}
