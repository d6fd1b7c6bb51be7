package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jjdivide/internal/repo"
)

func TestAddListRemove(t *testing.T) {
	m := repo.New()
	add := NewAdd(m)
	list := NewList(m)
	remove := NewRemove(m)

	params, _ := json.Marshal(map[string]any{"name": "core", "path": "/core"})
	result, err := add.Execute(context.Background(), params)
	require.NoError(t, err)
	require.False(t, result.IsError)

	result, err = list.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Contains(t, result.Content[0].Text, "core")

	params, _ = json.Marshal(map[string]any{"name": "core"})
	result, err = remove.Execute(context.Background(), params)
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Empty(t, m.List())
}

func TestDependencyOrder_S4(t *testing.T) {
	m := repo.New()
	m.Add("A", "/a", []string{"B"})
	m.Add("B", "/b", []string{"C"})
	m.Add("C", "/c", nil)

	tool := NewDependencyOrder(m)
	result, err := tool.Execute(context.Background(), nil)
	require.NoError(t, err)
	require.False(t, result.IsError)

	var payload struct {
		Order []string `json:"order"`
	}
	require.NoError(t, json.Unmarshal([]byte(result.Content[0].Text), &payload))
	assert.Equal(t, []string{"C", "B", "A"}, payload.Order)
}

func TestDependencyOrder_S5_CycleIsErrorResult(t *testing.T) {
	m := repo.New()
	m.Add("A", "/a", []string{"B"})
	m.Add("B", "/b", []string{"A"})

	tool := NewDependencyOrder(m)
	result, err := tool.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
