package grouper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jjdivide/internal/division/deps"
	"jjdivide/internal/division/model"
)

func TestPartition_GroupsConnectedFilesInOnePass(t *testing.T) {
	d := model.DiffResult{Files: []model.FileDiff{
		{Path: "a.go"}, {Path: "b.go"}, {Path: "c.go"},
	}}
	g := deps.Graph{
		"a.go": {"b.go"},
		"b.go": {"a.go"},
		"c.go": nil,
	}
	groups := Partition(d, g)
	require.Len(t, groups, 2)
	assert.Equal(t, Group{"a.go", "b.go"}, groups[0])
	assert.Equal(t, Group{"c.go"}, groups[1])
}

func TestPartition_IsNonTransitive(t *testing.T) {
	// a->b, b->c, but a and c don't share an edge directly: a single pass
	// starting from a only pulls in a's direct neighbor b, not b's neighbor c.
	d := model.DiffResult{Files: []model.FileDiff{
		{Path: "a.go"}, {Path: "b.go"}, {Path: "c.go"},
	}}
	g := deps.Graph{
		"a.go": {"b.go"},
		"b.go": {"a.go", "c.go"},
		"c.go": {"b.go"},
	}
	groups := Partition(d, g)
	require.Len(t, groups, 2)
	assert.Equal(t, Group{"a.go", "b.go"}, groups[0], "c.go must not be pulled in transitively through b.go")
	assert.Equal(t, Group{"c.go"}, groups[1])
}

func TestPartition_PreservesFileOrderForDeterminism(t *testing.T) {
	d := model.DiffResult{Files: []model.FileDiff{
		{Path: "z.go"}, {Path: "a.go"},
	}}
	g := deps.Graph{"z.go": nil, "a.go": nil}
	groups := Partition(d, g)
	require.Len(t, groups, 2)
	assert.Equal(t, Group{"z.go"}, groups[0])
	assert.Equal(t, Group{"a.go"}, groups[1])
}
