package deps

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jjdivide/internal/division/model"
)

func TestAnalyze_EdgeWhenKeywordSetsIntersect(t *testing.T) {
	d := model.DiffResult{Files: []model.FileDiff{
		{Path: "a.go", Patch: "+update theme settings\n"},
		{Path: "b.go", Patch: "+const theme = default\n"},
	}}
	g := Analyze(d)
	assert.Contains(t, g["a.go"], "b.go")
	assert.Contains(t, g["b.go"], "a.go")
}

func TestAnalyze_NoEdgeWhenDisjoint(t *testing.T) {
	d := model.DiffResult{Files: []model.FileDiff{
		{Path: "a.go", Patch: "+update theme settings\n"},
		{Path: "b.go", Patch: "+replace payment gateway\n"},
	}}
	g := Analyze(d)
	assert.Empty(t, g["a.go"])
	assert.Empty(t, g["b.go"])
}

func TestAnalyze_EveryFileHasAnEntryEvenWithoutEdges(t *testing.T) {
	d := model.DiffResult{Files: []model.FileDiff{
		{Path: "lonely.go", Patch: "+isolated change\n"},
	}}
	g := Analyze(d)
	_, ok := g["lonely.go"]
	assert.True(t, ok)
	assert.Empty(t, g["lonely.go"])
}
