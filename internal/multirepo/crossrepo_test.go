package multirepo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jjdivide/internal/division/model"
)

func diffOf(path, patch string) model.DiffResult {
	return model.DiffResult{
		Files: []model.FileDiff{{Path: path, ChangeKind: model.Modify, Patch: patch}},
	}
}

func TestAnalyze_EmitsReferenceOnKeywordOverlap(t *testing.T) {
	diffs := map[string]model.DiffResult{
		"frontend": diffOf("app.ts", "@@ -1 +1 @@\n+update theme settings\n"),
		"backend":  diffOf("theme.go", "@@ -1 +1 @@\n+const theme = default\n"),
	}

	deps := Analyze(diffs, []string{"frontend", "backend"})
	require.NotEmpty(t, deps)

	var found bool
	for _, d := range deps {
		if d.Source == "frontend" && d.Target == "backend" {
			found = true
			assert.Equal(t, Reference, d.Kind)
			assert.Greater(t, d.Confidence, 0.0)
			assert.LessOrEqual(t, d.Confidence, 0.95)
		}
	}
	assert.True(t, found, "expected a frontend -> backend dependency from shared keyword 'theme'")
}

func TestAnalyze_EmitsImportWhenSymbolAppearsOnAddedLine(t *testing.T) {
	diffs := map[string]model.DiffResult{
		"caller": diffOf("main.go", "@@ -1 +1 @@\n+helper := helperFunction()\n"),
		"lib":    diffOf("helper.go", "@@ -1,2 +1,2 @@\n+func helperFunction() {}\n+helper config\n"),
	}

	deps := Analyze(diffs, []string{"caller", "lib"})
	var edge CrossRepoDependency
	for _, d := range deps {
		if d.Source == "caller" && d.Target == "lib" {
			edge = d
		}
	}
	require.NotEmpty(t, edge.Source)
	assert.Equal(t, Import, edge.Kind)
}

func TestAnalyze_NoOverlapEmitsNothing(t *testing.T) {
	diffs := map[string]model.DiffResult{
		"a": diffOf("a.go", "@@ -1 +1 @@\n+alphaOnlyKeyword()\n"),
		"b": diffOf("b.go", "@@ -1 +1 @@\n+betaOnlyKeyword()\n"),
	}

	deps := Analyze(diffs, []string{"a", "b"})
	assert.Empty(t, deps)
}

func TestAnalyze_ConfidenceCappedAt095(t *testing.T) {
	diffs := map[string]model.DiffResult{
		"a": diffOf("a.go", "@@ -1 +1 @@\n+sharedKeywordToken\n"),
		"b": diffOf("b.go", "@@ -1 +1 @@\n+sharedKeywordToken\n"),
	}

	deps := Analyze(diffs, []string{"a", "b"})
	require.NotEmpty(t, deps)
	for _, d := range deps {
		assert.LessOrEqual(t, d.Confidence, 0.95)
	}
}
