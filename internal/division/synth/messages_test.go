package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"jjdivide/internal/division/model"
)

func TestBuildMessage_ScopedWhenAllFilesShareDirectory(t *testing.T) {
	msg := buildMessage(model.Bugfix, true, "pkg", []string{"widget", "bug"})
	assert.Equal(t, "fix(pkg): Fix issues in pkg\n\nAffected components: bug, widget", msg)
}

func TestBuildMessage_UnscopedWhenFilesSpanDirectories(t *testing.T) {
	msg := buildMessage(model.Feature, false, "", nil)
	assert.Equal(t, "feat: New feature across the codebase", msg)
}

func TestBuildMessage_ChoreDescriptionIsRewrittenToUpdate(t *testing.T) {
	msg := buildMessage(model.Chore, false, "", nil)
	assert.Equal(t, "chore: update multiple files", msg)
}

func TestBuildMessage_KeywordListIsSortedAndCappedAtFive(t *testing.T) {
	msg := buildMessage(model.Refactor, true, "core", []string{"f", "e", "d", "c", "b", "a"})
	assert.Equal(t, "refactor(core): Refactor core\n\nAffected components: a, b, c, d, e", msg)
}

func TestBuildMessage_NoAffectedComponentsLineWhenNoKeywords(t *testing.T) {
	msg := buildMessage(model.Style, true, "ui", nil)
	assert.NotContains(t, msg, "Affected components")
}
