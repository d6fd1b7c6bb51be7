package synth

import (
	"fmt"
	"sort"
	"strings"

	"jjdivide/internal/division/model"
)

var descriptionTemplate = map[model.ChangeKind]string{
	model.Feature:     "New feature in %s",
	model.Bugfix:      "Fix issues in %s",
	model.Refactor:    "Refactor %s",
	model.Docs:        "Documentation for %s",
	model.Tests:       "Tests for %s",
	model.Style:       "Style changes in %s",
	model.Performance: "Performance improvements in %s",
	model.Chore:       "Changes to %s",
}

var descriptionTemplateNoDir = map[model.ChangeKind]string{
	model.Feature:     "New feature across the codebase",
	model.Bugfix:      "Fix issues across the codebase",
	model.Refactor:    "Refactor across the codebase",
	model.Docs:        "Documentation updates",
	model.Tests:       "Test updates",
	model.Style:       "Style changes across the codebase",
	model.Performance: "Performance improvements across the codebase",
	model.Chore:       "Changes to multiple files",
}

// description builds the <description> segment of the commit message,
// applying the "Changes to" -> "update" textual cleanup (spec §4.8).
func description(kind model.ChangeKind, dirBasename string) string {
	var raw string
	if dirBasename != "" {
		raw = fmt.Sprintf(descriptionTemplate[kind], dirBasename)
	} else {
		raw = descriptionTemplateNoDir[kind]
	}
	return strings.Replace(raw, "Changes to", "update", 1)
}

// buildMessage assembles the full conventional-commit message (spec §6):
// <type>[(<scope>)]: <description>\n\nAffected components: <k1>, <k2>, ...
// dirBasename is the majority directory's basename (used for <description>
// regardless of consensus); allShareDir controls whether <scope> is
// rendered — it is only populated when every file shares one directory.
func buildMessage(kind model.ChangeKind, allShareDir bool, dirBasename string, keywords []string) string {
	typ := kind.ConventionalType()
	scope := ""
	if allShareDir {
		scope = fmt.Sprintf("(%s)", dirBasename)
	}
	desc := description(kind, dirBasename)

	msg := fmt.Sprintf("%s%s: %s", typ, scope, desc)

	if len(keywords) > 0 {
		sorted := append([]string(nil), keywords...)
		sort.Strings(sorted)
		if len(sorted) > 5 {
			sorted = sorted[:5]
		}
		msg += "\n\nAffected components: " + strings.Join(sorted, ", ")
	}
	return msg
}

func basename(dir string) string {
	if dir == "" {
		return ""
	}
	if idx := strings.LastIndexByte(dir, '/'); idx >= 0 {
		return dir[idx+1:]
	}
	return dir
}
