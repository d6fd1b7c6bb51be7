package classifier

import "jjdivide/internal/division/model"

// DefaultRules is the build-time rule table (spec §4.4). It is data, not
// code: a test suite can assert its exact content. Keywords are lowercased
// substrings matched against a lowercased line.
var DefaultRules = []model.PatternRule{
	{
		Label:    "feature keywords",
		Keywords: []string{"add", "new", "implement", "feature", "support", "introduce"},
		Kind:     model.Feature,
		Weight:   1.0,
	},
	{
		Label:    "bugfix keywords",
		Keywords: []string{"fix", "bug", "issue", "patch", "resolve", "correct", "crash"},
		Kind:     model.Bugfix,
		Weight:   1.0,
	},
	{
		Label:    "refactor keywords",
		Keywords: []string{"refactor", "restructure", "reorganize", "rename", "extract", "simplify", "cleanup"},
		Kind:     model.Refactor,
		Weight:   1.0,
	},
	{
		Label:    "docs keywords",
		Keywords: []string{"document", "readme", "docstring", "comment", "changelog"},
		Kind:     model.Docs,
		Weight:   1.0,
	},
	{
		Label:    "tests keywords",
		Keywords: []string{"test", "spec", "assert", "mock", "fixture", "coverage"},
		Kind:     model.Tests,
		Weight:   1.0,
	},
	{
		Label:    "style keywords",
		Keywords: []string{"format", "lint", "whitespace", "indent", "style", "prettier"},
		Kind:     model.Style,
		Weight:   1.0,
	},
	{
		Label:    "performance keywords",
		Keywords: []string{"optimize", "performance", "speed", "cache", "benchmark", "throughput", "latency"},
		Kind:     model.Performance,
		Weight:   1.0,
	},
	{
		Label:    "chore keywords",
		Keywords: []string{"chore", "bump", "dependency", "dependencies", "config", "build", "ci"},
		Kind:     model.Chore,
		Weight:   1.0,
	},
	{
		Label:    "procedure declaration hint",
		Keywords: []string{"proc ", "func ", "def "},
		Kind:     model.Feature,
		Weight:   0.5,
	},
	{
		Label:    "type declaration hint",
		Keywords: []string{"type ", "struct ", "class ", "interface "},
		Kind:     model.Refactor,
		Weight:   0.3,
	},
	{
		Label:    "exception marker hint",
		Keywords: []string{"raise ", "throw ", "except", "panic(", "recover("},
		Kind:     model.Bugfix,
		Weight:   0.4,
	},
}
