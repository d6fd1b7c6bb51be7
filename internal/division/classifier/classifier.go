// Package classifier implements the pattern classifier (spec §4.4): it
// scores a patch against the rule table and returns the highest-scoring
// ChangeKind, falling back to chore when every score is zero.
package classifier

import (
	"strings"

	"jjdivide/internal/division/model"
)

// Classifier scores patches against a rule table.
type Classifier struct {
	Rules []model.PatternRule
}

// New builds a Classifier over the default rule table.
func New() *Classifier {
	return &Classifier{Rules: DefaultRules}
}

// NewWithRules builds a Classifier over a caller-supplied rule table.
func NewWithRules(rules []model.PatternRule) *Classifier {
	return &Classifier{Rules: rules}
}

// Classify scores patch against the rule table and returns the winning kind.
// Ties break in model.Kinds declaration order; an all-zero score yields chore.
func (c *Classifier) Classify(patch string) model.ChangeKind {
	scores := c.Score(patch)
	return winner(scores)
}

// Score returns the raw per-kind score for patch, for callers (e.g. the
// proposal synthesizer) that need the full distribution rather than just the
// winner.
func (c *Classifier) Score(patch string) map[model.ChangeKind]float64 {
	scores := make(map[model.ChangeKind]float64)
	lines := strings.Split(patch, "\n")
	for _, rule := range c.Rules {
		var hitLines int
		for _, line := range lines {
			if model.IsMetadataLine(line) {
				continue
			}
			lower := strings.ToLower(line)
			if ruleMatches(rule, lower) {
				hitLines++
			}
		}
		if hitLines > 0 {
			scores[rule.Kind] += rule.Weight * float64(hitLines)
		}
	}
	return scores
}

func ruleMatches(rule model.PatternRule, lowerLine string) bool {
	for _, kw := range rule.Keywords {
		if strings.Contains(lowerLine, kw) {
			return true
		}
	}
	return false
}

// winner picks the highest-scoring kind, breaking ties in declaration order.
// An empty or all-zero score map yields chore.
func winner(scores map[model.ChangeKind]float64) model.ChangeKind {
	best := model.Chore
	bestScore := 0.0
	for _, k := range model.Kinds {
		s := scores[k]
		if s > bestScore {
			bestScore = s
			best = k
		}
	}
	return best
}
