// Package division wires the diff model, dependency analyzer, semantic
// grouper, synthesizer, and strategy transformer into the one pipeline a
// caller drives (spec §2 control flow): keyword/dependency analysis → initial
// clustering → base proposal synthesis → strategy/size transform → optional
// commit-count truncation.
package division

import (
	"sort"

	"jjdivide/internal/division/deps"
	"jjdivide/internal/division/grouper"
	"jjdivide/internal/division/model"
	"jjdivide/internal/division/strategy"
	"jjdivide/internal/division/synth"
)

// Options controls one pipeline run. Zero values mean balanced/balanced, no
// confidence floor, and no commit-count cap.
//
// MinConfidence does not remove files from the proposal: spec §8 P2 names
// maxCommits, not minConfidence, as the one mechanism that can leave a path
// uncovered. Instead MinConfidence only affects the reporting layer's
// summary.shownCommits count (ShownCount below) — commits below the floor
// still carry their files, they are just not counted as "shown".
type Options struct {
	Strategy      strategy.DivisionStrategy
	Size          strategy.CommitSizePreference
	MinConfidence float64
	MaxCommits    int
}

// Engine runs the full division pipeline over a synthesizer instance, so
// callers that need a non-default classifier rule table can supply one via
// synth.Synthesizer.
type Engine struct {
	Synthesizer *synth.Synthesizer
}

// New builds an Engine over the default classifier rule table.
func New() *Engine {
	return &Engine{Synthesizer: synth.New()}
}

// Run executes the pipeline for d under opts. The returned proposal's
// OriginalRevision/TargetRevision are left zero; callers that parse a range
// string should populate them (spec §3 CommitDivisionProposal) before
// returning the result to a caller.
func (e *Engine) Run(d model.DiffResult, opts Options) model.CommitDivisionProposal {
	graph := deps.Analyze(d)
	groups := grouper.Partition(d, graph)

	proposal := e.Synthesizer.Synthesize(d, groups)
	proposal = strategy.Apply(proposal, opts.Strategy, opts.Size)
	proposal = truncate(proposal, opts.MaxCommits)

	return proposal
}

// truncate caps the number of commits at max (spec §8 P2: truncated commits
// retain their paths; the paths of omitted commits are not reassigned to
// another commit). max <= 0 means unlimited. Commits are kept in existing
// order, which for a freshly synthesized proposal is confidence descending.
func truncate(proposal model.CommitDivisionProposal, max int) model.CommitDivisionProposal {
	if max <= 0 || len(proposal.Commits) <= max {
		return proposal
	}
	proposal.Commits = append([]model.ProposedCommit(nil), proposal.Commits[:max]...)
	return proposal
}

// ShownCount reports how many of commits meet minConfidence, for the
// proposal document's summary.shownCommits field (spec §6). A minConfidence
// of 0 means every commit is shown.
func ShownCount(commits []model.ProposedCommit, minConfidence float64) int {
	if minConfidence <= 0 {
		return len(commits)
	}
	n := 0
	for _, c := range commits {
		if c.Confidence >= minConfidence {
			n++
		}
	}
	return n
}

// CommitTypeCounts tallies commits by ChangeKind for the proposal document's
// summary.commitTypes field (spec §6).
func CommitTypeCounts(commits []model.ProposedCommit) map[model.ChangeKind]int {
	counts := make(map[model.ChangeKind]int, len(model.Kinds))
	for _, k := range model.Kinds {
		counts[k] = 0
	}
	for _, c := range commits {
		counts[c.Kind]++
	}
	return counts
}

// SortedKeys returns m's keys in ascending order; used wherever a map-backed
// structure participates in deterministic output (spec §5 ordering
// guarantees).
func SortedKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
