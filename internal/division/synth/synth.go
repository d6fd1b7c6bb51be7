// Package synth implements the proposal synthesizer (spec §4.8): per group
// it classifies, picks a scope, builds a conventional-commit message, and
// estimates confidence; it also emits the three specialized patterns and
// seeds the group-to-commit mapping from all patterns sorted by confidence.
package synth

import (
	"sort"
	"strconv"

	"jjdivide/internal/division/classifier"
	"jjdivide/internal/division/cohesion"
	"jjdivide/internal/division/grouper"
	"jjdivide/internal/division/keywords"
	"jjdivide/internal/division/model"
)

// Synthesizer turns semantic groups plus specialized patterns into a
// CommitDivisionProposal.
type Synthesizer struct {
	Classifier *classifier.Classifier
}

// New builds a Synthesizer over the default classifier rule table.
func New() *Synthesizer {
	return &Synthesizer{Classifier: classifier.New()}
}

// Synthesize builds the base proposal for d from the grouper's partition.
// It applies the boundary-optimization pass (spec §4.9) to the groups before
// classifying them, then combines group patterns with the three specialized
// patterns, highest confidence first, to assign every file to exactly one
// commit.
func (s *Synthesizer) Synthesize(d model.DiffResult, groups []grouper.Group) model.CommitDivisionProposal {
	fileByPath := indexFiles(d)
	groups = optimizeBoundaries(groups, fileByPath)

	groupIndex := make(map[string]int, len(d.Files))
	for i, g := range groups {
		for _, path := range g {
			groupIndex[path] = i
		}
	}

	patterns := make([]model.ChangePattern, 0, len(groups)+3)
	for i, g := range groups {
		patterns = append(patterns, s.classifyGroup(i, g, fileByPath))
	}
	patterns = append(patterns, specializedChangePatterns(d)...)

	sort.SliceStable(patterns, func(i, j int) bool {
		return patterns[i].Confidence > patterns[j].Confidence
	})

	claimed := make(map[string]struct{})
	var commits []model.ProposedCommit
	var confidences []float64

	for _, p := range patterns {
		var files []string
		for _, path := range p.Files {
			if _, done := claimed[path]; done {
				continue
			}
			files = append(files, path)
			claimed[path] = struct{}{}
		}
		if len(files) == 0 {
			continue
		}
		commit := buildCommit(p.Kind, p.Confidence, files, fileByPath, groupIndex)
		commits = append(commits, commit)
		confidences = append(confidences, p.Confidence)
	}

	proposal := model.CommitDivisionProposal{
		Commits:    commits,
		TotalFiles: len(d.Files),
		Confidence: mean(confidences),
	}
	return proposal
}

func (s *Synthesizer) classifyGroup(index int, g grouper.Group, fileByPath map[string]model.FileDiff) model.ChangePattern {
	files := resolveFiles(g, fileByPath)
	concatenated := concatPatches(files)
	kind := s.Classifier.Classify(concatenated)

	sets := make([]map[string]struct{}, 0, len(files))
	for _, f := range files {
		sets = append(sets, keywords.Extract(f.Patch))
	}
	union := keywords.Union(sets...)

	allDir := allShareDirectory(files)
	allExt := allShareExtension(files)

	confidence := 0.7
	if allDir {
		confidence += 0.1
	}
	if allExt {
		confidence += 0.1
	}
	if len(union) > 3 {
		confidence += 0.1
	}
	if confidence > 0.95 {
		confidence = 0.95
	}

	return model.ChangePattern{
		Label:      groupLabel(index),
		Confidence: confidence,
		Kind:       kind,
		Files:      []string(g),
		Keywords:   union,
	}
}

func buildCommit(kind model.ChangeKind, confidence float64, paths []string, fileByPath map[string]model.FileDiff, groupIndex map[string]int) model.ProposedCommit {
	files := resolveFilesByPath(paths, fileByPath)

	sets := make([]map[string]struct{}, 0, len(files))
	for _, f := range files {
		sets = append(sets, keywords.Extract(f.Patch))
	}
	union := keywords.Union(sets...)

	allDir := allShareDirectory(files)
	dir, _ := majorityDirectory(files)
	dirBase := basename(dir)

	msg := buildMessage(kind, allDir, dirBase, union)

	changes := make([]model.FileChange, 0, len(files))
	for _, f := range files {
		var ids []int
		if gi, ok := groupIndex[f.Path]; ok {
			ids = []int{gi}
		}
		changes = append(changes, model.FileChange{
			Path:               f.Path,
			ChangeKind:         f.ChangeKind,
			Patch:              f.Patch,
			SimilarityGroupIDs: ids,
		})
	}

	return model.ProposedCommit{
		Message:    msg,
		Changes:    changes,
		Kind:       kind,
		Keywords:   union,
		Confidence: confidence,
	}
}

func indexFiles(d model.DiffResult) map[string]model.FileDiff {
	m := make(map[string]model.FileDiff, len(d.Files))
	for _, f := range d.Files {
		m[f.Path] = f
	}
	return m
}

func resolveFiles(paths []string, fileByPath map[string]model.FileDiff) []model.FileDiff {
	return resolveFilesByPath(paths, fileByPath)
}

func resolveFilesByPath(paths []string, fileByPath map[string]model.FileDiff) []model.FileDiff {
	out := make([]model.FileDiff, 0, len(paths))
	for _, p := range paths {
		if f, ok := fileByPath[p]; ok {
			out = append(out, f)
		}
	}
	return out
}

func concatPatches(files []model.FileDiff) string {
	var b []byte
	for _, f := range files {
		b = append(b, f.Patch...)
		b = append(b, '\n')
	}
	return string(b)
}

func unionKeywordsForPaths(d model.DiffResult, paths []string) []string {
	byPath := indexFiles(d)
	sets := make([]map[string]struct{}, 0, len(paths))
	for _, p := range paths {
		if f, ok := byPath[p]; ok {
			sets = append(sets, keywords.Extract(f.Patch))
		}
	}
	return keywords.Union(sets...)
}

// allShareDirectory reports whether every file has the same non-empty
// Directory(); top-level files never count as sharing a directory.
func allShareDirectory(files []model.FileDiff) bool {
	if len(files) == 0 {
		return false
	}
	first := files[0].Directory()
	for _, f := range files[1:] {
		if f.Directory() != first {
			return false
		}
	}
	return first != ""
}

func allShareExtension(files []model.FileDiff) bool {
	if len(files) == 0 {
		return false
	}
	first := files[0].Extension()
	for _, f := range files[1:] {
		if f.Extension() != first {
			return false
		}
	}
	return true
}

// majorityDirectory returns the most common directory among files, with
// ties broken by first-seen order (spec §4.8 step 2).
func majorityDirectory(files []model.FileDiff) (string, int) {
	return majorityBy(files, func(f model.FileDiff) string { return f.Directory() })
}

func majorityBy(files []model.FileDiff, key func(model.FileDiff) string) (string, int) {
	var order []string
	counts := make(map[string]int)
	for _, f := range files {
		k := key(f)
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}
	best := ""
	bestCount := -1
	for _, k := range order {
		if counts[k] > bestCount {
			best = k
			bestCount = counts[k]
		}
	}
	return best, bestCount
}

func groupLabel(i int) string {
	return "semantic-group-" + strconv.Itoa(i)
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// optimizeBoundaries runs the boundary-optimization loop (spec §4.9): for
// every ordered group pair, move a file from the larger group to the other
// when doing so increases the summed cohesion score; repeat until a full
// pass makes no change. Groups of size 1 are never emptied. Deterministic
// under the fixed iteration order (group declaration order).
func optimizeBoundaries(groups []grouper.Group, fileByPath map[string]model.FileDiff) []grouper.Group {
	if len(groups) < 2 {
		return groups
	}
	work := make([]grouper.Group, len(groups))
	copy(work, groups)

	for {
		changed := false
		for i := range work {
			for j := range work {
				if i == j {
					continue
				}
				if len(work[i]) <= len(work[j]) {
					continue
				}
				moved := tryMove(work, i, j, fileByPath)
				if moved {
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
	return work
}

// tryMove attempts to relocate one file from the larger group src to dst,
// committing the move (and reporting true) the first time it strictly
// increases the summed cohesion of the two groups.
func tryMove(work []grouper.Group, src, dst int, fileByPath map[string]model.FileDiff) bool {
	if len(work[src]) <= 1 {
		return false
	}
	srcFiles := resolveFiles(work[src], fileByPath)
	dstFiles := resolveFiles(work[dst], fileByPath)
	baseline := groupScore(srcFiles) + groupScore(dstFiles)

	for idx, path := range work[src] {
		candidateSrc := removeAt(work[src], idx)
		candidateDst := append(append(grouper.Group{}, work[dst]...), path)

		candSrcFiles := resolveFiles(candidateSrc, fileByPath)
		candDstFiles := resolveFiles(candidateDst, fileByPath)
		candidate := groupScore(candSrcFiles) + groupScore(candDstFiles)

		if candidate > baseline {
			work[src] = candidateSrc
			work[dst] = candidateDst
			return true
		}
	}
	return false
}

func groupScore(files []model.FileDiff) float64 {
	sets := make([]map[string]struct{}, 0, len(files))
	for _, f := range files {
		sets = append(sets, keywords.Extract(f.Patch))
	}
	union := keywords.Union(sets...)
	return cohesion.Score(files, union)
}

func removeAt(g grouper.Group, idx int) grouper.Group {
	out := make(grouper.Group, 0, len(g)-1)
	for i, v := range g {
		if i == idx {
			continue
		}
		out = append(out, v)
	}
	return out
}
