// Package cohesion implements the cohesion scorer (spec §4.7): a quality
// measure over the directory/extension/change-kind/keyword-density axes of a
// file group, used by the boundary-optimization pass to relocate boundary
// files between groups.
package cohesion

import "jjdivide/internal/division/model"

// Score computes the §4.7 formula for files, given the group's union
// keyword set.
//
//	score = 0.3*dirCohesion + 0.2*extCohesion + 0.2*kindCohesion + 0.3*keywordDensity
func Score(files []model.FileDiff, keywordSet []string) float64 {
	if len(files) == 0 {
		return 0
	}

	n := float64(len(files))
	dirCounts := make(map[string]int)
	extCounts := make(map[string]int)
	kindCounts := make(map[model.FileChangeKind]int)

	for _, f := range files {
		dirCounts[f.Directory()]++
		extCounts[f.Extension()]++
		kindCounts[f.ChangeKind]++
	}

	dirCohesion := float64(maxCount(dirCounts)) / n
	extCohesion := float64(maxCount(extCounts)) / n
	kindCohesion := float64(maxCount(kindCounts)) / n
	keywordDensity := float64(len(keywordSet)) / 10.0
	if keywordDensity > 1.0 {
		keywordDensity = 1.0
	}

	return 0.3*dirCohesion + 0.2*extCohesion + 0.2*kindCohesion + 0.3*keywordDensity
}

func maxCount[K comparable](m map[K]int) int {
	best := 0
	for _, c := range m {
		if c > best {
			best = c
		}
	}
	return best
}
