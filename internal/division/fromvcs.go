package division

import (
	"jjdivide/internal/division/model"
	"jjdivide/internal/vcs"
)

// FromVCS converts a vcs.DiffRangeResult (the collaborator's wire-shape
// diff) into the division engine's model.DiffResult. This is the one place
// the engine depends on the vcs package, keeping internal/vcs free of any
// division/model import.
func FromVCS(r vcs.DiffRangeResult) model.DiffResult {
	files := make([]model.FileDiff, 0, len(r.Files))
	for _, f := range r.Files {
		files = append(files, model.FileDiff{
			Path:       f.Path,
			ChangeKind: model.FileChangeKind(f.ChangeKind),
			Patch:      f.Patch,
		})
	}
	return model.DiffResult{Range: r.Range, Files: files}
}
