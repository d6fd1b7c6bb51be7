package division

import (
	"jjdivide/internal/division/model"
)

// ProposalDocument is the engine's caller-facing output (spec §6). It is a
// plain, JSON-serializable projection of model.CommitDivisionProposal: no
// SimilarityGroupIDs leak through (those stay internal to strategy
// transformation; AffectedGroups is the public integer-list counterpart).
type ProposalDocument struct {
	OriginalCommitRange string              `json:"originalCommitRange"`
	ProposedCommits     []ProposedCommitDoc `json:"proposedCommits"`
	ConfidenceScore     float64             `json:"confidenceScore"`
	TotalFiles          int                 `json:"totalFiles"`
	Stats               map[string]int      `json:"stats"`
	Summary             SummaryDoc          `json:"summary"`
}

// ProposedCommitDoc mirrors spec §6's per-commit shape.
type ProposedCommitDoc struct {
	Message    string      `json:"message"`
	ChangeType string      `json:"changeType"`
	Keywords   []string    `json:"keywords"`
	Changes    []ChangeDoc `json:"changes"`
	Stats      CommitStats `json:"stats"`
}

// ChangeDoc mirrors spec §6's per-change shape.
type ChangeDoc struct {
	Path           string `json:"path"`
	ChangeType     string `json:"changeType"`
	AffectedGroups []int  `json:"affectedGroups"`
}

// CommitStats mirrors spec §6's per-commit stats object.
type CommitStats struct {
	FilesCount int    `json:"filesCount"`
	ChangeType string `json:"changeType"`
}

// SummaryDoc mirrors spec §6's top-level summary object.
type SummaryDoc struct {
	TotalCommits   int            `json:"totalCommits"`
	ShownCommits   int            `json:"shownCommits"`
	MeanConfidence float64        `json:"meanConfidence"`
	CommitTypes    map[string]int `json:"commitTypes"`
}

// BuildDocument projects proposal into the public ProposalDocument shape.
// Top-level Stats counts files (not commits) per conventional-commit type,
// distinct from Summary.CommitTypes which counts commits per type (spec §6
// names both "stats" and "summary.commitTypes" without disambiguating
// further; this is the implementer's resolution).
//
// Summary.CommitTypes is keyed by the ChangeKind taxonomy itself
// ("feature", "bugfix", "refactor", "docs", "tests", "chore", "style",
// "performance"), per spec §6's literal commitTypes{...} field list — not by
// the conventional-commit message tokens ("feat", "fix", ...) those kinds
// map to.
func BuildDocument(proposal model.CommitDivisionProposal, opts Options) ProposalDocument {
	docs := make([]ProposedCommitDoc, 0, len(proposal.Commits))
	fileStats := make(map[string]int)

	for _, commit := range proposal.Commits {
		changeType := commit.Kind.ConventionalType()
		changes := make([]ChangeDoc, 0, len(commit.Changes))
		for _, fc := range commit.Changes {
			changes = append(changes, ChangeDoc{
				Path:           fc.Path,
				ChangeType:     string(fc.ChangeKind),
				AffectedGroups: append([]int(nil), fc.SimilarityGroupIDs...),
			})
			fileStats[changeType]++
		}
		docs = append(docs, ProposedCommitDoc{
			Message:    commit.Message,
			ChangeType: changeType,
			Keywords:   append([]string(nil), commit.Keywords...),
			Changes:    changes,
			Stats: CommitStats{
				FilesCount: len(commit.Changes),
				ChangeType: changeType,
			},
		})
	}

	commitTypes := make(map[string]int, len(model.Kinds))
	for _, k := range model.Kinds {
		commitTypes[string(k)] = 0
	}
	for k, n := range CommitTypeCounts(proposal.Commits) {
		commitTypes[string(k)] = n
	}

	return ProposalDocument{
		OriginalCommitRange: proposal.OriginalRevision,
		ProposedCommits:     docs,
		ConfidenceScore:     proposal.Confidence,
		TotalFiles:          proposal.TotalFiles,
		Stats:               fileStats,
		Summary: SummaryDoc{
			TotalCommits:   len(proposal.Commits),
			ShownCommits:   ShownCount(proposal.Commits, opts.MinConfidence),
			MeanConfidence: meanConfidence(proposal.Commits),
			CommitTypes:    commitTypes,
		},
	}
}

func meanConfidence(commits []model.ProposedCommit) float64 {
	if len(commits) == 0 {
		return 0
	}
	var sum float64
	for _, c := range commits {
		sum += c.Confidence
	}
	return sum / float64(len(commits))
}
