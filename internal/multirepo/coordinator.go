package multirepo

import (
	"jjdivide/internal/division/model"
)

// RepoCommit pairs a ProposedCommit with the repository it belongs to.
type RepoCommit struct {
	Repo   string
	Commit model.ProposedCommit
}

// CoordinatedGroup is one kind's commits across repositories. Commits is
// ordered by the coordinator's RepoOrder (spec §4.10: "realization order
// follows dependencyOrder()"), and contains at most one commit per
// repository (spec §4.10).
type CoordinatedGroup struct {
	Kind    model.ChangeKind
	Commits []RepoCommit
}

// CoordinatedProposal is the coordinator's output: every repository's
// proposed commits regrouped across the kind taxonomy, plus the repository
// order realization must follow.
type CoordinatedProposal struct {
	RepoOrder []string
	Groups    []CoordinatedGroup
}

// Coordinate groups perRepo's commits by ChangeKind across repositories.
// repoOrder must already be a valid dependency order (see repo.Manager's
// DependencyOrder) — the coordinator does not itself detect cycles; it
// trusts the caller resolved CyclicDependency first (spec §7: "the
// coordinator refuses to proceed" on a cycle, i.e. before Coordinate runs).
//
// When one repository has more than one commit of the same kind, only the
// first (in that repo's own commit order) joins the coordinated group for
// that kind — spec §4.10 bounds each group to at most one commit per
// repository and does not describe merging multiple same-kind commits.
func Coordinate(perRepo map[string]model.CommitDivisionProposal, repoOrder []string) CoordinatedProposal {
	groups := make(map[model.ChangeKind]*CoordinatedGroup, len(model.Kinds))

	for _, repoName := range repoOrder {
		proposal, ok := perRepo[repoName]
		if !ok {
			continue
		}
		seen := make(map[model.ChangeKind]bool)
		for _, commit := range proposal.Commits {
			if seen[commit.Kind] {
				continue
			}
			seen[commit.Kind] = true

			g, ok := groups[commit.Kind]
			if !ok {
				g = &CoordinatedGroup{Kind: commit.Kind}
				groups[commit.Kind] = g
			}
			g.Commits = append(g.Commits, RepoCommit{Repo: repoName, Commit: commit})
		}
	}

	var ordered []CoordinatedGroup
	for _, kind := range model.Kinds {
		if g, ok := groups[kind]; ok {
			ordered = append(ordered, *g)
		}
	}

	return CoordinatedProposal{RepoOrder: append([]string(nil), repoOrder...), Groups: ordered}
}
