package jjexec

import (
	"strconv"
	"strings"
	"time"

	"jjdivide/internal/vcs"
)

// parseGitDiff splits `jj diff --git` output into one vcs.FileDiff per
// "diff --git" section, classifying each by its "new file mode",
// "deleted file mode" and "rename from"/"rename to" header lines, matching
// git's own diff --git header conventions.
func parseGitDiff(out string) []vcs.FileDiff {
	var files []vcs.FileDiff
	lines := strings.Split(out, "\n")

	var current []string
	var path string
	var kind string

	flush := func() {
		if path == "" {
			return
		}
		files = append(files, vcs.FileDiff{
			Path:       path,
			ChangeKind: kind,
			Patch:      strings.Join(current, "\n"),
		})
	}

	for _, line := range lines {
		if strings.HasPrefix(line, "diff --git ") {
			flush()
			current = nil
			path, kind = "", "modify"
			path = extractDiffPath(line)
			continue
		}
		switch {
		case strings.HasPrefix(line, "new file mode"):
			kind = "add"
		case strings.HasPrefix(line, "deleted file mode"):
			kind = "delete"
		case strings.HasPrefix(line, "rename from"), strings.HasPrefix(line, "rename to"):
			kind = "rename"
		}
		current = append(current, line)
	}
	flush()

	return files
}

// extractDiffPath pulls the "b/<path>" operand out of a "diff --git a/<p>
// b/<p>" header line.
func extractDiffPath(line string) string {
	fields := strings.Fields(line)
	for i := len(fields) - 1; i >= 0; i-- {
		if strings.HasPrefix(fields[i], "b/") {
			return strings.TrimPrefix(fields[i], "b/")
		}
	}
	if len(fields) > 0 {
		return strings.TrimPrefix(fields[len(fields)-1], "b/")
	}
	return ""
}

// parseLog splits the \x1e-delimited, \x1f-separated template output from
// CommitHistory into CommitInfo records.
func parseLog(out string) []vcs.CommitInfo {
	var infos []vcs.CommitInfo
	for _, record := range strings.Split(out, "\x1e") {
		record = strings.TrimSpace(record)
		if record == "" {
			continue
		}
		fields := strings.SplitN(record, "\x1f", 4)
		if len(fields) < 4 {
			continue
		}
		infos = append(infos, vcs.CommitInfo{
			ID:        fields[0],
			Author:    fields[1],
			Timestamp: parseTimestamp(fields[2]),
			Message:   fields[3],
		})
	}
	return infos
}

func parseTimestamp(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(sec, 0)
	}
	return time.Time{}
}
