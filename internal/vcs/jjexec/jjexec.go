// Package jjexec implements vcs.VCS against a real `jj` binary via os/exec.
// It shells out to `jj diff --git`, `jj log`, and `jj file list`, and drives
// `jj describe`/`jj new` to realize commits.
package jjexec

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"jjdivide/internal/errs"
	"jjdivide/internal/vcs"
)

// Adapter shells out to the jj binary named by Binary (default "jj").
type Adapter struct {
	Binary  string
	Timeout time.Duration
}

// New builds an Adapter against the "jj" binary on PATH with a 30s
// per-invocation timeout.
func New() *Adapter {
	return &Adapter{Binary: "jj", Timeout: 30 * time.Second}
}

func (a *Adapter) binary() string {
	if a.Binary != "" {
		return a.Binary
	}
	return "jj"
}

func (a *Adapter) timeout() time.Duration {
	if a.Timeout > 0 {
		return a.Timeout
	}
	return 30 * time.Second
}

func (a *Adapter) run(ctx context.Context, dir string, args ...string) (string, error) {
	execCtx, cancel := context.WithTimeout(ctx, a.timeout())
	defer cancel()

	cmd := exec.CommandContext(execCtx, a.binary(), args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", errs.Wrap(errs.VCSError, fmt.Sprintf("jj %s: %s", strings.Join(args, " "), strings.TrimSpace(stderr.String())), err)
	}
	return stdout.String(), nil
}

// Init validates path by asking jj for its workspace root.
func (a *Adapter) Init(ctx context.Context, path string) (vcs.Repo, error) {
	if _, err := os.Stat(path); err != nil {
		return vcs.Repo{}, errs.Wrap(errs.NotARepository, "path does not exist: "+path, err)
	}
	out, err := a.run(ctx, path, "root")
	if err != nil {
		return vcs.Repo{}, errs.Wrap(errs.NotARepository, "not a jj repository: "+path, err)
	}
	return vcs.Repo{Path: strings.TrimSpace(out)}, nil
}

// DiffRange runs `jj diff --git -r <rangeExpr>` and parses the unified-diff
// output into per-file hunks.
func (a *Adapter) DiffRange(ctx context.Context, repo vcs.Repo, rangeExpr string) (vcs.DiffRangeResult, error) {
	if rangeExpr == "" {
		return vcs.DiffRangeResult{}, errs.New(errs.InvalidInput, "revision range must not be empty")
	}
	out, err := a.run(ctx, repo.Path, "diff", "--git", "-r", rangeExpr)
	if err != nil {
		return vcs.DiffRangeResult{}, err
	}
	return vcs.DiffRangeResult{Range: rangeExpr, Files: parseGitDiff(out)}, nil
}

// CommitHistory runs `jj log` with a machine-parseable template.
func (a *Adapter) CommitHistory(ctx context.Context, repo vcs.Repo, limit int, ref string) ([]vcs.CommitInfo, error) {
	if ref == "" {
		ref = "@"
	}
	template := `commit_id ++ "\x1f" ++ author.name() ++ "\x1f" ++ author.timestamp() ++ "\x1f" ++ description ++ "\x1e"`
	args := []string{"log", "--no-graph", "-r", fmt.Sprintf("::%s", ref), "-T", template}
	if limit > 0 {
		args = append(args, "-n", strconv.Itoa(limit))
	}
	out, err := a.run(ctx, repo.Path, args...)
	if err != nil {
		return nil, err
	}
	return parseLog(out), nil
}

// CommitInfo looks up one commit via CommitHistory limited to one entry
// (`jj log -r ::<id> -n 1`).
func (a *Adapter) CommitInfo(ctx context.Context, repo vcs.Repo, id string) (vcs.CommitInfo, error) {
	infos, err := a.CommitHistory(ctx, repo, 1, id)
	if err != nil {
		return vcs.CommitInfo{}, err
	}
	if len(infos) == 0 {
		return vcs.CommitInfo{}, errs.New(errs.VCSError, "commit not found: "+id)
	}
	return infos[0], nil
}

// CommitFiles runs `jj file list -r <id>`.
func (a *Adapter) CommitFiles(ctx context.Context, repo vcs.Repo, id string) ([]string, error) {
	out, err := a.run(ctx, repo.Path, "file", "list", "-r", id)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}

// CreateCommit writes changes' post-image content to the working copy, then
// describes the current change and starts a new one on top (spec's
// createCommit(message, changes) -> commitId). changes must already carry
// reconstructed post-image content (internal/realize), never raw diff text.
func (a *Adapter) CreateCommit(ctx context.Context, repo vcs.Repo, message string, changes []vcs.Change) (string, error) {
	for _, c := range changes {
		full := repo.Path + "/" + c.Path
		if err := os.MkdirAll(parentDir(full), 0o755); err != nil {
			return "", errs.Wrap(errs.VCSError, "creating parent directory for "+c.Path, err)
		}
		if err := os.WriteFile(full, c.Content, 0o644); err != nil {
			return "", errs.Wrap(errs.VCSError, "writing "+c.Path, err)
		}
	}

	if _, err := a.run(ctx, repo.Path, "describe", "-m", message); err != nil {
		return "", err
	}
	if _, err := a.run(ctx, repo.Path, "new"); err != nil {
		return "", err
	}
	out, err := a.run(ctx, repo.Path, "log", "--no-graph", "-r", "@-", "-T", "commit_id")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func parentDir(path string) string {
	idx := strings.LastIndexByte(path, '/')
	if idx < 0 {
		return "."
	}
	return path[:idx]
}
