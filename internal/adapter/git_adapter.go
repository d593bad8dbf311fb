package adapter

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	m "github.com/NeatNerdPrime/undercover/internal/model"
)

// GitAdapter abstracts the git operations used to build the change set.
type GitAdapter interface {
	// ChangedFiles lists files changed in workTree relative to compare
	// (HEAD when empty), untracked files included. Paths are relative to
	// workTree and use forward slashes.
	ChangedFiles(ctx context.Context, workTree, gitDir m.Path, compare string) ([]string, error)
}

// LocalGitAdapter runs the git binary found in PATH.
type LocalGitAdapter struct {
	timeout time.Duration
}

// NewLocalGitAdapter constructs a LocalGitAdapter with default 30s timeout.
func NewLocalGitAdapter() *LocalGitAdapter {
	return &LocalGitAdapter{
		timeout: 30 * time.Second,
	}
}

// ChangedFiles runs `git diff --name-only` and `git ls-files --others`.
func (a *LocalGitAdapter) ChangedFiles(ctx context.Context, workTree, gitDir m.Path, compare string) ([]string, error) {
	ref := compare
	if ref == "" {
		ref = "HEAD"
	}

	diffOut, err := a.run(ctx, workTree, gitDir, "diff", "--name-only", "-z", ref, "--")
	if err != nil {
		return nil, fmt.Errorf("git diff against %s: %w", ref, err)
	}

	untrackedOut, err := a.run(ctx, workTree, gitDir, "ls-files", "--others", "--exclude-standard", "-z")
	if err != nil {
		return nil, fmt.Errorf("git ls-files: %w", err)
	}

	seen := make(map[string]struct{})

	var files []string

	for _, out := range []string{diffOut, untrackedOut} {
		for _, name := range strings.Split(out, "\x00") {
			if name == "" {
				continue
			}

			if _, ok := seen[name]; ok {
				continue
			}

			seen[name] = struct{}{}
			files = append(files, name)
		}
	}

	return files, nil
}

func (a *LocalGitAdapter) run(ctx context.Context, workTree, gitDir m.Path, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	gitArgs := append([]string{"--git-dir", string(gitDir), "--work-tree", string(workTree)}, args...)

	// #nosec G204 - arguments are built from resolved configuration, not a shell string
	cmd := exec.CommandContext(ctx, "git", gitArgs...)
	cmd.Dir = string(workTree)

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}
