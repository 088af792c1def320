package adapter

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"time"

	m "mutagate.dev/pkg/mutagate/internal/model"
)

const gitDiffTimeout = 30 * time.Second

// ChangeSetAdapter produces the changed-files/changed-lines map from revision
// control. It must be tolerant of absent git state: no repository means no
// changes, not a failure.
type ChangeSetAdapter interface {
	Changes(ctx context.Context, baseDir m.Path, baseBranch string) (m.ChangeSet, error)
}

// GitDiffAdapter extracts added/modified line ranges from `git diff` against a
// base reference, restricted to Go files.
type GitDiffAdapter struct {
	timeout time.Duration
}

// NewGitDiffAdapter constructs a GitDiffAdapter.
func NewGitDiffAdapter() *GitDiffAdapter {
	return &GitDiffAdapter{timeout: gitDiffTimeout}
}

// Changes runs `git diff --unified=0 <base> -- *.go` in baseDir and parses the
// hunk headers. Any git failure (no repo, unknown ref, missing binary) yields
// an empty ChangeSet.
func (a *GitDiffAdapter) Changes(ctx context.Context, baseDir m.Path, baseBranch string) (m.ChangeSet, error) {
	diffCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	cmd := exec.CommandContext(diffCtx, "git", "diff", "--unified=0", baseBranch, "--", "*.go")
	cmd.Dir = string(baseDir)

	var stdout bytes.Buffer

	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		slog.Warn("git diff unavailable, assuming no changes", "base", baseBranch, "error", err)
		return m.ChangeSet{}, nil
	}

	return ParseUnifiedDiff(stdout.String()), nil
}

// ParseUnifiedDiff extracts the file -> changed-lines map from --unified=0
// diff output. Only added/modified ranges count; pure deletions carry a zero
// count and contribute nothing. Test files are not gated.
func ParseUnifiedDiff(out string) m.ChangeSet {
	changes := m.ChangeSet{}

	var current m.Path

	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.HasPrefix(line, "+++ b/"):
			current = m.Path(strings.TrimPrefix(line, "+++ b/"))
			if strings.HasSuffix(string(current), "_test.go") {
				current = ""
			}
		case strings.HasPrefix(line, "@@") && current != "":
			start, count, ok := parseHunkHeader(line)
			if !ok || count == 0 {
				continue
			}

			set := changes[current]
			if set == nil {
				set = m.LineSet{}
				changes[current] = set
			}

			for i := 0; i < count; i++ {
				set.Add(start + i)
			}
		}
	}

	return changes
}

// parseHunkHeader reads the "+start,count" range from a `@@ -a,b +c,d @@` line.
// A missing count means a single line.
func parseHunkHeader(line string) (int, int, bool) {
	idx := strings.IndexByte(line, '+')
	if idx < 0 {
		return 0, 0, false
	}

	rest := line[idx+1:]
	if sp := strings.IndexByte(rest, ' '); sp >= 0 {
		rest = rest[:sp]
	}

	startPart, countPart, hasCount := strings.Cut(rest, ",")

	start, err := strconv.Atoi(startPart)
	if err != nil {
		return 0, 0, false
	}

	count := 1

	if hasCount {
		count, err = strconv.Atoi(countPart)
		if err != nil {
			return 0, 0, false
		}
	}

	return start, count, true
}
