// Package git retrieves commit logs for a day window, either by running the
// git binary or by walking the repository with go-git. Both sources return
// the same text format, which internal/history parses.
package git

import (
	"context"
	"fmt"
	"strings"

	"gitoutofhours/pkg/errors"
	"gitoutofhours/pkg/models"
)

// Source kinds
const (
	SourceExec  = "exec"
	SourceGoGit = "gogit"
)

// Source returns raw log text for one day window on one branch.
// Failures are reported as errors matching errors.ErrRetrievingCommits.
type Source interface {
	Log(ctx context.Context, window models.DayWindow, branch string) (string, error)
}

// NewSource creates the source named by kind for the repository at repoPath
func NewSource(kind, repoPath string) (Source, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", SourceExec:
		return NewExecSource(repoPath), nil
	case SourceGoGit, "go-git":
		return NewRepoSource(repoPath)
	default:
		return nil, errors.ValidationError("source", kind,
			fmt.Sprintf("must be one of %q or %q", SourceExec, SourceGoGit))
	}
}
