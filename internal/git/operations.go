package git

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"gitoutofhours/pkg/errors"
	"gitoutofhours/pkg/models"
)

// LogDateLayout matches git's --date=iso output
const LogDateLayout = "2006-01-02 15:04:05 -0700"

// RepoSource reads history with go-git, without needing a git binary.
// go-git's filesystem storage is not safe for concurrent use, so Log calls
// are serialized.
type RepoSource struct {
	repoPath string

	mu   sync.Mutex
	repo *git.Repository
}

// NewRepoSource opens the repository containing repoPath
func NewRepoSource(repoPath string) (*RepoSource, error) {
	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeRepoNotFound, "Failed to open repository").
			WithContext("repo", repoPath).
			WithSuggestions("Run the command inside a git repository or pass --repo")
	}

	return &RepoSource{
		repoPath: repoPath,
		repo:     repo,
	}, nil
}

// Log renders the commits reachable from branch whose committer time falls
// inside the window, newest first, in git's --date=iso format.
func (s *RepoSource) Log(ctx context.Context, window models.DayWindow, branch string) (string, error) {
	if err := ValidateBranch(branch); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	from, err := s.resolve(branch)
	if err != nil {
		return "", errors.RetrievalError(SourceGoGit, err).WithContext("branch", branch)
	}

	since, until := window.Since, window.Until
	iter, err := s.repo.Log(&git.LogOptions{
		From:  from,
		Order: git.LogOrderCommitterTime,
		Since: &since,
		Until: &until,
	})
	if err != nil {
		return "", errors.RetrievalError(SourceGoGit, err).WithContext("branch", branch)
	}
	defer iter.Close()

	var entries []string
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		entries = append(entries, FormatCommit(c))
		return nil
	})
	if err != nil {
		return "", errors.RetrievalError(SourceGoGit, err).WithContext("branch", branch)
	}

	return strings.Join(entries, "\n"), nil
}

// resolve finds the commit a branch points at. An empty branch means HEAD.
func (s *RepoSource) resolve(branch string) (plumbing.Hash, error) {
	if branch == "" {
		ref, err := s.repo.Head()
		if err != nil {
			return plumbing.ZeroHash, fmt.Errorf("failed to get HEAD reference: %w", err)
		}
		return ref.Hash(), nil
	}

	candidates := []plumbing.ReferenceName{
		plumbing.NewBranchReferenceName(branch),
		plumbing.NewRemoteReferenceName("origin", branch),
		plumbing.NewTagReferenceName(branch),
	}
	for _, name := range candidates {
		ref, err := s.repo.Reference(name, true)
		if err == nil {
			return ref.Hash(), nil
		}
	}

	hash, err := s.repo.ResolveRevision(plumbing.Revision(branch))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("bad revision '%s'", branch)
	}
	return *hash, nil
}

// FormatCommit renders one commit the way git log --date=iso prints it
func FormatCommit(c *object.Commit) string {
	var b strings.Builder
	fmt.Fprintf(&b, "commit %s\n", c.Hash.String())
	if len(c.ParentHashes) > 1 {
		b.WriteString("Merge:")
		for _, p := range c.ParentHashes {
			b.WriteString(" " + p.String()[:7])
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Author: %s <%s>\n", c.Author.Name, c.Author.Email)
	fmt.Fprintf(&b, "Date:   %s\n\n", c.Author.When.Format(LogDateLayout))

	for _, line := range strings.Split(strings.TrimRight(c.Message, "\n"), "\n") {
		b.WriteString("    " + line + "\n")
	}
	return b.String()
}
