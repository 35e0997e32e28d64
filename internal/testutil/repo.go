// Package testutil builds git fixtures and fake log sources for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"

	"gitoutofhours/internal/common"
)

// FixtureCommit describes one commit written by Repo.Commit
type FixtureCommit struct {
	Author  string
	Email   string
	Message string
	When    time.Time
}

// Repo is a throwaway repository on disk
type Repo struct {
	t    *testing.T
	Dir  string
	Repo *git.Repository
}

// NewRepo initialises an empty repository in a temp dir and writes commits
// in order. The default branch is master.
func NewRepo(t *testing.T, commits ...FixtureCommit) *Repo {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("Failed to init repository: %v", err)
	}

	r := &Repo{t: t, Dir: dir, Repo: repo}
	for _, c := range commits {
		r.Commit(c)
	}
	return r
}

// Commit appends the message to a tracked file and commits it with c's
// author, used as committer too. It returns the commit hash.
func (r *Repo) Commit(c FixtureCommit) string {
	r.t.Helper()

	wt, err := r.Repo.Worktree()
	if err != nil {
		r.t.Fatalf("Failed to get worktree: %v", err)
	}

	path := filepath.Join(r.Dir, "work.txt")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, common.FilePermissionSecure)
	if err != nil {
		r.t.Fatalf("Failed to open %s: %v", path, err)
	}
	if _, err := f.WriteString(c.Message + "\n"); err != nil {
		r.t.Fatalf("Failed to write %s: %v", path, err)
	}
	if err := f.Close(); err != nil {
		r.t.Fatalf("Failed to close %s: %v", path, err)
	}

	if _, err := wt.Add("work.txt"); err != nil {
		r.t.Fatalf("Failed to stage file: %v", err)
	}

	email := c.Email
	if email == "" {
		email = "dev@example.com"
	}
	sig := &object.Signature{Name: c.Author, Email: email, When: c.When}
	hash, err := wt.Commit(c.Message, &git.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		r.t.Fatalf("Failed to commit: %v", err)
	}
	return hash.String()
}
