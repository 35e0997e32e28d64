package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"gitoutofhours/pkg/errors"
	"gitoutofhours/pkg/models"
)

// ExecSource shells out to the git binary
type ExecSource struct {
	Dir    string
	Binary string
}

// NewExecSource creates an ExecSource running in dir
func NewExecSource(dir string) *ExecSource {
	return &ExecSource{Dir: dir, Binary: "git"}
}

// Args returns the git arguments used for a window
func (s *ExecSource) Args(window models.DayWindow, branch string) []string {
	args := []string{
		"--no-pager", "log", "--date=iso",
		"--since=" + window.Start,
		"--until=" + window.End,
	}
	if branch != "" {
		// the trailing "--" stops git from reading the branch as a path
		args = append(args, branch, "--")
	}
	return args
}

// Log runs git log for the window. Anything written to stderr counts as a
// failure, even when git exits zero.
func (s *ExecSource) Log(ctx context.Context, window models.DayWindow, branch string) (string, error) {
	if err := ValidateBranch(branch); err != nil {
		return "", err
	}

	binary := s.Binary
	if binary == "" {
		binary = "git"
	}

	cmd := exec.CommandContext(ctx, binary, s.Args(window, branch)...)
	cmd.Dir = s.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		return "", errors.RetrievalError(SourceExec, fmt.Errorf("%s", msg)).
			WithContext("branch", branch).
			WithContext("window", window.Offset)
	}
	if runErr != nil {
		return "", errors.RetrievalError(SourceExec, runErr).
			WithContext("branch", branch).
			WithContext("window", window.Offset)
	}

	return stdout.String(), nil
}
