package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/mgutz/ansi"
)

// Color styles
const (
	StyleSuccess = "green"
	StyleError   = "red"
	StyleWarning = "yellow"
	StyleInfo    = "cyan"
	StyleBold    = "default+b"
	StyleDim     = "default+h"
)

// IsTerminal reports whether w is a terminal that can show colours
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// colorFunc returns a function that colors text if enabled
func colorFunc(style string, enabled bool) func(string) string {
	return func(text string) string {
		if enabled {
			return ansi.Color(text, style)
		}
		return text
	}
}

// IntroLine describes the scan that is about to run
func IntroLine(days int, author string, anytime bool, start, end string) string {
	unit := "days"
	if days == 1 {
		unit = "day"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Getting the last %d %s commits", days, unit)
	if author != "" {
		fmt.Fprintf(&b, " by %s", author)
	}
	if !anytime {
		fmt.Fprintf(&b, " after hours (%s to %s)", start, end)
	}
	return b.String()
}

// getSuggestion returns helpful suggestions based on error messages
func getSuggestion(message string) string {
	lower := strings.ToLower(message)

	switch {
	case strings.Contains(lower, "not a git repository"):
		return "Run the command inside a git repository or pass --repo"
	case strings.Contains(lower, "bad revision"), strings.Contains(lower, "unknown revision"):
		return "Check the branch name with 'git branch'"
	case strings.Contains(lower, "permission denied"):
		return "Check the permissions of the repository and the config file"
	default:
		return ""
	}
}
