package history

import (
	"regexp"
	"strings"

	"gitoutofhours/pkg/models"
)

var (
	// entryBoundary separates entries in `git log` output: a blank line
	// followed by the next "commit <hash>" header.
	entryBoundary = regexp.MustCompile(`\n\ncommit\s`)

	hashPattern    = regexp.MustCompile(`(?m)^(?:commit\s+)?([0-9a-f]{40})\b`)
	authorPattern  = regexp.MustCompile(`Author:\s*([^<\n]+)`)
	emailPattern   = regexp.MustCompile(`<([^<>\n]+)>`)
	datePattern    = regexp.MustCompile(`Date:\s*(.+)`)
	messagePattern = regexp.MustCompile(`\n\n\s*(.+)`)
)

// SplitLog splits raw log output into one block per entry
func SplitLog(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return nil
	}

	parts := entryBoundary.Split(text, -1)
	blocks := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		blocks = append(blocks, part)
	}
	return blocks
}

// ParseBlock extracts the commit fields from one log entry. Fields that
// cannot be found are left empty; found ones are trimmed.
func ParseBlock(block string) models.RawCommit {
	block = strings.ReplaceAll(block, "\r\n", "\n")

	return models.RawCommit{
		Hash:    firstGroup(hashPattern, block),
		Author:  strings.TrimSpace(firstGroup(authorPattern, block)),
		Email:   strings.TrimSpace(firstGroup(emailPattern, block)),
		Date:    strings.TrimSpace(firstGroup(datePattern, block)),
		Message: firstGroup(messagePattern, block),
	}
}

// ParseLog splits and parses a complete log
func ParseLog(text string) []models.RawCommit {
	blocks := SplitLog(text)
	commits := make([]models.RawCommit, 0, len(blocks))
	for _, block := range blocks {
		commits = append(commits, ParseBlock(block))
	}
	return commits
}

func firstGroup(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}
