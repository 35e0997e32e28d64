package history

import (
	"strings"

	"gitoutofhours/pkg/models"
)

// AuthorMatcher decides whether a commit author passes the filter
type AuthorMatcher func(author string) bool

// MatchAuthor builds the matcher for filter. An empty filter accepts every
// commit. Comparison is case-insensitive on trimmed names; a commit without
// an author never passes a non-empty filter.
func MatchAuthor(filter string, mode models.AuthorMatch) AuthorMatcher {
	want := strings.ToLower(strings.TrimSpace(filter))
	if want == "" {
		return nil
	}

	return func(author string) bool {
		got := strings.ToLower(strings.TrimSpace(author))
		if got == "" {
			return false
		}
		if mode == models.MatchContains {
			return strings.Contains(got, want)
		}
		return got == want
	}
}

// Aggregate folds commits into a copy of prior. Commits rejected by match,
// without a date, or with a date that does not normalize are skipped.
// Records sharing a SortKey replace each other, the last one wins.
func Aggregate(prior History, commits []models.RawCommit, match AuthorMatcher) History {
	next := prior.clone(len(commits))

	for _, commit := range commits {
		if match != nil && !match(commit.Author) {
			continue
		}

		rec, ok := NewRecord(commit)
		if !ok {
			continue
		}
		next.records[rec.SortKey] = rec
	}

	return next
}

// NewRecord builds the normalized record for commit. It reports false when
// the commit has no usable date.
func NewRecord(commit models.RawCommit) (models.CommitRecord, bool) {
	if strings.TrimSpace(commit.Date) == "" {
		return models.CommitRecord{}, false
	}

	ts, err := NormalizeDate(commit.Date)
	if err != nil {
		return models.CommitRecord{}, false
	}

	return models.CommitRecord{
		Hash:      strings.TrimSpace(commit.Hash),
		Author:    strings.TrimSpace(commit.Author),
		Email:     strings.TrimSpace(commit.Email),
		Message:   strings.TrimSpace(commit.Message),
		TimeOfDay: ts.TimeOfDay,
		SortKey:   ts.SortKey,
	}, true
}

// FromLog parses text and aggregates it into a copy of prior
func FromLog(prior History, text string, match AuthorMatcher) History {
	return Aggregate(prior, ParseLog(text), match)
}
