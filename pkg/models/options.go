package models

import (
	"fmt"
	"strconv"
	"strings"

	"gitoutofhours/pkg/errors"
)

// AuthorMatch selects how the author filter is compared
type AuthorMatch string

const (
	// MatchExact compares trimmed names case-insensitively
	MatchExact AuthorMatch = "exact"
	// MatchContains accepts any author whose name contains the filter
	MatchContains AuthorMatch = "contains"
)

// Defaults
const (
	DefaultDayCount    = 30
	DefaultBranch      = "master"
	DefaultStartClock  = "17:30"
	DefaultEndClock    = "08:30"
	DefaultConcurrency = 4
)

// Options describes one scan
type Options struct {
	DayCount      int
	Author        string
	AuthorMatch   AuthorMatch
	SkipTimeCheck bool
	Branch        string
	StartClock    string
	EndClock      string
	Concurrency   int
	RepoPath      string
}

// Validate checks the options before any retrieval starts
func (o Options) Validate() error {
	if o.DayCount <= 0 {
		return errors.New(errors.ErrCodeRequiredField, "Amount of days to search for is required").
			WithContext("days", o.DayCount)
	}
	switch o.AuthorMatch {
	case "", MatchExact, MatchContains:
	default:
		return errors.ValidationError("match", o.AuthorMatch, "must be one of exact, contains")
	}
	if o.Concurrency < 0 {
		return errors.ValidationError("concurrency", o.Concurrency, "must not be negative")
	}
	return nil
}

// ParseDayCount converts the raw --days value into a day count
func ParseDayCount(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "0" {
		return 0, errors.New(errors.ErrCodeRequiredField, "Amount of days to search for is required")
	}

	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "Amount of days needs to be a number").
			WithContext("days", raw)
	}
	if days <= 0 {
		return 0, errors.New(errors.ErrCodeRequiredField, "Amount of days to search for is required").
			WithContext("days", raw)
	}
	return days, nil
}

// ParseAuthorMatch converts a flag or config value into an AuthorMatch
func ParseAuthorMatch(raw string) (AuthorMatch, error) {
	switch m := AuthorMatch(strings.ToLower(strings.TrimSpace(raw))); m {
	case "":
		return MatchExact, nil
	case MatchExact, MatchContains:
		return m, nil
	default:
		return "", fmt.Errorf("unknown author match mode %q (want exact or contains)", raw)
	}
}
