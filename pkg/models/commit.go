package models

import "time"

// RawCommit is one log entry as extracted from log text. Every field is
// optional; an empty string means the field was not found.
type RawCommit struct {
	Hash    string `json:"hash,omitempty" yaml:"hash,omitempty"`
	Author  string `json:"author,omitempty" yaml:"author,omitempty"`
	Email   string `json:"email,omitempty" yaml:"email,omitempty"`
	Date    string `json:"date,omitempty" yaml:"date,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
}

// CommitRecord is a normalized commit keyed by its SortKey
type CommitRecord struct {
	Hash      string `json:"hash,omitempty" yaml:"hash,omitempty"`
	Author    string `json:"author" yaml:"author"`
	Email     string `json:"email" yaml:"email"`
	Message   string `json:"message" yaml:"message"`
	TimeOfDay string `json:"time" yaml:"time"`
	SortKey   string `json:"date" yaml:"date"`
}

// ShortHash returns the first eight characters of the hash
func (c CommitRecord) ShortHash() string {
	if len(c.Hash) > 8 {
		return c.Hash[:8]
	}
	return c.Hash
}

// Hour returns the HH component of TimeOfDay, or "" when it is malformed
func (c CommitRecord) Hour() string {
	if len(c.TimeOfDay) < 2 {
		return ""
	}
	return c.TimeOfDay[:2]
}

// DayWindow holds the retrieval boundaries for one day offset
type DayWindow struct {
	Offset        int       `json:"offset" yaml:"offset"`
	Start         string    `json:"start" yaml:"start"`
	End           string    `json:"end" yaml:"end"`
	SkipTimeCheck bool      `json:"skip_time_check" yaml:"skip_time_check"`
	Since         time.Time `json:"-" yaml:"-"`
	Until         time.Time `json:"-" yaml:"-"`
}
