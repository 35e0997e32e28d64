// Package history turns raw commit log text into a keyed, ordered collection
// of normalized commit records.
package history

import (
	"sort"

	"gitoutofhours/pkg/models"
)

// History maps a commit SortKey to its record. The zero value is an empty
// History ready to use. Values are treated as immutable: aggregation and
// merging return a new History and leave their inputs untouched.
type History struct {
	records map[string]models.CommitRecord
}

// Len returns the number of records
func (h History) Len() int {
	return len(h.records)
}

// Get returns the record stored under key and whether it exists
func (h History) Get(key string) (models.CommitRecord, bool) {
	rec, ok := h.records[key]
	return rec, ok
}

// Has reports whether key is present
func (h History) Has(key string) bool {
	_, ok := h.records[key]
	return ok
}

// Keys returns every key in ascending order
func (h History) Keys() []string {
	keys := make([]string, 0, len(h.records))
	for k := range h.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Records returns every record in ascending key order
func (h History) Records() []models.CommitRecord {
	keys := h.Keys()
	out := make([]models.CommitRecord, 0, len(keys))
	for _, k := range keys {
		out = append(out, h.records[k])
	}
	return out
}

// Authors returns the distinct author names in first-seen key order
func (h History) Authors() []string {
	seen := make(map[string]bool)
	var authors []string
	for _, rec := range h.Records() {
		if rec.Author == "" || seen[rec.Author] {
			continue
		}
		seen[rec.Author] = true
		authors = append(authors, rec.Author)
	}
	return authors
}

// With returns a copy of h with rec stored under its SortKey. An existing
// record with the same key is replaced.
func (h History) With(rec models.CommitRecord) History {
	next := h.clone(1)
	next.records[rec.SortKey] = rec
	return next
}

// Filter returns the records accepted by keep
func (h History) Filter(keep func(models.CommitRecord) bool) History {
	next := History{records: make(map[string]models.CommitRecord)}
	for k, rec := range h.records {
		if keep(rec) {
			next.records[k] = rec
		}
	}
	return next
}

// Merge combines histories left to right; later records replace earlier ones
// with the same key.
func Merge(histories ...History) History {
	size := 0
	for _, h := range histories {
		size += h.Len()
	}
	merged := History{records: make(map[string]models.CommitRecord, size)}
	for _, h := range histories {
		for k, rec := range h.records {
			merged.records[k] = rec
		}
	}
	return merged
}

func (h History) clone(extra int) History {
	next := History{records: make(map[string]models.CommitRecord, len(h.records)+extra)}
	for k, rec := range h.records {
		next.records[k] = rec
	}
	return next
}
