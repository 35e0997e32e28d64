package history

import (
	"testing"

	"gitoutofhours/pkg/models"

	"github.com/stretchr/testify/assert"
)

func record(key, author, msg string) models.CommitRecord {
	return models.CommitRecord{SortKey: key, TimeOfDay: key[11:], Author: author, Message: msg}
}

func TestHistoryZeroValue(t *testing.T) {
	var h History
	assert.Equal(t, 0, h.Len())
	assert.Empty(t, h.Keys())
	assert.Empty(t, h.Records())
	assert.False(t, h.Has("2021-11-05 10:00:00"))

	_, ok := h.Get("2021-11-05 10:00:00")
	assert.False(t, ok)
}

func TestHistoryWithIsCopyOnWrite(t *testing.T) {
	a := History{}.With(record("2021-11-05 22:00:00", "John", "one"))
	b := a.With(record("2021-11-05 22:00:00", "John", "two"))

	ra, _ := a.Get("2021-11-05 22:00:00")
	rb, _ := b.Get("2021-11-05 22:00:00")
	assert.Equal(t, "one", ra.Message)
	assert.Equal(t, "two", rb.Message)
}

func TestMergeLastWriteWins(t *testing.T) {
	first := History{}.
		With(record("2021-11-05 22:00:00", "John", "first")).
		With(record("2021-11-04 23:00:00", "Jane", "only in first"))
	second := History{}.
		With(record("2021-11-05 22:00:00", "John", "second"))

	merged := Merge(first, second)
	assert.Equal(t, 2, merged.Len())

	rec, _ := merged.Get("2021-11-05 22:00:00")
	assert.Equal(t, "second", rec.Message)
	assert.Equal(t, []string{"2021-11-04 23:00:00", "2021-11-05 22:00:00"}, merged.Keys())

	assert.Equal(t, 0, Merge().Len())
}

func TestHistoryAuthorsAndFilter(t *testing.T) {
	h := History{}.
		With(record("2021-11-05 22:00:00", "John", "a")).
		With(record("2021-11-04 23:00:00", "Jane", "b")).
		With(record("2021-11-06 01:00:00", "John", "c")).
		With(record("2021-11-06 02:00:00", "", "d"))

	assert.Equal(t, []string{"Jane", "John"}, h.Authors())

	johns := h.Filter(func(r models.CommitRecord) bool { return r.Author == "John" })
	assert.Equal(t, 2, johns.Len())
	assert.Equal(t, 4, h.Len())
}
