// Package schedule computes the per-day retrieval windows.
package schedule

import (
	"time"

	"gitoutofhours/pkg/models"
)

// WindowLayout is the canonical rendering of window boundaries
const WindowLayout = "2006-01-02 15:04:05"

// Scheduler produces one DayWindow per day offset relative to Now
type Scheduler struct {
	Now   func() time.Time
	Start Clock
	End   Clock
}

// New returns a Scheduler using the wall clock
func New(start, end Clock) *Scheduler {
	return &Scheduler{Now: time.Now, Start: start, End: end}
}

// SpansMidnight reports whether the out-of-hours range crosses midnight
func (s *Scheduler) SpansMidnight() bool {
	return s.Start.minutes() >= s.End.minutes()
}

// Window computes the boundaries for offset days ago.
//
// Out-of-hours windows run from the evening of day-offset to the morning
// of day-offset+1, so offset 0 starts this evening and the first run of the
// day still sees last night through offset 1. When the configured range does
// not cross midnight both ends fall on day-offset.
//
// With skip set the clock is ignored and the window is the 24 hours starting
// offset days before now. Consecutive windows touch.
func (s *Scheduler) Window(offset int, skip bool) models.DayWindow {
	now := s.now()

	var since, until time.Time
	if skip {
		since = now.AddDate(0, 0, -offset)
		until = now.AddDate(0, 0, -offset+1)
	} else {
		day := now.AddDate(0, 0, -offset)
		endDay := day
		if s.SpansMidnight() {
			endDay = day.AddDate(0, 0, 1)
		}
		since = at(day, s.Start)
		until = at(endDay, s.End)
	}

	return models.DayWindow{
		Offset:        offset,
		Start:         since.Format(WindowLayout),
		End:           until.Format(WindowLayout),
		SkipTimeCheck: skip,
		Since:         since,
		Until:         until,
	}
}

// Windows returns the windows for offsets 0..days-1
func (s *Scheduler) Windows(days int, skip bool) []models.DayWindow {
	if days <= 0 {
		return nil
	}
	windows := make([]models.DayWindow, 0, days)
	for i := 0; i < days; i++ {
		windows = append(windows, s.Window(i, skip))
	}
	return windows
}

func (s *Scheduler) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func at(day time.Time, c Clock) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, c.Hour, c.Minute, 0, 0, day.Location())
}
