// Package report turns a merged History into the commit table and the
// summary sentence.
package report

import (
	"fmt"
	"strconv"

	"gitoutofhours/internal/history"
	"gitoutofhours/pkg/models"
)

// Summary is the derived statistics for one run
type Summary struct {
	Total          int    `json:"total" yaml:"total"`
	Days           int    `json:"days" yaml:"days"`
	Author         string `json:"author,omitempty" yaml:"author,omitempty"`
	MostCommonHour string `json:"most_common_hour,omitempty" yaml:"most_common_hour,omitempty"`
	HourLabel      string `json:"hour_label,omitempty" yaml:"hour_label,omitempty"`
	Message        string `json:"message" yaml:"message"`
}

// Flatten concatenates the records of every history in key order
func Flatten(histories ...history.History) []models.CommitRecord {
	var out []models.CommitRecord
	for _, h := range histories {
		out = append(out, h.Records()...)
	}
	return out
}

// MostCommonHour returns the HH value occurring most often in times
// ("HH:MM:SS" strings). Counts are kept in input order and the leader only
// changes when another hour strictly overtakes it, so on a tie the hour that
// reached the winning count first wins. It reports false when no time has a
// valid hour.
func MostCommonHour(times []string) (string, bool) {
	var counts [24]int
	best, bestCount := -1, 0
	for _, t := range times {
		if len(t) < 2 {
			continue
		}
		h, err := strconv.Atoi(t[:2])
		if err != nil || h < 0 || h > 23 {
			continue
		}
		counts[h]++
		if counts[h] > bestCount {
			best, bestCount = h, counts[h]
		}
	}
	if best < 0 {
		return "", false
	}
	return fmt.Sprintf("%02d", best), true
}

// TimePeriod returns "am" for hours 00 to 11 and "pm" otherwise
func TimePeriod(hour string) string {
	h, err := strconv.Atoi(hour)
	if err != nil || h < 12 {
		return "am"
	}
	return "pm"
}

// HourLabel renders an HH hour on the 12-hour clock, e.g. "00" is "12am"
// and "13" is "1pm".
func HourLabel(hour string) string {
	h, err := strconv.Atoi(hour)
	if err != nil || h < 0 || h > 23 {
		return hour
	}
	twelve := h % 12
	if twelve == 0 {
		twelve = 12
	}
	return strconv.Itoa(twelve) + TimePeriod(hour)
}

// Pluralise joins n and word, adding "s" unless n is 1
func Pluralise(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// Summarise derives the statistics and the plain summary sentence
func Summarise(records []models.CommitRecord, opts models.Options) Summary {
	s := Summary{
		Total:  len(records),
		Days:   opts.DayCount,
		Author: opts.Author,
	}

	times := make([]string, 0, len(records))
	for _, rec := range records {
		times = append(times, rec.TimeOfDay)
	}
	if hour, ok := MostCommonHour(times); ok {
		s.MostCommonHour = hour
		s.HourLabel = HourLabel(hour)
	}

	s.Message = s.Sentence(nil)
	return s
}

// Sentence renders the summary, passing the author, the count and the day
// span through emphasise when it is not nil.
func (s Summary) Sentence(emphasise func(string) string) string {
	em := emphasise
	if em == nil {
		em = func(v string) string { return v }
	}

	var out string
	if s.Author != "" {
		out = fmt.Sprintf("%s committed late %s in the last %s",
			em(s.Author), em(Pluralise(s.Total, "time")), em(Pluralise(s.Days, "day")))
	} else {
		out = fmt.Sprintf("%s after hours were made in the last %s",
			em(Pluralise(s.Total, "commit")), em(Pluralise(s.Days, "day")))
	}

	if s.HourLabel != "" {
		out += ", with the most common hour being " + s.HourLabel
	}
	return out + "."
}
