package history

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"gitoutofhours/pkg/errors"
)

const (
	// SortKeyLayout is the canonical key format for a commit
	SortKeyLayout = "2006-01-02 15:04:05"
	// TimeOfDayLayout is the clock-time projection of a commit
	TimeOfDayLayout = "15:04:05"
)

var (
	logDatePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})\s(\d{1,2}):(\d{2}):(\d{2})`)
	zonePattern    = regexp.MustCompile(`^\s+([+-])(\d{2}):?(\d{2})\b`)
)

// Timestamp is a normalized commit date
type Timestamp struct {
	Instant   time.Time
	SortKey   string
	TimeOfDay string
}

// NormalizeDate parses a "YYYY-MM-DD HH:MM:SS" prefix. A numeric zone offset
// directly after the clock is honoured; any other suffix is ignored and the
// local zone is used. SortKey and TimeOfDay keep the commit's own wall clock.
func NormalizeDate(s string) (Timestamp, error) {
	return normalizeIn(s, time.Local)
}

func normalizeIn(s string, loc *time.Location) (Timestamp, error) {
	m := logDatePattern.FindStringSubmatchIndex(s)
	if m == nil {
		return Timestamp{}, invalidDate(s)
	}

	fields := make([]int, 6)
	for i := range fields {
		v, err := strconv.Atoi(s[m[2*(i+1)]:m[2*(i+1)+1]])
		if err != nil {
			return Timestamp{}, invalidDate(s)
		}
		fields[i] = v
	}
	year, month, day, hour, min, sec := fields[0], fields[1], fields[2], fields[3], fields[4], fields[5]
	if month < 1 || month > 12 || day < 1 || day > 31 || hour > 23 || min > 59 || sec > 59 {
		return Timestamp{}, invalidDate(s)
	}

	if z := zonePattern.FindStringSubmatch(s[m[1]:]); z != nil {
		hh, _ := strconv.Atoi(z[2])
		mm, _ := strconv.Atoi(z[3])
		offset := hh*3600 + mm*60
		if z[1] == "-" {
			offset = -offset
		}
		loc = time.FixedZone(fmt.Sprintf("%s%s%s", z[1], z[2], z[3]), offset)
	}

	instant := time.Date(year, time.Month(month), day, hour, min, sec, 0, loc)
	if instant.Day() != day {
		// time.Date normalises 2021-02-30 into March
		return Timestamp{}, invalidDate(s)
	}

	return Timestamp{
		Instant:   instant,
		SortKey:   instant.Format(SortKeyLayout),
		TimeOfDay: instant.Format(TimeOfDayLayout),
	}, nil
}

func invalidDate(s string) error {
	return errors.Wrap(errors.ErrInvalidDate, errors.ErrCodeInvalidDate,
		fmt.Sprintf("cannot normalize date %q", s)).
		WithSeverity(errors.SeverityWarning)
}
