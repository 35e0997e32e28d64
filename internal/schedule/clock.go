package schedule

import (
	"fmt"
	"strconv"
	"strings"
)

// Clock is a wall-clock time of day
type Clock struct {
	Hour   int
	Minute int
}

// String renders the clock as HH:MM
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Label renders the clock the way the summary line does, e.g. 5:30pm
func (c Clock) Label() string {
	period := "am"
	if c.Hour >= 12 {
		period = "pm"
	}
	h := c.Hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d%s", h, c.Minute, period)
}

func (c Clock) minutes() int {
	return c.Hour*60 + c.Minute
}

// Default out-of-hours boundaries
var (
	DefaultStart = Clock{Hour: 17, Minute: 30}
	DefaultEnd   = Clock{Hour: 8, Minute: 30}
)

// ParseClock reads "HH" or "HH:MM". A bare hour keeps the minute of fallback,
// so "17" with the default start yields 17:30.
func ParseClock(raw string, fallback Clock) (Clock, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}

	hourPart, minutePart, hasMinute := strings.Cut(raw, ":")
	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 0 || hour > 23 {
		return Clock{}, fmt.Errorf("invalid hour %q: want 00-23", raw)
	}

	minute := fallback.Minute
	if hasMinute {
		minute, err = strconv.Atoi(minutePart)
		if err != nil || minute < 0 || minute > 59 || len(minutePart) != 2 {
			return Clock{}, fmt.Errorf("invalid minute %q: want 00-59", raw)
		}
	}

	return Clock{Hour: hour, Minute: minute}, nil
}
