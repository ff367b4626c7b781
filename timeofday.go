package astrosched

import (
	"fmt"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time without a date, stored as minutes since midnight.
type TimeOfDay int

const (
	TimeLayout = "15:04"

	minutesPerDay = 24 * 60
)

// Clock returns the TimeOfDay for hour:minute. It does not range check.
func Clock(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// ParseTimeOfDay parses a 24-hour "HH:MM" string between 00:00 and 23:59.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	t, err := time.Parse(TimeLayout, s)
	if err != nil || len(s) != len(TimeLayout) {
		return 0, fmt.Errorf("%w: %q: use HH:MM between 00:00 and 23:59: %w", ErrInvalidTime, s, ErrInvalidTask)
	}
	return Clock(t.Hour(), t.Minute()), nil
}

func (t TimeOfDay) Hour() int {
	return int(t) / 60
}

func (t TimeOfDay) Minute() int {
	return int(t) % 60
}

// Valid reports whether t falls within a single day.
func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < minutesPerDay
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Format renders t with a time.Time layout, e.g. "3:04PM".
func (t TimeOfDay) Format(layout string) string {
	if layout == "" {
		layout = TimeLayout
	}
	return time.Date(0, time.January, 1, t.Hour(), t.Minute(), 0, 0, time.UTC).Format(layout)
}
