package schedule

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ParseClock converts a zero-padded "HH:MM" string to minutes since
// midnight. All interval math in this package runs on these integers;
// strings only exist at the boundary.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: bad clock value %q", ErrInvalidSchedule, s)
	}
	h, m := 0, 0
	for _, c := range []byte(s[:2]) {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: bad clock value %q", ErrInvalidSchedule, s)
		}
		h = h*10 + int(c-'0')
	}
	for _, c := range []byte(s[3:]) {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: bad clock value %q", ErrInvalidSchedule, s)
		}
		m = m*10 + int(c-'0')
	}
	if h > 23 || m > 59 {
		return 0, fmt.Errorf("%w: bad clock value %q", ErrInvalidSchedule, s)
	}
	return h*60 + m, nil
}

// FormatClock is the inverse of ParseClock.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Weekday returns the weekday index (0=Sunday .. 6=Saturday) of a
// "YYYY-MM-DD" date.
func Weekday(date string) (int, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return 0, fmt.Errorf("%w: bad date %q", ErrInvalidSchedule, date)
	}
	return int(t.Weekday()), nil
}
