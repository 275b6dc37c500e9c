package schedule

import (
	"errors"
	"testing"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"9:30", 0, true},
		{"09-30", 0, true},
		{"ab:cd", 0, true},
		{"", 0, true},
	}

	for _, tc := range cases {
		got, err := ParseClock(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidSchedule) {
				t.Errorf("ParseClock(%q) err = %v, want ErrInvalidSchedule", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseClock(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFormatClockRoundTrip(t *testing.T) {
	for _, m := range []int{0, 5, 570, 719, 1439} {
		back, err := ParseClock(FormatClock(m))
		if err != nil {
			t.Fatalf("round trip %d: %v", m, err)
		}
		if back != m {
			t.Fatalf("round trip %d came back as %d", m, back)
		}
	}
}

func TestWeekday(t *testing.T) {
	cases := []struct {
		date string
		want int
	}{
		{"2026-09-06", 0}, // Sunday
		{"2026-09-07", 1},
		{"2026-09-12", 6}, // Saturday
	}
	for _, tc := range cases {
		got, err := Weekday(tc.date)
		if err != nil {
			t.Fatalf("Weekday(%q): %v", tc.date, err)
		}
		if got != tc.want {
			t.Errorf("Weekday(%q) = %d, want %d", tc.date, got, tc.want)
		}
	}

	if _, err := Weekday("07/09/2026"); !errors.Is(err, ErrInvalidSchedule) {
		t.Fatalf("malformed date err = %v, want ErrInvalidSchedule", err)
	}
}
