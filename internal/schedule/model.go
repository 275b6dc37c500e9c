package schedule

import (
	"time"

	"github.com/google/uuid"
)

// Interval is one open window inside a working day, as zero-padded
// 24h wall-clock strings ("09:00", "17:30").
type Interval struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// WeeklySchedule is the recurring availability template of one professional.
// Week maps weekday index (0=Sunday .. 6=Saturday) to the ordered open
// intervals of that day. A missing key or an empty list means the
// professional does not work that day.
type WeeklySchedule struct {
	ID             uuid.UUID
	ProfessionalID uuid.UUID
	SlotDuration   int // minutes
	Week           map[int][]Interval
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Block renders every minute inside its date range and time window
// unavailable, independent of the weekly template. Dates are inclusive
// "YYYY-MM-DD"; StartTime/EndTime are required when AllDay is false.
type Block struct {
	ID             uuid.UUID
	ProfessionalID uuid.UUID
	StartDate      string
	EndDate        string
	AllDay         bool
	StartTime      string
	EndTime        string
	Reason         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Booking is the minimal read view of an appointment the engine needs for
// conflict checks. EndTime may be empty, meaning a zero-duration point.
type Booking struct {
	ID          uuid.UUID
	Date        string
	StartTime   string
	EndTime     string
	Status      string
	PatientName string
}

// Statuses that free up the time they once occupied.
const (
	bookingCancelled = "cancelled"
	bookingNoShow    = "no_show"
)

func (b Booking) occupies() bool {
	return b.Status != bookingCancelled && b.Status != bookingNoShow
}

// covers reports whether the block's inclusive date range contains date.
// Zero-padded ISO dates order lexically, so string comparison is enough.
func (b Block) covers(date string) bool {
	return b.StartDate <= date && date <= b.EndDate
}
