package appointment

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusConfirmed Status = "confirmed"
	StatusDone      Status = "done"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// Active reports whether the appointment still occupies its time.
func (s Status) Active() bool {
	return s != StatusCancelled && s != StatusNoShow
}

type Professional struct {
	ID        uuid.UUID
	Name      string
	Specialty *string
	CRM       string // regional council registration
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Appointment is one booked visit. EndTime may be empty for legacy records
// imported without a duration; the availability engine treats those as
// zero-duration points. AttendanceNumber is the sequential per-day ticket
// handed to the patient at the front desk.
type Appointment struct {
	ID               uuid.UUID
	ProfessionalID   uuid.UUID
	PatientID        uuid.UUID
	Date             string // YYYY-MM-DD
	StartTime        string // HH:MM
	EndTime          string // HH:MM, may be empty
	Status           Status
	AttendanceNumber int
	ContactPhone     string
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// PatientName is denormalized onto reads for agenda rendering and
	// conflict messages; it is never written back.
	PatientName string
}
