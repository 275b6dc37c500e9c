package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrProfessionalNotFound = errors.New("professional not found")
	ErrAppointmentNotFound  = errors.New("appointment not found")
)

// Repository contains all DB interactions needed by the booking service.
type Repository interface {
	GetProfessionalByID(ctx context.Context, id uuid.UUID) (*Professional, error)
	ListProfessionals(ctx context.Context) ([]Professional, error)

	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	ListByProfessionalDate(ctx context.Context, professionalID uuid.UUID, date string) ([]Appointment, error)

	Create(ctx context.Context, a Appointment) (*Appointment, error)
	UpdateTimes(ctx context.Context, id uuid.UUID, date, startTime, endTime string) (*Appointment, error)
	// UpdateStatus is a compare-and-swap: it only applies when the current
	// status equals from, otherwise it reports ErrAppointmentNotFound.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) (*Appointment, error)

	// NextAttendanceNumber returns max(attendance_number)+1 across every
	// appointment of the given date, starting at 1 on an empty day.
	NextAttendanceNumber(ctx context.Context, date string) (int, error)

	// FindStaleScheduled lists still-scheduled appointments on dates strictly
	// before the given date, for the no-show worker.
	FindStaleScheduled(ctx context.Context, before string) ([]Appointment, error)
}
