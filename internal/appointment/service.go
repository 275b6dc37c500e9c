package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medisoap/clinic-server/internal/patient"
	redisclient "github.com/medisoap/clinic-server/internal/redis"
	"github.com/medisoap/clinic-server/internal/schedule"
)

var (
	ErrInvalidBooking          = errors.New("invalid booking request")
	ErrTimeUnavailable         = errors.New("requested time is not available")
	ErrAgendaBusy              = errors.New("agenda is being updated, please retry")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)

// ConflictError carries the user-facing rejection reason produced by the
// availability engine. It unwraps to ErrTimeUnavailable.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("time not available: %s", e.Reason)
}

func (e *ConflictError) Unwrap() error {
	return ErrTimeUnavailable
}

type BookingRequest struct {
	ProfessionalID uuid.UUID
	PatientID      uuid.UUID
	Date           string
	StartTime      string
	EndTime        string // optional; derived from the slot duration when empty
	ContactPhone   string
	Notes          string
}

type Service struct {
	repo      Repository
	schedules schedule.Repository
	patients  patient.Repository
	locker    redisclient.Locker
	log       zerolog.Logger
}

func NewService(repo Repository, schedules schedule.Repository, patients patient.Repository, locker redisclient.Locker, log zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		schedules: schedules,
		patients:  patients,
		locker:    locker,
		log:       log,
	}
}

// AvailableSlots computes the bookable start times for a professional on a
// date. excludeID lets the reschedule form keep offering the appointment's
// own current slot.
func (s *Service) AvailableSlots(ctx context.Context, professionalID uuid.UUID, date string, excludeID uuid.UUID) ([]string, error) {
	if _, err := s.repo.GetProfessionalByID(ctx, professionalID); err != nil {
		return nil, err
	}

	ws, blocks, err := s.agendaSnapshot(ctx, professionalID)
	if err != nil {
		return nil, err
	}
	booked, err := s.bookedOn(ctx, professionalID, date)
	if err != nil {
		return nil, err
	}

	slotMinutes := 0
	if ws != nil {
		slotMinutes = ws.SlotDuration
	}
	return schedule.GenerateSlots(date, ws, blocks, booked, slotMinutes, excludeID)
}

// CheckAvailability validates a single proposed window, e.g. from the
// manual time-entry path of the booking form.
func (s *Service) CheckAvailability(ctx context.Context, professionalID uuid.UUID, date, start, end string, excludeID uuid.UUID) (schedule.Decision, error) {
	if _, err := schedule.Weekday(date); err != nil {
		return schedule.Decision{}, err
	}

	ws, blocks, err := s.agendaSnapshot(ctx, professionalID)
	if err != nil {
		return schedule.Decision{}, err
	}
	booked, err := s.bookedOn(ctx, professionalID, date)
	if err != nil {
		return schedule.Decision{}, err
	}
	return schedule.CheckAvailability(date, start, end, ws, blocks, booked, excludeID)
}

// Book validates the requested window and creates the appointment. The
// engine only advises on a snapshot, so the decisive check reruns inside a
// per-professional-per-day Redis lock before the insert.
func (s *Service) Book(ctx context.Context, req BookingRequest) (*Appointment, error) {
	if _, err := s.patients.GetByID(ctx, req.PatientID); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetProfessionalByID(ctx, req.ProfessionalID); err != nil {
		return nil, err
	}

	if _, err := schedule.Weekday(req.Date); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBooking, err)
	}

	ws, blocks, err := s.agendaSnapshot(ctx, req.ProfessionalID)
	if err != nil {
		return nil, err
	}
	end, err := s.effectiveEnd(req.StartTime, req.EndTime, ws)
	if err != nil {
		return nil, err
	}

	var created *Appointment
	err = s.locker.WithAgendaLock(ctx, req.ProfessionalID, req.Date, func(lockCtx context.Context) error {
		booked, err := s.bookedOn(lockCtx, req.ProfessionalID, req.Date)
		if err != nil {
			return err
		}

		decision, err := schedule.CheckAvailability(req.Date, req.StartTime, end, ws, blocks, booked, uuid.Nil)
		if err != nil {
			return err
		}
		if !decision.Available {
			return &ConflictError{Reason: decision.Reason}
		}

		number, err := s.repo.NextAttendanceNumber(lockCtx, req.Date)
		if err != nil {
			return fmt.Errorf("next attendance number: %w", err)
		}

		created, err = s.repo.Create(lockCtx, Appointment{
			ProfessionalID:   req.ProfessionalID,
			PatientID:        req.PatientID,
			Date:             req.Date,
			StartTime:        req.StartTime,
			EndTime:          end,
			AttendanceNumber: number,
			ContactPhone:     req.ContactPhone,
			Notes:            req.Notes,
		})
		if err != nil {
			return fmt.Errorf("create appointment: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return nil, ErrAgendaBusy
		}
		return nil, err
	}

	s.log.Info().
		Str("appointment_id", created.ID.String()).
		Str("professional_id", req.ProfessionalID.String()).
		Str("date", req.Date).
		Str("start", req.StartTime).
		Int("attendance_number", created.AttendanceNumber).
		Msg("appointment booked")

	return created, nil
}

// Reschedule moves an existing appointment. The appointment is excluded
// from its own conflict check so it may keep its current time.
func (s *Service) Reschedule(ctx context.Context, id uuid.UUID, date, start, end string) (*Appointment, error) {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !appt.Status.Active() {
		return nil, ErrInvalidStatusTransition
	}

	// The engine skips its date parse when no weekly schedule exists, so
	// an unparseable date has to be caught before anything is written.
	if _, err := schedule.Weekday(date); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBooking, err)
	}

	ws, blocks, err := s.agendaSnapshot(ctx, appt.ProfessionalID)
	if err != nil {
		return nil, err
	}
	end, err = s.effectiveEnd(start, end, ws)
	if err != nil {
		return nil, err
	}

	var updated *Appointment
	err = s.locker.WithAgendaLock(ctx, appt.ProfessionalID, date, func(lockCtx context.Context) error {
		booked, err := s.bookedOn(lockCtx, appt.ProfessionalID, date)
		if err != nil {
			return err
		}

		decision, err := schedule.CheckAvailability(date, start, end, ws, blocks, booked, id)
		if err != nil {
			return err
		}
		if !decision.Available {
			return &ConflictError{Reason: decision.Reason}
		}

		updated, err = s.repo.UpdateTimes(lockCtx, id, date, start, end)
		return err
	})
	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return nil, ErrAgendaBusy
		}
		return nil, err
	}

	s.log.Info().
		Str("appointment_id", id.String()).
		Str("date", date).
		Str("start", start).
		Msg("appointment rescheduled")

	return updated, nil
}

func (s *Service) Confirm(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.transition(ctx, id, StatusConfirmed, StatusScheduled)
}

func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.transition(ctx, id, StatusDone, StatusScheduled, StatusConfirmed)
}

func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.transition(ctx, id, StatusCancelled, StatusScheduled, StatusConfirmed)
}

func (s *Service) MarkNoShow(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.transition(ctx, id, StatusNoShow, StatusScheduled, StatusConfirmed)
}

// DayAgenda lists a professional's appointments for one date in start
// order, with patient names attached.
func (s *Service) DayAgenda(ctx context.Context, professionalID uuid.UUID, date string) ([]Appointment, error) {
	if _, err := s.repo.GetProfessionalByID(ctx, professionalID); err != nil {
		return nil, err
	}
	return s.repo.ListByProfessionalDate(ctx, professionalID, date)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Professionals(ctx context.Context) ([]Professional, error) {
	return s.repo.ListProfessionals(ctx)
}

// MarkStaleNoShows flags every still-scheduled appointment on dates before
// today as no-show. Intended to be called by the worker periodically.
func (s *Service) MarkStaleNoShows(ctx context.Context, today string) (int, error) {
	stale, err := s.repo.FindStaleScheduled(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("find stale scheduled appointments: %w", err)
	}

	marked := 0
	for _, appt := range stale {
		_, err := s.repo.UpdateStatus(ctx, appt.ID, StatusScheduled, StatusNoShow)
		if err != nil && !errors.Is(err, ErrAppointmentNotFound) {
			s.log.Error().Err(err).
				Str("appointment_id", appt.ID.String()).
				Msg("failed to mark appointment as no-show")
			continue
		}
		if err == nil {
			marked++
		}
	}
	return marked, nil
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, to Status, allowedFrom ...Status) (*Appointment, error) {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, from := range allowedFrom {
		if appt.Status == from {
			return s.repo.UpdateStatus(ctx, id, from, to)
		}
	}
	return nil, ErrInvalidStatusTransition
}

// agendaSnapshot fetches the weekly schedule and blocks for a
// professional. A missing schedule is not an error: the engine applies its
// own defaults (generator closed, validator open).
func (s *Service) agendaSnapshot(ctx context.Context, professionalID uuid.UUID) (*schedule.WeeklySchedule, []schedule.Block, error) {
	ws, err := s.schedules.GetWeeklySchedule(ctx, professionalID)
	if err != nil {
		if !errors.Is(err, schedule.ErrScheduleNotFound) {
			return nil, nil, fmt.Errorf("load weekly schedule: %w", err)
		}
		ws = nil
	}

	blocks, err := s.schedules.ListBlocks(ctx, professionalID)
	if err != nil {
		return nil, nil, fmt.Errorf("load schedule blocks: %w", err)
	}
	return ws, blocks, nil
}

func (s *Service) bookedOn(ctx context.Context, professionalID uuid.UUID, date string) ([]schedule.Booking, error) {
	appts, err := s.repo.ListByProfessionalDate(ctx, professionalID, date)
	if err != nil {
		return nil, fmt.Errorf("load appointments: %w", err)
	}

	booked := make([]schedule.Booking, 0, len(appts))
	for _, a := range appts {
		booked = append(booked, schedule.Booking{
			ID:          a.ID,
			Date:        a.Date,
			StartTime:   a.StartTime,
			EndTime:     a.EndTime,
			Status:      string(a.Status),
			PatientName: a.PatientName,
		})
	}
	return booked, nil
}

// effectiveEnd fills a missing end time from the schedule's slot duration.
// Without a schedule the visit is stored as a zero-duration point, the
// same shape legacy imports have.
func (s *Service) effectiveEnd(start, end string, ws *schedule.WeeklySchedule) (string, error) {
	if end != "" {
		return end, nil
	}
	startMin, err := schedule.ParseClock(start)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBooking, err)
	}
	if ws == nil || ws.SlotDuration <= 0 {
		return start, nil
	}
	endMin := startMin + ws.SlotDuration
	if endMin >= 24*60 {
		endMin = 24*60 - 1
	}
	return schedule.FormatClock(endMin), nil
}
