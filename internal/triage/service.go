package triage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/medisoap/clinic-server/internal/appointment"
)

var ErrInvalidVitals = errors.New("invalid vitals")

type Service struct {
	repo  Repository
	appts appointment.Repository
}

func NewService(repo Repository, appts appointment.Repository) *Service {
	return &Service{repo: repo, appts: appts}
}

// Capture stores a vitals reading for an appointment. Priority is always
// recomputed from the vitals; a value sent by the client is ignored.
func (s *Service) Capture(ctx context.Context, r Record) (*Record, error) {
	appt, err := s.appts.GetByID(ctx, r.AppointmentID)
	if err != nil {
		return nil, err
	}
	if !appt.Status.Active() {
		return nil, fmt.Errorf("%w: appointment is %s", ErrInvalidVitals, appt.Status)
	}
	r.PatientID = appt.PatientID

	if err := validateVitals(r); err != nil {
		return nil, err
	}
	r.Priority = r.ClassifyPriority()

	created, err := s.repo.Create(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("create triage record: %w", err)
	}
	return created, nil
}

func (s *Service) ByAppointment(ctx context.Context, appointmentID uuid.UUID) (*Record, error) {
	return s.repo.GetByAppointment(ctx, appointmentID)
}

func (s *Service) History(ctx context.Context, patientID uuid.UUID, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}
	return s.repo.ListByPatient(ctx, patientID, limit)
}

func validateVitals(r Record) error {
	checks := []struct {
		name string
		bad  bool
	}{
		{"systolic_bp", r.SystolicBP < 0 || r.SystolicBP > 300},
		{"diastolic_bp", r.DiastolicBP < 0 || r.DiastolicBP > 200},
		{"heart_rate", r.HeartRate < 0 || r.HeartRate > 300},
		{"respiratory_rate", r.RespiratoryRate < 0 || r.RespiratoryRate > 80},
		{"temperature_c", r.TemperatureC < 0 || r.TemperatureC > 45},
		{"spo2", r.SpO2 < 0 || r.SpO2 > 100},
		{"weight_kg", r.WeightKg < 0 || r.WeightKg > 500},
		{"height_cm", r.HeightCm < 0 || r.HeightCm > 260},
	}
	for _, c := range checks {
		if c.bad {
			return fmt.Errorf("%w: %s out of range", ErrInvalidVitals, c.name)
		}
	}
	return nil
}
