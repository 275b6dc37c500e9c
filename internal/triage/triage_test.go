package triage

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/medisoap/clinic-server/internal/appointment"
)

func TestBMI(t *testing.T) {
	r := Record{WeightKg: 80, HeightCm: 180}
	if got := r.BMI(); math.Abs(got-24.69) > 0.01 {
		t.Fatalf("BMI = %.2f, want ~24.69", got)
	}

	if got := (Record{WeightKg: 80}).BMI(); got != 0 {
		t.Fatalf("BMI without height = %v, want 0", got)
	}
}

func TestClassifyPriority(t *testing.T) {
	cases := []struct {
		name string
		rec  Record
		want Priority
	}{
		{"all normal", Record{SystolicBP: 120, DiastolicBP: 80, HeartRate: 72, RespiratoryRate: 14, TemperatureC: 36.5, SpO2: 98}, PriorityRoutine},
		{"hypertensive crisis", Record{SystolicBP: 185, DiastolicBP: 95}, PriorityEmergency},
		{"low saturation", Record{SpO2: 88}, PriorityEmergency},
		{"high fever", Record{TemperatureC: 40.2}, PriorityEmergency},
		{"borderline pressure", Record{SystolicBP: 165, DiastolicBP: 90}, PriorityUrgent},
		{"tachycardia", Record{HeartRate: 115}, PriorityUrgent},
		{"moderate fever", Record{TemperatureC: 38.7}, PriorityUrgent},
		{"nothing measured", Record{}, PriorityRoutine},
	}

	for _, tc := range cases {
		if got := tc.rec.ClassifyPriority(); got != tc.want {
			t.Errorf("%s: priority = %s, want %s", tc.name, got, tc.want)
		}
	}
}

type fakeTriageRepo struct {
	records []Record
}

func (f *fakeTriageRepo) Create(_ context.Context, r Record) (*Record, error) {
	r.ID = uuid.New()
	r.CreatedAt = time.Now()
	f.records = append(f.records, r)
	return &r, nil
}

func (f *fakeTriageRepo) GetByAppointment(_ context.Context, appointmentID uuid.UUID) (*Record, error) {
	for i := len(f.records) - 1; i >= 0; i-- {
		if f.records[i].AppointmentID == appointmentID {
			return &f.records[i], nil
		}
	}
	return nil, ErrRecordNotFound
}

func (f *fakeTriageRepo) ListByPatient(_ context.Context, patientID uuid.UUID, limit int) ([]Record, error) {
	var out []Record
	for _, r := range f.records {
		if r.PatientID == patientID && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeApptRepo struct {
	appt *appointment.Appointment
}

func (f *fakeApptRepo) GetProfessionalByID(_ context.Context, _ uuid.UUID) (*appointment.Professional, error) {
	return nil, appointment.ErrProfessionalNotFound
}

func (f *fakeApptRepo) ListProfessionals(_ context.Context) ([]appointment.Professional, error) {
	return nil, nil
}

func (f *fakeApptRepo) GetByID(_ context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	if f.appt != nil && f.appt.ID == id {
		return f.appt, nil
	}
	return nil, appointment.ErrAppointmentNotFound
}

func (f *fakeApptRepo) ListByProfessionalDate(_ context.Context, _ uuid.UUID, _ string) ([]appointment.Appointment, error) {
	return nil, nil
}

func (f *fakeApptRepo) Create(_ context.Context, a appointment.Appointment) (*appointment.Appointment, error) {
	return &a, nil
}

func (f *fakeApptRepo) UpdateTimes(_ context.Context, _ uuid.UUID, _, _, _ string) (*appointment.Appointment, error) {
	return nil, appointment.ErrAppointmentNotFound
}

func (f *fakeApptRepo) UpdateStatus(_ context.Context, _ uuid.UUID, _, _ appointment.Status) (*appointment.Appointment, error) {
	return nil, appointment.ErrAppointmentNotFound
}

func (f *fakeApptRepo) NextAttendanceNumber(_ context.Context, _ string) (int, error) {
	return 1, nil
}

func (f *fakeApptRepo) FindStaleScheduled(_ context.Context, _ string) ([]appointment.Appointment, error) {
	return nil, nil
}

func TestCapture_DerivesPatientAndPriority(t *testing.T) {
	apptID := uuid.New()
	patID := uuid.New()
	appts := &fakeApptRepo{appt: &appointment.Appointment{
		ID: apptID, PatientID: patID, Status: appointment.StatusConfirmed,
	}}
	svc := NewService(&fakeTriageRepo{}, appts)

	rec, err := svc.Capture(context.Background(), Record{
		AppointmentID: apptID,
		SystolicBP:    190,
		Priority:      PriorityRoutine, // client value must be ignored
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.PatientID != patID {
		t.Fatalf("patient id not derived from appointment")
	}
	if rec.Priority != PriorityEmergency {
		t.Fatalf("priority = %s, want emergency", rec.Priority)
	}
}

func TestCapture_RejectsCancelledAppointment(t *testing.T) {
	apptID := uuid.New()
	appts := &fakeApptRepo{appt: &appointment.Appointment{
		ID: apptID, PatientID: uuid.New(), Status: appointment.StatusCancelled,
	}}
	svc := NewService(&fakeTriageRepo{}, appts)

	_, err := svc.Capture(context.Background(), Record{AppointmentID: apptID})
	if !errors.Is(err, ErrInvalidVitals) {
		t.Fatalf("err = %v, want ErrInvalidVitals", err)
	}
}

func TestCapture_RejectsOutOfRangeVitals(t *testing.T) {
	apptID := uuid.New()
	appts := &fakeApptRepo{appt: &appointment.Appointment{
		ID: apptID, PatientID: uuid.New(), Status: appointment.StatusScheduled,
	}}
	svc := NewService(&fakeTriageRepo{}, appts)

	_, err := svc.Capture(context.Background(), Record{AppointmentID: apptID, SpO2: 140})
	if !errors.Is(err, ErrInvalidVitals) {
		t.Fatalf("err = %v, want ErrInvalidVitals", err)
	}
}
