package triage

import (
	"time"

	"github.com/google/uuid"
)

// Priority follows the front-desk banding used on the triage board.
type Priority string

const (
	PriorityEmergency Priority = "emergency"
	PriorityUrgent    Priority = "urgent"
	PriorityRoutine   Priority = "routine"
)

// Record is one vitals capture taken before the consultation.
type Record struct {
	ID              uuid.UUID
	AppointmentID   uuid.UUID
	PatientID       uuid.UUID
	SystolicBP      int     // mmHg
	DiastolicBP     int     // mmHg
	HeartRate       int     // bpm
	RespiratoryRate int     // breaths/min
	TemperatureC    float64 // celsius
	SpO2            int     // percent
	WeightKg        float64
	HeightCm        float64
	Complaint       string
	Priority        Priority
	CreatedAt       time.Time
}

// BMI returns the body mass index, or 0 when height is missing.
func (r Record) BMI() float64 {
	if r.HeightCm <= 0 {
		return 0
	}
	m := r.HeightCm / 100
	return r.WeightKg / (m * m)
}

// ClassifyPriority bands the vitals. Any red-flag reading makes the record
// an emergency; borderline readings make it urgent; everything else is
// routine. Zero values mean "not measured" and never raise the band.
func (r Record) ClassifyPriority() Priority {
	switch {
	case r.SystolicBP >= 180 || (r.SystolicBP > 0 && r.SystolicBP < 80),
		r.DiastolicBP >= 120,
		r.HeartRate >= 140 || (r.HeartRate > 0 && r.HeartRate < 40),
		r.SpO2 > 0 && r.SpO2 < 90,
		r.TemperatureC >= 40,
		r.RespiratoryRate >= 30:
		return PriorityEmergency
	case r.SystolicBP >= 160 || (r.SystolicBP > 0 && r.SystolicBP < 90),
		r.DiastolicBP >= 100,
		r.HeartRate >= 110 || (r.HeartRate > 0 && r.HeartRate < 50),
		r.SpO2 > 0 && r.SpO2 < 94,
		r.TemperatureC >= 38.5,
		r.RespiratoryRate >= 24:
		return PriorityUrgent
	default:
		return PriorityRoutine
	}
}
