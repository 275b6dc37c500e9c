package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/medisoap/clinic-server/internal/appointment"
	"github.com/medisoap/clinic-server/internal/document"
	"github.com/medisoap/clinic-server/internal/patient"
	"github.com/medisoap/clinic-server/internal/schedule"
	"github.com/medisoap/clinic-server/internal/triage"
)

// Patients

type PatientRequest struct {
	Name      string  `json:"name"`
	Document  string  `json:"document"`
	BirthDate string  `json:"birth_date"`
	Sex       string  `json:"sex"`
	Phone     string  `json:"phone"`
	Email     *string `json:"email"`
	Address   string  `json:"address"`
	Allergies string  `json:"allergies"`
	Notes     string  `json:"notes"`
}

type PatientResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Document  string    `json:"document"`
	BirthDate string    `json:"birth_date"`
	Sex       string    `json:"sex"`
	Phone     string    `json:"phone"`
	Email     *string   `json:"email,omitempty"`
	Address   string    `json:"address"`
	Allergies string    `json:"allergies"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toPatientResponse(p *patient.Patient) PatientResponse {
	return PatientResponse{
		ID:        p.ID,
		Name:      p.Name,
		Document:  p.Document,
		BirthDate: p.BirthDate,
		Sex:       p.Sex,
		Phone:     p.Phone,
		Email:     p.Email,
		Address:   p.Address,
		Allergies: p.Allergies,
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// Agenda configuration

type WeeklyScheduleRequest struct {
	SlotDurationMinutes int                         `json:"slot_duration_minutes"`
	Week                map[int][]schedule.Interval `json:"weekly_schedule"`
}

type WeeklyScheduleResponse struct {
	ProfessionalID      uuid.UUID                   `json:"professional_id"`
	SlotDurationMinutes int                         `json:"slot_duration_minutes"`
	Week                map[int][]schedule.Interval `json:"weekly_schedule"`
	UpdatedAt           time.Time                   `json:"updated_at"`
}

func toWeeklyScheduleResponse(ws *schedule.WeeklySchedule) WeeklyScheduleResponse {
	return WeeklyScheduleResponse{
		ProfessionalID:      ws.ProfessionalID,
		SlotDurationMinutes: ws.SlotDuration,
		Week:                ws.Week,
		UpdatedAt:           ws.UpdatedAt,
	}
}

type BlockRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	IsAllDay  bool   `json:"is_all_day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Reason    string `json:"reason"`
}

type BlockResponse struct {
	ID        uuid.UUID `json:"id"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	IsAllDay  bool      `json:"is_all_day"`
	StartTime string    `json:"start_time,omitempty"`
	EndTime   string    `json:"end_time,omitempty"`
	Reason    string    `json:"reason"`
}

func toBlockResponse(b *schedule.Block) BlockResponse {
	return BlockResponse{
		ID:        b.ID,
		StartDate: b.StartDate,
		EndDate:   b.EndDate,
		IsAllDay:  b.AllDay,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Reason:    b.Reason,
	}
}

// Appointments

type SlotsResponse struct {
	Date  string   `json:"date"`
	Slots []string `json:"slots"`
}

type CheckAvailabilityRequest struct {
	ProfessionalID       string `json:"professional_id"`
	Date                 string `json:"date"`
	StartTime            string `json:"start_time"`
	EndTime              string `json:"end_time"`
	ExcludeAppointmentID string `json:"exclude_appointment_id,omitempty"`
}

type BookAppointmentRequest struct {
	ProfessionalID string `json:"professional_id"`
	PatientID      string `json:"patient_id"`
	Date           string `json:"date"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time,omitempty"`
	ContactPhone   string `json:"contact_phone,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

type RescheduleRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time,omitempty"`
}

type AppointmentResponse struct {
	ID               uuid.UUID `json:"id"`
	ProfessionalID   uuid.UUID `json:"professional_id"`
	PatientID        uuid.UUID `json:"patient_id"`
	PatientName      string    `json:"patient_name,omitempty"`
	Date             string    `json:"date"`
	StartTime        string    `json:"start_time"`
	EndTime          string    `json:"end_time,omitempty"`
	Status           string    `json:"status"`
	AttendanceNumber int       `json:"attendance_number"`
	ContactPhone     string    `json:"contact_phone,omitempty"`
	Notes            string    `json:"notes,omitempty"`
}

func toAppointmentResponse(a *appointment.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:               a.ID,
		ProfessionalID:   a.ProfessionalID,
		PatientID:        a.PatientID,
		PatientName:      a.PatientName,
		Date:             a.Date,
		StartTime:        a.StartTime,
		EndTime:          a.EndTime,
		Status:           string(a.Status),
		AttendanceNumber: a.AttendanceNumber,
		ContactPhone:     a.ContactPhone,
		Notes:            a.Notes,
	}
}

type ProfessionalResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Specialty *string   `json:"specialty,omitempty"`
	CRM       string    `json:"crm"`
}

// Triage

type TriageRequest struct {
	AppointmentID   string  `json:"appointment_id"`
	SystolicBP      int     `json:"systolic_bp"`
	DiastolicBP     int     `json:"diastolic_bp"`
	HeartRate       int     `json:"heart_rate"`
	RespiratoryRate int     `json:"respiratory_rate"`
	TemperatureC    float64 `json:"temperature_c"`
	SpO2            int     `json:"spo2"`
	WeightKg        float64 `json:"weight_kg"`
	HeightCm        float64 `json:"height_cm"`
	Complaint       string  `json:"complaint"`
}

type TriageResponse struct {
	ID              uuid.UUID `json:"id"`
	AppointmentID   uuid.UUID `json:"appointment_id"`
	PatientID       uuid.UUID `json:"patient_id"`
	SystolicBP      int       `json:"systolic_bp"`
	DiastolicBP     int       `json:"diastolic_bp"`
	HeartRate       int       `json:"heart_rate"`
	RespiratoryRate int       `json:"respiratory_rate"`
	TemperatureC    float64   `json:"temperature_c"`
	SpO2            int       `json:"spo2"`
	WeightKg        float64   `json:"weight_kg"`
	HeightCm        float64   `json:"height_cm"`
	BMI             float64   `json:"bmi,omitempty"`
	Complaint       string    `json:"complaint"`
	Priority        string    `json:"priority"`
	CreatedAt       time.Time `json:"created_at"`
}

func toTriageResponse(r *triage.Record) TriageResponse {
	return TriageResponse{
		ID:              r.ID,
		AppointmentID:   r.AppointmentID,
		PatientID:       r.PatientID,
		SystolicBP:      r.SystolicBP,
		DiastolicBP:     r.DiastolicBP,
		HeartRate:       r.HeartRate,
		RespiratoryRate: r.RespiratoryRate,
		TemperatureC:    r.TemperatureC,
		SpO2:            r.SpO2,
		WeightKg:        r.WeightKg,
		HeightCm:        r.HeightCm,
		BMI:             r.BMI(),
		Complaint:       r.Complaint,
		Priority:        string(r.Priority),
		CreatedAt:       r.CreatedAt,
	}
}

// Documents

type IssueDocumentRequest struct {
	PatientID       string   `json:"patient_id"`
	ProfessionalID  string   `json:"professional_id"`
	Type            string   `json:"type"`
	Items           []string `json:"items,omitempty"`
	TargetSpecialty string   `json:"target_specialty,omitempty"`
	DaysOff         int      `json:"days_off,omitempty"`
	Observations    string   `json:"observations,omitempty"`
}

type DocumentResponse struct {
	ID             uuid.UUID `json:"id"`
	PatientID      uuid.UUID `json:"patient_id"`
	ProfessionalID uuid.UUID `json:"professional_id"`
	Type           string    `json:"type"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

func toDocumentResponse(d *document.Document) DocumentResponse {
	return DocumentResponse{
		ID:             d.ID,
		PatientID:      d.PatientID,
		ProfessionalID: d.ProfessionalID,
		Type:           string(d.Type),
		Content:        d.Content,
		CreatedAt:      d.CreatedAt,
	}
}
