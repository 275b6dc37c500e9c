package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medisoap/clinic-server/internal/appointment"
	"github.com/medisoap/clinic-server/internal/dashboard"
	"github.com/medisoap/clinic-server/internal/document"
	"github.com/medisoap/clinic-server/internal/patient"
	"github.com/medisoap/clinic-server/internal/schedule"
	"github.com/medisoap/clinic-server/internal/triage"
)

const monday = "2026-09-07"

// Fakes

type fakePatientRepo struct {
	patients map[uuid.UUID]patient.Patient
}

func (f *fakePatientRepo) GetByID(_ context.Context, id uuid.UUID) (*patient.Patient, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, patient.ErrPatientNotFound
	}
	return &p, nil
}

func (f *fakePatientRepo) GetByDocument(_ context.Context, document string) (*patient.Patient, error) {
	for _, p := range f.patients {
		if p.Document == document {
			return &p, nil
		}
	}
	return nil, patient.ErrPatientNotFound
}

func (f *fakePatientRepo) Search(_ context.Context, _ string, _, _ int) ([]patient.Patient, error) {
	var out []patient.Patient
	for _, p := range f.patients {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePatientRepo) Create(_ context.Context, p patient.Patient) (*patient.Patient, error) {
	for _, existing := range f.patients {
		if existing.Document == p.Document {
			return nil, patient.ErrDuplicateDocument
		}
	}
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	f.patients[p.ID] = p
	return &p, nil
}

func (f *fakePatientRepo) Update(_ context.Context, p patient.Patient) (*patient.Patient, error) {
	if _, ok := f.patients[p.ID]; !ok {
		return nil, patient.ErrPatientNotFound
	}
	p.UpdatedAt = time.Now()
	f.patients[p.ID] = p
	return &p, nil
}

func (f *fakePatientRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.patients[id]; !ok {
		return patient.ErrPatientNotFound
	}
	delete(f.patients, id)
	return nil
}

type fakeScheduleRepo struct {
	schedules map[uuid.UUID]schedule.WeeklySchedule
	blocks    map[uuid.UUID][]schedule.Block
}

func (f *fakeScheduleRepo) GetWeeklySchedule(_ context.Context, professionalID uuid.UUID) (*schedule.WeeklySchedule, error) {
	ws, ok := f.schedules[professionalID]
	if !ok {
		return nil, schedule.ErrScheduleNotFound
	}
	return &ws, nil
}

func (f *fakeScheduleRepo) UpsertWeeklySchedule(_ context.Context, ws *schedule.WeeklySchedule) (*schedule.WeeklySchedule, error) {
	ws.UpdatedAt = time.Now()
	f.schedules[ws.ProfessionalID] = *ws
	return ws, nil
}

func (f *fakeScheduleRepo) ListBlocks(_ context.Context, professionalID uuid.UUID) ([]schedule.Block, error) {
	return f.blocks[professionalID], nil
}

func (f *fakeScheduleRepo) CreateBlock(_ context.Context, b schedule.Block) (*schedule.Block, error) {
	b.ID = uuid.New()
	f.blocks[b.ProfessionalID] = append(f.blocks[b.ProfessionalID], b)
	return &b, nil
}

func (f *fakeScheduleRepo) DeleteBlock(_ context.Context, professionalID, blockID uuid.UUID) error {
	blocks := f.blocks[professionalID]
	for i, b := range blocks {
		if b.ID == blockID {
			f.blocks[professionalID] = append(blocks[:i], blocks[i+1:]...)
			return nil
		}
	}
	return schedule.ErrBlockNotFound
}

type fakeApptRepo struct {
	professionals map[uuid.UUID]appointment.Professional
	appts         map[uuid.UUID]appointment.Appointment
}

func (f *fakeApptRepo) GetProfessionalByID(_ context.Context, id uuid.UUID) (*appointment.Professional, error) {
	p, ok := f.professionals[id]
	if !ok {
		return nil, appointment.ErrProfessionalNotFound
	}
	return &p, nil
}

func (f *fakeApptRepo) ListProfessionals(_ context.Context) ([]appointment.Professional, error) {
	var out []appointment.Professional
	for _, p := range f.professionals {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeApptRepo) GetByID(_ context.Context, id uuid.UUID) (*appointment.Appointment, error) {
	a, ok := f.appts[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	return &a, nil
}

func (f *fakeApptRepo) ListByProfessionalDate(_ context.Context, professionalID uuid.UUID, date string) ([]appointment.Appointment, error) {
	var out []appointment.Appointment
	for _, a := range f.appts {
		if a.ProfessionalID == professionalID && a.Date == date {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApptRepo) Create(_ context.Context, a appointment.Appointment) (*appointment.Appointment, error) {
	a.ID = uuid.New()
	a.Status = appointment.StatusScheduled
	f.appts[a.ID] = a
	return &a, nil
}

func (f *fakeApptRepo) UpdateTimes(_ context.Context, id uuid.UUID, date, startTime, endTime string) (*appointment.Appointment, error) {
	a, ok := f.appts[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	a.Date, a.StartTime, a.EndTime = date, startTime, endTime
	f.appts[id] = a
	return &a, nil
}

func (f *fakeApptRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to appointment.Status) (*appointment.Appointment, error) {
	a, ok := f.appts[id]
	if !ok || a.Status != from {
		return nil, appointment.ErrAppointmentNotFound
	}
	a.Status = to
	f.appts[id] = a
	return &a, nil
}

func (f *fakeApptRepo) NextAttendanceNumber(_ context.Context, date string) (int, error) {
	max := 0
	for _, a := range f.appts {
		if a.Date == date && a.AttendanceNumber > max {
			max = a.AttendanceNumber
		}
	}
	return max + 1, nil
}

func (f *fakeApptRepo) FindStaleScheduled(_ context.Context, before string) ([]appointment.Appointment, error) {
	var out []appointment.Appointment
	for _, a := range f.appts {
		if a.Date < before && a.Status == appointment.StatusScheduled {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeTriageRepo struct {
	records map[uuid.UUID]triage.Record // keyed by appointment ID
}

func (f *fakeTriageRepo) Create(_ context.Context, r triage.Record) (*triage.Record, error) {
	r.ID = uuid.New()
	r.CreatedAt = time.Now()
	f.records[r.AppointmentID] = r
	return &r, nil
}

func (f *fakeTriageRepo) GetByAppointment(_ context.Context, appointmentID uuid.UUID) (*triage.Record, error) {
	r, ok := f.records[appointmentID]
	if !ok {
		return nil, triage.ErrRecordNotFound
	}
	return &r, nil
}

func (f *fakeTriageRepo) ListByPatient(_ context.Context, patientID uuid.UUID, _ int) ([]triage.Record, error) {
	var out []triage.Record
	for _, r := range f.records {
		if r.PatientID == patientID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeDocRepo struct {
	docs map[uuid.UUID]document.Document
}

func (f *fakeDocRepo) Create(_ context.Context, d document.Document) (*document.Document, error) {
	d.ID = uuid.New()
	d.CreatedAt = time.Now()
	f.docs[d.ID] = d
	return &d, nil
}

func (f *fakeDocRepo) GetByID(_ context.Context, id uuid.UUID) (*document.Document, error) {
	d, ok := f.docs[id]
	if !ok {
		return nil, document.ErrDocumentNotFound
	}
	return &d, nil
}

func (f *fakeDocRepo) ListByPatient(_ context.Context, patientID uuid.UUID, _, _ int) ([]document.Document, error) {
	var out []document.Document
	for _, d := range f.docs {
		if d.PatientID == patientID {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeDashRepo struct{}

func (fakeDashRepo) CountByStatus(_ context.Context, _ string, _ *uuid.UUID) (map[string]int, error) {
	return map[string]int{"scheduled": 3, "done": 2}, nil
}

func (fakeDashRepo) CountTriagePending(_ context.Context, _ string, _ *uuid.UUID) (int, error) {
	return 1, nil
}

type inlineLocker struct{}

func (inlineLocker) WithAgendaLock(ctx context.Context, _ uuid.UUID, _ string, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Fixture

type fixture struct {
	handler        http.Handler
	professionalID uuid.UUID
	patientID      uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	patients := &fakePatientRepo{patients: make(map[uuid.UUID]patient.Patient)}
	schedules := &fakeScheduleRepo{
		schedules: make(map[uuid.UUID]schedule.WeeklySchedule),
		blocks:    make(map[uuid.UUID][]schedule.Block),
	}
	appts := &fakeApptRepo{
		professionals: make(map[uuid.UUID]appointment.Professional),
		appts:         make(map[uuid.UUID]appointment.Appointment),
	}
	triageRecords := &fakeTriageRepo{records: make(map[uuid.UUID]triage.Record)}
	docs := &fakeDocRepo{docs: make(map[uuid.UUID]document.Document)}

	profID := uuid.New()
	specialty := "Cardiologia"
	appts.professionals[profID] = appointment.Professional{
		ID:        profID,
		Name:      "Dra. Carla Lima",
		Specialty: &specialty,
		CRM:       "CRM-SP 123456",
	}
	schedules.schedules[profID] = schedule.WeeklySchedule{
		ID:             uuid.New(),
		ProfessionalID: profID,
		SlotDuration:   30,
		Week: map[int][]schedule.Interval{
			1: {{Start: "09:00", End: "12:00"}},
		},
	}

	patID := uuid.New()
	patients.patients[patID] = patient.Patient{
		ID:       patID,
		Name:     "João da Silva",
		Document: "52998224725",
	}

	log := zerolog.Nop()
	apptSvc := appointment.NewService(appts, schedules, patients, inlineLocker{}, log)

	handler := NewRouter(RouterConfig{
		Patients:     patient.NewService(patients),
		Schedules:    schedule.NewService(schedules),
		Appointments: apptSvc,
		Triage:       triage.NewService(triageRecords, appts),
		Documents:    document.NewService(docs, patients, appts),
		Dashboard:    dashboard.NewService(fakeDashRepo{}, nil, log),
		Env:          "test",
		Version:      "test",
		Log:          log,
	})

	return &fixture{
		handler:        handler,
		professionalID: profID,
		patientID:      patID,
	}
}

func (f *fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return v
}

// Tests

func TestCreatePatientNormalizesDocument(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/patients", PatientRequest{
		Name:     "Maria Souza",
		Document: "398.276.884-05",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	resp := decode[PatientResponse](t, rec)
	if resp.Document != "39827688405" {
		t.Errorf("document = %q, want digits only", resp.Document)
	}
}

func TestCreatePatientDuplicateDocumentConflicts(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/patients", PatientRequest{
		Name:     "Outro Paciente",
		Document: "529.982.247-25",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409", rec.Code)
	}
	resp := decode[ErrorResponse](t, rec)
	if resp.Error != "duplicate_document" {
		t.Errorf("error code = %q", resp.Error)
	}
}

func TestListSlots(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet,
		fmt.Sprintf("/professionals/%s/slots?date=%s", f.professionalID, monday), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	resp := decode[SlotsResponse](t, rec)
	want := []string{"09:00", "09:30", "10:00", "10:30", "11:00", "11:30"}
	if len(resp.Slots) != len(want) {
		t.Fatalf("slots = %v, want %v", resp.Slots, want)
	}
	for i, s := range want {
		if resp.Slots[i] != s {
			t.Errorf("slot[%d] = %q, want %q", i, resp.Slots[i], s)
		}
	}
}

func TestListSlotsMissingDate(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet,
		fmt.Sprintf("/professionals/%s/slots", f.professionalID), nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestBookAppointment(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/appointments", BookAppointmentRequest{
		ProfessionalID: f.professionalID.String(),
		PatientID:      f.patientID.String(),
		Date:           monday,
		StartTime:      "09:00",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	resp := decode[AppointmentResponse](t, rec)
	if resp.Status != "scheduled" {
		t.Errorf("status = %q", resp.Status)
	}
	if resp.EndTime != "09:30" {
		t.Errorf("end_time = %q, want derived 09:30", resp.EndTime)
	}
	if resp.AttendanceNumber != 1 {
		t.Errorf("attendance_number = %d, want 1", resp.AttendanceNumber)
	}
}

func TestBookAppointmentConflict(t *testing.T) {
	f := newFixture(t)

	req := BookAppointmentRequest{
		ProfessionalID: f.professionalID.String(),
		PatientID:      f.patientID.String(),
		Date:           monday,
		StartTime:      "09:00",
	}
	if rec := f.do(t, http.MethodPost, "/appointments", req); rec.Code != http.StatusCreated {
		t.Fatalf("first booking: status = %d", rec.Code)
	}

	rec := f.do(t, http.MethodPost, "/appointments", req)
	if rec.Code != http.StatusConflict {
		t.Fatalf("second booking: status = %d, want 409", rec.Code)
	}
	resp := decode[ErrorResponse](t, rec)
	if resp.Error != "time_unavailable" {
		t.Errorf("error code = %q", resp.Error)
	}
	if resp.Details == "" {
		t.Error("expected a conflict reason in details")
	}
}

func TestBookAppointmentBadUUID(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/appointments", BookAppointmentRequest{
		ProfessionalID: "not-a-uuid",
		PatientID:      f.patientID.String(),
		Date:           monday,
		StartTime:      "09:00",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCheckAvailabilityOutsideHours(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/appointments/check-availability", CheckAvailabilityRequest{
		ProfessionalID: f.professionalID.String(),
		Date:           monday,
		StartTime:      "14:00",
		EndTime:        "14:30",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	decision := decode[schedule.Decision](t, rec)
	if decision.Available {
		t.Error("expected unavailable outside working hours")
	}
	if decision.Reason != "Horário fora do expediente do profissional" {
		t.Errorf("reason = %q", decision.Reason)
	}
}

func TestPutWeeklyScheduleRejectsBadInterval(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPut,
		fmt.Sprintf("/professionals/%s/weekly-schedule", f.professionalID),
		WeeklyScheduleRequest{
			SlotDurationMinutes: 30,
			Week: map[int][]schedule.Interval{
				1: {{Start: "9h00", End: "12:00"}},
			},
		})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestConfirmThenCancel(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/appointments", BookAppointmentRequest{
		ProfessionalID: f.professionalID.String(),
		PatientID:      f.patientID.String(),
		Date:           monday,
		StartTime:      "10:00",
	})
	booked := decode[AppointmentResponse](t, rec)

	rec = f.do(t, http.MethodPost, fmt.Sprintf("/appointments/%s/confirm", booked.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("confirm: status = %d, body %s", rec.Code, rec.Body.String())
	}
	if resp := decode[AppointmentResponse](t, rec); resp.Status != "confirmed" {
		t.Errorf("status = %q after confirm", resp.Status)
	}

	rec = f.do(t, http.MethodPost, fmt.Sprintf("/appointments/%s/cancel", booked.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("cancel: status = %d", rec.Code)
	}

	// done after cancel is not a legal move
	rec = f.do(t, http.MethodPost, fmt.Sprintf("/appointments/%s/complete", booked.ID), nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("complete after cancel: status = %d, want 409", rec.Code)
	}
}

func TestTriageCaptureComputesPriority(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/appointments", BookAppointmentRequest{
		ProfessionalID: f.professionalID.String(),
		PatientID:      f.patientID.String(),
		Date:           monday,
		StartTime:      "09:00",
	})
	booked := decode[AppointmentResponse](t, rec)

	rec = f.do(t, http.MethodPost, "/triage", TriageRequest{
		AppointmentID: booked.ID.String(),
		SystolicBP:    185,
		DiastolicBP:   110,
		HeartRate:     92,
		WeightKg:      80,
		HeightCm:      180,
		Complaint:     "dor no peito",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	resp := decode[TriageResponse](t, rec)
	if resp.Priority != "emergency" {
		t.Errorf("priority = %q, want emergency", resp.Priority)
	}
	if resp.BMI < 24.6 || resp.BMI > 24.8 {
		t.Errorf("bmi = %.2f", resp.BMI)
	}

	rec = f.do(t, http.MethodGet, fmt.Sprintf("/appointments/%s/triage", booked.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get triage: status = %d", rec.Code)
	}
}

func TestIssueDocumentValidation(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/documents", IssueDocumentRequest{
		PatientID:      f.patientID.String(),
		ProfessionalID: f.professionalID.String(),
		Type:           "prescription",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422 for prescription without items", rec.Code)
	}

	rec = f.do(t, http.MethodPost, "/documents", IssueDocumentRequest{
		PatientID:      f.patientID.String(),
		ProfessionalID: f.professionalID.String(),
		Type:           "prescription",
		Items:          []string{"Dipirona 500mg, 1 comprimido a cada 8h"},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decode[DocumentResponse](t, rec)
	if resp.Content == "" {
		t.Error("expected rendered content")
	}
}

func TestDashboardSummary(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/dashboard/summary?date="+monday, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	sum := decode[dashboard.Summary](t, rec)
	if sum.Total != 5 {
		t.Errorf("total = %d, want 5", sum.Total)
	}
	if sum.Scope != "clinic" {
		t.Errorf("scope = %q", sum.Scope)
	}
}

func TestDashboardProfessionalRoleNeedsID(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/dashboard/summary?role=professional&date="+monday, nil)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}

func TestUnknownProfessionalIs404(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet,
		fmt.Sprintf("/professionals/%s/slots?date=%s", uuid.New(), monday), nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
