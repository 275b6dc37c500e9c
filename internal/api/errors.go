package api

import (
	"errors"
	"net/http"

	"github.com/medisoap/clinic-server/internal/appointment"
	"github.com/medisoap/clinic-server/internal/dashboard"
	"github.com/medisoap/clinic-server/internal/document"
	"github.com/medisoap/clinic-server/internal/patient"
	redisclient "github.com/medisoap/clinic-server/internal/redis"
	"github.com/medisoap/clinic-server/internal/schedule"
	"github.com/medisoap/clinic-server/internal/triage"
)

// writeDomainError maps service errors onto HTTP responses. Every handler
// funnels through here so the same domain error always produces the same
// status and code.
func writeDomainError(w http.ResponseWriter, err error) {
	var conflict *appointment.ConflictError

	switch {
	case errors.Is(err, patient.ErrPatientNotFound):
		writeError(w, http.StatusNotFound, "patient_not_found", err.Error())
	case errors.Is(err, appointment.ErrProfessionalNotFound):
		writeError(w, http.StatusNotFound, "professional_not_found", err.Error())
	case errors.Is(err, appointment.ErrAppointmentNotFound):
		writeError(w, http.StatusNotFound, "appointment_not_found", err.Error())
	case errors.Is(err, schedule.ErrScheduleNotFound):
		writeError(w, http.StatusNotFound, "schedule_not_found", err.Error())
	case errors.Is(err, schedule.ErrBlockNotFound):
		writeError(w, http.StatusNotFound, "block_not_found", err.Error())
	case errors.Is(err, triage.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, "triage_not_found", err.Error())
	case errors.Is(err, document.ErrDocumentNotFound):
		writeError(w, http.StatusNotFound, "document_not_found", err.Error())

	case errors.As(err, &conflict):
		writeError(w, http.StatusConflict, "time_unavailable", conflict.Reason)
	case errors.Is(err, appointment.ErrTimeUnavailable):
		writeError(w, http.StatusConflict, "time_unavailable", err.Error())
	case errors.Is(err, appointment.ErrAgendaBusy),
		errors.Is(err, redisclient.ErrLockNotAcquired):
		writeError(w, http.StatusConflict, "agenda_busy", "agenda is being updated, please retry shortly")
	case errors.Is(err, appointment.ErrInvalidStatusTransition):
		writeError(w, http.StatusConflict, "invalid_status_transition", err.Error())
	case errors.Is(err, patient.ErrDuplicateDocument):
		writeError(w, http.StatusConflict, "duplicate_document", err.Error())

	case errors.Is(err, schedule.ErrInvalidSchedule):
		writeError(w, http.StatusUnprocessableEntity, "invalid_schedule", err.Error())
	case errors.Is(err, appointment.ErrInvalidBooking):
		writeError(w, http.StatusUnprocessableEntity, "invalid_booking", err.Error())
	case errors.Is(err, patient.ErrInvalidPatient):
		writeError(w, http.StatusUnprocessableEntity, "invalid_patient", err.Error())
	case errors.Is(err, triage.ErrInvalidVitals):
		writeError(w, http.StatusUnprocessableEntity, "invalid_vitals", err.Error())
	case errors.Is(err, document.ErrInvalidDocument):
		writeError(w, http.StatusUnprocessableEntity, "invalid_document", err.Error())
	case errors.Is(err, dashboard.ErrInvalidQuery):
		writeError(w, http.StatusUnprocessableEntity, "invalid_query", err.Error())

	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
