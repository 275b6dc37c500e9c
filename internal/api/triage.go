package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/medisoap/clinic-server/internal/triage"
)

func captureTriageHandler(svc *triage.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TriageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		apptID, err := uuid.Parse(req.AppointmentID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "appointment_id must be a valid UUID")
			return
		}

		created, err := svc.Capture(r.Context(), triage.Record{
			AppointmentID:   apptID,
			SystolicBP:      req.SystolicBP,
			DiastolicBP:     req.DiastolicBP,
			HeartRate:       req.HeartRate,
			RespiratoryRate: req.RespiratoryRate,
			TemperatureC:    req.TemperatureC,
			SpO2:            req.SpO2,
			WeightKg:        req.WeightKg,
			HeightCm:        req.HeightCm,
			Complaint:       req.Complaint,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toTriageResponse(created))
	}
}

func getAppointmentTriageHandler(svc *triage.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		apptID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_appointment_id", "id must be a valid UUID")
			return
		}

		rec, err := svc.ByAppointment(r.Context(), apptID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTriageResponse(rec))
	}
}

func triageHistoryHandler(svc *triage.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		patientID, err := uuid.Parse(q.Get("patient_id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "patient_id must be a valid UUID")
			return
		}
		limit, _ := strconv.Atoi(q.Get("limit"))

		records, err := svc.History(r.Context(), patientID, limit)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		resp := make([]TriageResponse, 0, len(records))
		for i := range records {
			resp = append(resp, toTriageResponse(&records[i]))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
