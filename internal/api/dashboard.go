package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/medisoap/clinic-server/internal/dashboard"
)

func dashboardSummaryHandler(svc *dashboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		role := q.Get("role")
		if role == "" {
			role = "reception"
		}

		profID := uuid.Nil
		if raw := q.Get("professional_id"); raw != "" {
			var err error
			profID, err = uuid.Parse(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_professional_id", "professional_id must be a valid UUID")
				return
			}
		}

		date := q.Get("date")
		if date == "" {
			date = time.Now().Format("2006-01-02")
		}

		sum, err := svc.Summary(r.Context(), role, profID, date)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sum)
	}
}
