package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/medisoap/clinic-server/internal/appointment"
	"github.com/medisoap/clinic-server/internal/dashboard"
	"github.com/medisoap/clinic-server/internal/document"
	"github.com/medisoap/clinic-server/internal/patient"
	"github.com/medisoap/clinic-server/internal/schedule"
	"github.com/medisoap/clinic-server/internal/triage"
)

type RouterConfig struct {
	Patients     *patient.Service
	Schedules    *schedule.Service
	Appointments *appointment.Service
	Triage       *triage.Service
	Documents    *document.Service
	Dashboard    *dashboard.Service
	PgPool       *pgxpool.Pool
	Redis        *redis.Client
	Env          string
	Version      string
	Log          zerolog.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Log))

	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	r.Route("/patients", func(r chi.Router) {
		r.Post("/", createPatientHandler(cfg.Patients))
		r.Get("/", searchPatientsHandler(cfg.Patients))
		r.Get("/{id}", getPatientHandler(cfg.Patients))
		r.Put("/{id}", updatePatientHandler(cfg.Patients))
		r.Delete("/{id}", deletePatientHandler(cfg.Patients))
	})

	r.Route("/professionals", func(r chi.Router) {
		r.Get("/", listProfessionalsHandler(cfg.Appointments))
		r.Get("/{id}/weekly-schedule", getWeeklyScheduleHandler(cfg.Schedules))
		r.Put("/{id}/weekly-schedule", putWeeklyScheduleHandler(cfg.Schedules))
		r.Get("/{id}/blocks", listBlocksHandler(cfg.Schedules))
		r.Post("/{id}/blocks", createBlockHandler(cfg.Schedules))
		r.Delete("/{id}/blocks/{blockID}", deleteBlockHandler(cfg.Schedules))
		r.Get("/{id}/slots", listSlotsHandler(cfg.Appointments))
		r.Get("/{id}/agenda", dayAgendaHandler(cfg.Appointments))
	})

	r.Route("/appointments", func(r chi.Router) {
		r.Post("/check-availability", checkAvailabilityHandler(cfg.Appointments))
		r.Post("/", bookAppointmentHandler(cfg.Appointments))
		r.Get("/", listAppointmentsHandler(cfg.Appointments))
		r.Get("/{id}", getAppointmentHandler(cfg.Appointments))
		r.Put("/{id}", rescheduleAppointmentHandler(cfg.Appointments))
		r.Get("/{id}/triage", getAppointmentTriageHandler(cfg.Triage))

		r.Post("/{id}/confirm", transitionHandler(func(req *http.Request, id uuid.UUID) (*appointment.Appointment, error) {
			return cfg.Appointments.Confirm(req.Context(), id)
		}))
		r.Post("/{id}/complete", transitionHandler(func(req *http.Request, id uuid.UUID) (*appointment.Appointment, error) {
			return cfg.Appointments.Complete(req.Context(), id)
		}))
		r.Post("/{id}/cancel", transitionHandler(func(req *http.Request, id uuid.UUID) (*appointment.Appointment, error) {
			return cfg.Appointments.Cancel(req.Context(), id)
		}))
		r.Post("/{id}/no-show", transitionHandler(func(req *http.Request, id uuid.UUID) (*appointment.Appointment, error) {
			return cfg.Appointments.MarkNoShow(req.Context(), id)
		}))
	})

	r.Route("/triage", func(r chi.Router) {
		r.Post("/", captureTriageHandler(cfg.Triage))
		r.Get("/", triageHistoryHandler(cfg.Triage))
	})

	r.Route("/documents", func(r chi.Router) {
		r.Post("/", issueDocumentHandler(cfg.Documents))
		r.Get("/", listDocumentsHandler(cfg.Documents))
		r.Get("/{id}", getDocumentHandler(cfg.Documents))
	})

	r.Get("/dashboard/summary", dashboardSummaryHandler(cfg.Dashboard))

	return r
}
