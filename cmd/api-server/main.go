package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/medisoap/clinic-server/internal/api"
	"github.com/medisoap/clinic-server/internal/appointment"
	"github.com/medisoap/clinic-server/internal/config"
	"github.com/medisoap/clinic-server/internal/dashboard"
	"github.com/medisoap/clinic-server/internal/db"
	"github.com/medisoap/clinic-server/internal/document"
	"github.com/medisoap/clinic-server/internal/logging"
	"github.com/medisoap/clinic-server/internal/patient"
	redisclient "github.com/medisoap/clinic-server/internal/redis"
	"github.com/medisoap/clinic-server/internal/schedule"
	"github.com/medisoap/clinic-server/internal/triage"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logging.Setup(cfg.Env, "api-server")
	log.Info().Str("env", cfg.Env).Str("http_port", cfg.HTTPPort).Msg("api-server starting up")

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection error")
	}
	defer pgPool.Close()
	log.Info().Msg("connected to Postgres")

	rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection error")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Warn().Err(err).Msg("error closing redis")
		}
	}()
	log.Info().Msg("connected to Redis")

	patientRepo := patient.NewPgRepository(pgPool)
	scheduleRepo := schedule.NewPgRepository(pgPool)
	apptRepo := appointment.NewPgRepository(pgPool)
	triageRepo := triage.NewPgRepository(pgPool)
	docRepo := document.NewPgRepository(pgPool)
	dashRepo := dashboard.NewPgRepository(pgPool)

	locker := redisclient.NewRedisAgendaLocker(rdb, cfg.LockTTL)

	handler := api.NewRouter(api.RouterConfig{
		Patients:     patient.NewService(patientRepo),
		Schedules:    schedule.NewService(scheduleRepo),
		Appointments: appointment.NewService(apptRepo, scheduleRepo, patientRepo, locker, log),
		Triage:       triage.NewService(triageRepo, apptRepo),
		Documents:    document.NewService(docRepo, patientRepo, apptRepo),
		Dashboard:    dashboard.NewService(dashRepo, rdb, log),
		PgPool:       pgPool,
		Redis:        rdb,
		Env:          cfg.Env,
		Version:      version,
		Log:          log,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-rootCtx.Done()
	log.Info().Msg("shutting down api-server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown error")
	}
}
