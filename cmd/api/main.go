package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/meddesk/frontdesk-api/config"
	"github.com/meddesk/frontdesk-api/internal/handler"
	appointmenthandler "github.com/meddesk/frontdesk-api/internal/handler/appointment"
	authhandler "github.com/meddesk/frontdesk-api/internal/handler/auth"
	availabilityhandler "github.com/meddesk/frontdesk-api/internal/handler/availability"
	doctorhandler "github.com/meddesk/frontdesk-api/internal/handler/doctor"
	patienthandler "github.com/meddesk/frontdesk-api/internal/handler/patient"
	"github.com/meddesk/frontdesk-api/internal/middleware"
	"github.com/meddesk/frontdesk-api/internal/repository/kv"
	"github.com/meddesk/frontdesk-api/internal/router"
	appointmentservice "github.com/meddesk/frontdesk-api/internal/service/appointment"
	availabilityservice "github.com/meddesk/frontdesk-api/internal/service/availability"
	identityservice "github.com/meddesk/frontdesk-api/internal/service/identity"
	patientservice "github.com/meddesk/frontdesk-api/internal/service/patient"
	"github.com/meddesk/frontdesk-api/internal/store"
	filestore "github.com/meddesk/frontdesk-api/internal/store/file"
	memorystore "github.com/meddesk/frontdesk-api/internal/store/memory"
	redisstore "github.com/meddesk/frontdesk-api/internal/store/redis"
	"github.com/meddesk/frontdesk-api/pkg/auth"
	"github.com/meddesk/frontdesk-api/pkg/idgen"
	"github.com/meddesk/frontdesk-api/pkg/logger"
	"github.com/meddesk/frontdesk-api/pkg/metrics"
	"github.com/meddesk/frontdesk-api/pkg/validator"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	level, perr := zerolog.ParseLevel(cfg.Logging.Level)
	if perr != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	lg := logger.NewLogger(&logger.Config{
		Level:      level,
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
	})

	if err := validator.RegisterCustom(); err != nil {
		lg.Fatal(err, "failed to register request validations")
	}

	st, err := newStore(cfg.Storage)
	if err != nil {
		lg.Fatal(err, "failed to initialize storage backend")
	}
	if closer, ok := st.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	registry := prometheus.NewRegistry()
	m := metrics.NewMetrics(cfg.Monitoring.Namespace, registry)

	// Repositories
	credentialRepo := kv.NewCredentialRepository(st, m)
	doctorRepo := kv.NewDoctorRepository(st, m)
	patientRepo := kv.NewPatientRepository(st, m)
	availabilityRepo := kv.NewAvailabilityRepository(st, m)
	requestRepo := kv.NewAppointmentRequestRepository(st, m)
	appointmentRepo := kv.NewAppointmentRepository(st, m)

	// First run seeds the admin credential and the doctor roster.
	if err := credentialRepo.Seed(context.Background()); err != nil {
		lg.Fatal(err, "failed to seed default accounts")
	}

	// Services
	ids := idgen.NewTimestamp()
	tokens := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	identitySvc := identityservice.NewService(credentialRepo, doctorRepo, patientRepo, tokens)
	patientSvc := patientservice.NewService(patientRepo, ids)
	availabilitySvc := availabilityservice.NewService(availabilityRepo, doctorRepo, ids)
	appointmentSvc := appointmentservice.NewService(requestRepo, appointmentRepo, doctorRepo, patientRepo, ids, m)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(identitySvc)

	// Handlers
	h := handler.NewHandler(st, registry)
	authHandler := authhandler.NewHandler(identitySvc)
	patientHandler := patienthandler.NewHandler(patientSvc)
	doctorHandler := doctorhandler.NewHandler(doctorRepo)
	availabilityHandler := availabilityhandler.NewHandler(availabilitySvc)
	appointmentHandler := appointmenthandler.NewHandler(appointmentSvc)

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.Security.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.Security.AllowedOrigins
	}

	routerConfig := router.Config{CORS: corsConfig}
	if cfg.RateLimit.Enabled {
		routerConfig.RateLimit = rate.Limit(cfg.RateLimit.RequestsPerSecond)
		routerConfig.RateBurst = cfg.RateLimit.Burst
	}

	r := router.NewRouter(
		authMiddleware,
		authHandler,
		patientHandler,
		doctorHandler,
		availabilityHandler,
		appointmentHandler,
		h,
		routerConfig,
	)
	r.Setup()

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		lg.Info("starting server", "port", cfg.Server.Port, "storage", cfg.Storage.Backend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	lg.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		lg.Fatal(err, "server forced to shutdown")
	}

	lg.Info("server exited properly")
}

func newStore(cfg config.StorageConfig) (store.Store, error) {
	switch cfg.Backend {
	case "memory":
		return memorystore.NewStore(), nil
	case "redis":
		return redisstore.NewStore(cfg.RedisURL)
	case "file", "":
		return filestore.NewStore(cfg.DataDir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
