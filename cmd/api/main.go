package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/healthtrack/records-api/internal/config"
	departmentHandler "github.com/healthtrack/records-api/internal/handler/department"
	"github.com/healthtrack/records-api/internal/handler/health"
	hospitalizationHandler "github.com/healthtrack/records-api/internal/handler/hospitalization"
	patientHandler "github.com/healthtrack/records-api/internal/handler/patient"
	reportHandler "github.com/healthtrack/records-api/internal/handler/report"
	staffHandler "github.com/healthtrack/records-api/internal/handler/staff"
	wardHandler "github.com/healthtrack/records-api/internal/handler/ward"
	"github.com/healthtrack/records-api/internal/repository/postgres"
	"github.com/healthtrack/records-api/internal/router"
	departmentService "github.com/healthtrack/records-api/internal/service/department"
	hospitalizationService "github.com/healthtrack/records-api/internal/service/hospitalization"
	patientService "github.com/healthtrack/records-api/internal/service/patient"
	reportService "github.com/healthtrack/records-api/internal/service/report"
	staffService "github.com/healthtrack/records-api/internal/service/staff"
	wardService "github.com/healthtrack/records-api/internal/service/ward"
	"github.com/healthtrack/records-api/pkg/logger"
	"github.com/healthtrack/records-api/pkg/metrics"
	"github.com/healthtrack/records-api/pkg/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	l := logger.NewLogger(&logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Pretty: cfg.Log.Pretty,
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		l.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	// Redis only backs the report cache; a missing broker degrades to
	// uncached reports rather than refusing to start.
	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			l.Fatal(err, "invalid redis url")
		}
		redisClient = redis.NewClient(opts)
	}

	m := metrics.NewMetrics("healthtrack")
	if err := validator.Register(); err != nil {
		l.Fatal(err, "failed to register validators")
	}

	hospitalizationRepo := postgres.NewHospitalizationRepository(db, m)
	patientRepo := postgres.NewPatientRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	nurseRepo := postgres.NewNurseRepository(db)
	departmentRepo := postgres.NewDepartmentRepository(db)
	wardRepo := postgres.NewWardRepository(db)
	reportRepo := postgres.NewReportRepository(db)

	refs := hospitalizationService.NewReferenceData(
		patientRepo, doctorRepo, wardRepo,
		cfg.Cache.TTL, cfg.Cache.CleanupInterval,
	)
	occupancy := hospitalizationService.NewOccupancyChecker(hospitalizationRepo)

	hospitalizationSvc := hospitalizationService.NewService(hospitalizationRepo, refs, occupancy, m, l)
	patientSvc := patientService.NewService(patientRepo)
	staffSvc := staffService.NewService(doctorRepo, nurseRepo, departmentRepo)
	departmentSvc := departmentService.NewService(departmentRepo, doctorRepo)
	wardSvc := wardService.NewService(wardRepo, departmentRepo, nurseRepo)
	reportSvc := reportService.NewService(reportRepo, redisClient, cfg.Redis.ReportTTL, l)

	r := router.NewRouter(
		cfg, l, m,
		health.NewHandler(db, redisClient),
		hospitalizationHandler.NewHandler(hospitalizationSvc),
		patientHandler.NewHandler(patientSvc),
		staffHandler.NewHandler(staffSvc),
		departmentHandler.NewHandler(departmentSvc),
		wardHandler.NewHandler(wardSvc),
		reportHandler.NewHandler(reportSvc),
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		l.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal(err, "failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	l.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		l.Fatal(err, "server forced to shutdown")
	}

	if redisClient != nil {
		_ = redisClient.Close()
	}
	l.Info("server exited")
}
