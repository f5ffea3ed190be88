// Package main is the entry point for the EduTrack API server.
//
// EduTrack is a personal academic tracker: attendance, study tasks, topic
// mastery, focus sessions and the insights derived from them (daily action
// plan, performance index, risk assessment, weekly plan, productivity).
//
// The architecture follows Clean Architecture and DDD:
//   - Domain: pure tracking and scoring logic without external dependencies
//   - Application: use case orchestration (Commands/Queries)
//   - Infrastructure: record stores (memory/Redis/PostgreSQL), archive codec
//   - Interface: REST API for the web dashboard
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/edutrack-hub/edutrack/config"
	"github.com/edutrack-hub/edutrack/internal/application/command"
	"github.com/edutrack-hub/edutrack/internal/application/query"
	"github.com/edutrack-hub/edutrack/internal/infrastructure/persistence"
	"github.com/edutrack-hub/edutrack/internal/infrastructure/persistence/kv"
	"github.com/edutrack-hub/edutrack/internal/infrastructure/persistence/memory"
	"github.com/edutrack-hub/edutrack/internal/infrastructure/persistence/postgres"
	"github.com/edutrack-hub/edutrack/internal/infrastructure/persistence/redis"
	"github.com/edutrack-hub/edutrack/internal/infrastructure/persistence/resilient"
	httpserver "github.com/edutrack-hub/edutrack/internal/interface/http"
	"github.com/edutrack-hub/edutrack/internal/interface/http/handlers"
	"github.com/edutrack-hub/edutrack/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN
// ══════════════════════════════════════════════════════════════════════════════

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. CONFIGURATION
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. LOGGING
	// ─────────────────────────────────────────────────────────────────────────
	log := setupLogger(cfg)
	log.Info("starting EduTrack",
		logger.String("env", string(cfg.App.Environment)),
		logger.String("version", cfg.App.Version),
		logger.String("storage", string(cfg.Storage.Backend)),
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. RECORD STORE
	// ─────────────────────────────────────────────────────────────────────────
	store, err := openStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to open record store: %w", err)
	}
	defer func() {
		log.Info("closing record store...")
		_ = store.Close()
	}()

	if err := store.Ping(ctx); err != nil {
		return fmt.Errorf("record store ping failed: %w", err)
	}
	log.Info("record store ready")

	stores := persistence.NewStores(store)

	// ─────────────────────────────────────────────────────────────────────────
	// 4. APPLICATION LAYER (Commands, Queries)
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing application layer...")

	deps := httpserver.Dependencies{
		ActionPlanHandler:        query.NewGetActionPlanHandler(stores.Subjects, stores.Attendance, stores.Tasks, stores.Topics),
		PerformanceHandler:       query.NewGetPerformanceHandler(stores.Subjects, stores.Attendance, stores.Tasks),
		RiskHandler:              query.NewGetRiskHandler(stores.Subjects, stores.Attendance, stores.Tasks),
		ProductivityHandler:      query.NewGetProductivityHandler(stores.Subjects, stores.Attendance, stores.Tasks),
		WeeklyPlanHandler:        query.NewGetWeeklyPlanHandler(stores.Subjects, stores.Tasks, stores.Plans),
		AttendanceSummaryHandler: query.NewGetAttendanceSummaryHandler(stores.Subjects, stores.Attendance),
		ProfileHandler:           query.NewGetProfileHandler(stores.Profile),
		TimetableHandler:         query.NewGetTimetableHandler(stores.Subjects, stores.Timetable),
		ListSubjectsHandler:      query.NewListSubjectsHandler(stores.Subjects),
		ListTasksHandler:         query.NewListTasksHandler(stores.Tasks),
		ListTopicsHandler:        query.NewListTopicsHandler(stores.Topics),

		SubjectCommands:    command.NewSubjectHandler(stores.Subjects),
		TimetableCommands:  command.NewTimetableHandler(stores.Timetable),
		AttendanceCommands: command.NewAttendanceHandler(stores.Attendance),
		TaskCommands:       command.NewTaskHandler(stores.Tasks),
		TopicCommands:      command.NewTopicHandler(stores.Topics),
		FocusCommands:      command.NewFocusHandler(stores.FocusLogs, stores.Profile),
		PlanCommands:       command.NewPlanHandler(stores.Subjects, stores.Tasks, stores.Plans),

		Stores: stores,
		Logger: log,
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. HEALTH CHECKS
	// ─────────────────────────────────────────────────────────────────────────
	checker := handlers.NewCompositeHealthChecker(cfg.App.Version)
	checker.AddCheck("store", handlers.NewStoreCheck(store))
	deps.HealthChecker = checker

	// ─────────────────────────────────────────────────────────────────────────
	// 6. HTTP SERVER
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing HTTP server...")

	httpConfig := httpserver.DefaultConfig()
	httpConfig.Host = cfg.HTTP.Host
	httpConfig.Port = cfg.HTTP.Port
	httpConfig.ReadTimeout = cfg.HTTP.ReadTimeout
	httpConfig.WriteTimeout = cfg.HTTP.WriteTimeout
	httpConfig.IdleTimeout = cfg.HTTP.IdleTimeout
	httpConfig.MaxBodyBytes = cfg.HTTP.MaxBodyBytes
	httpConfig.RateLimitPerMinute = cfg.HTTP.RateLimitPerMinute
	httpConfig.EnableCORS = cfg.HTTP.EnableCORS
	httpConfig.AllowedOrigins = cfg.HTTP.AllowedOrigins
	httpConfig.EnablePlanner = cfg.Features.IsEnabled(config.FeaturePlannerWeekly)
	httpConfig.EnableGamification = cfg.Features.IsEnabled(config.FeatureGamification)
	httpConfig.EnableArchive = cfg.Features.IsEnabled(config.FeatureArchive)
	httpConfig.EnableTimetable = cfg.Features.IsEnabled(config.FeatureTimetable)

	server := httpserver.NewServer(httpConfig, deps)

	// ─────────────────────────────────────────────────────────────────────────
	// 7. RUN & GRACEFUL SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	errCh := server.StartAsync()

	log.Info("EduTrack is running", logger.String("address", server.Address()))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", logger.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			log.Error("server error", logger.Err(err))
			return err
		}
	case <-ctx.Done():
	}

	log.Info("starting graceful shutdown...", logger.Duration("timeout", cfg.App.ShutdownTimeout))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to stop HTTP server gracefully", logger.Err(err))
		return err
	}

	log.Info("shutdown completed successfully")
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// openStore builds the record store selected by STORAGE_BACKEND.
// Networked backends are wrapped with retries and a circuit breaker.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (kv.Store, error) {
	switch cfg.Storage.Backend {
	case config.StorageMemory:
		log.Warn("using in-memory store, records will not survive restarts")
		return memory.NewStore(), nil

	case config.StorageRedis:
		redisCfg := redis.DefaultConfig()
		redisCfg.Host = cfg.Redis.Host
		redisCfg.Port = cfg.Redis.Port
		redisCfg.Password = cfg.Redis.Password
		redisCfg.DB = cfg.Redis.DB
		redisCfg.PoolSize = cfg.Redis.PoolSize
		redisCfg.MinIdleConns = cfg.Redis.MinIdleConns
		redisCfg.DialTimeout = cfg.Redis.DialTimeout
		redisCfg.ReadTimeout = cfg.Redis.ReadTimeout
		redisCfg.WriteTimeout = cfg.Redis.WriteTimeout
		store, err := redis.NewStore(redisCfg)
		if err != nil {
			return nil, err
		}
		return resilient.Wrap(store, log), nil

	case config.StoragePostgres:
		store, err := postgres.NewStoreFromURL(ctx, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		return resilient.Wrap(store, log), nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// setupLogger configures structured logging.
func setupLogger(cfg *config.Config) *logger.Logger {
	opts := logger.DefaultOptions()
	opts.Level = logger.ParseLevel(cfg.Observability.LogLevel)
	if cfg.App.Debug {
		opts.Level = logger.LevelDebug
	}
	return logger.New(opts)
}
