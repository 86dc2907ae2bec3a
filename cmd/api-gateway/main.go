package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/uni-schedule-api/internal/handler"
	"github.com/noah-isme/uni-schedule-api/internal/repository"
	"github.com/noah-isme/uni-schedule-api/internal/service"
	"github.com/noah-isme/uni-schedule-api/migrations"
	"github.com/noah-isme/uni-schedule-api/pkg/cache"
	"github.com/noah-isme/uni-schedule-api/pkg/config"
	"github.com/noah-isme/uni-schedule-api/pkg/database"
	"github.com/noah-isme/uni-schedule-api/pkg/jobs"
	"github.com/noah-isme/uni-schedule-api/pkg/logger"
	"github.com/noah-isme/uni-schedule-api/pkg/migrate"
)

// @title Uni Schedule API
// @version 1.0.0
// @description Lesson conflict detection and workload warnings for university schedules
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Migrations.AutoApply {
		migrator, err := migrate.New(db.DB, migrations.FS, ".", logr)
		if err != nil {
			logr.Fatal("failed to init migrator", zap.Error(err))
		}
		if err := migrator.Up(ctx); err != nil {
			logr.Fatal("failed to apply migrations", zap.Error(err))
		}
	}

	metrics := service.NewMetricsService()

	var (
		cacheRepo  service.CacheRepository
		redisCheck handler.Pinger
	)
	if cfg.Conflicts.CacheEnabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, conflict cache disabled", zap.Error(err))
		} else {
			repo := repository.NewCacheRepository(client, logr)
			defer repo.Close() //nolint:errcheck
			cacheRepo = repo
			redisCheck = repo
		}
	}

	schedules := repository.NewScheduleRepository(db)
	templates := repository.NewTemplateRepository(db)
	lessons := repository.NewLessonRepository(db)
	holidays := repository.NewHolidayRepository(db)
	workloads := repository.NewWorkloadRepository(db)
	references := repository.NewReferenceRepository(db)

	validate := validator.New()
	loader := service.NewSnapshotLoader(schedules, templates, lessons, holidays, workloads, references, metrics, logr, service.SnapshotLoaderConfig{
		CrossSchedule: cfg.Conflicts.CrossSchedule,
	})
	facade := service.NewLessonConflictService(loader, metrics, logr, service.LessonConflictServiceConfig{
		MaxWindowDays: cfg.Conflicts.MaxWindowDays,
	})
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Conflicts.CacheTTL, logr, cacheRepo != nil)

	// The queue handler needs the query service and the query service needs
	// the queue, so the handler resolves it lazily.
	var queries *service.ConflictQueryService
	warmup := jobs.NewQueue("conflict-warmup", func(ctx context.Context, job jobs.Job) error {
		return queries.HandleWarmup(ctx, job)
	}, jobs.QueueConfig{
		Workers:    cfg.Warmup.Workers,
		MaxRetries: cfg.Warmup.Retries,
		Logger:     logr,
	})
	queries = service.NewConflictQueryService(facade, loader, schedules, cacheSvc, warmup, logr, service.ConflictQueryServiceConfig{
		CacheTTL:       cfg.Conflicts.CacheTTL,
		ComputeTimeout: cfg.Conflicts.ComputeTimeout,
	})
	warmup.Start(ctx)
	defer warmup.Stop()

	exports := service.NewExportService(queries, loader, logr, nil, nil)
	holidaySvc := service.NewHolidayService(holidays, validate, logr)
	templateSvc := service.NewTemplateService(templates, loader, holidays, lessons, validate, logr)

	router := newRouter(cfg, logr, routerDeps{
		metrics:  metrics,
		cutover:  service.NewCutoverService(cfg.Cutover, metrics, logr),
		tokens:   service.NewTokenService(cfg.JWT.Secret),
		conflict: handler.NewLessonConflictHandler(queries, exports, validate),
		workload: handler.NewWorkloadWarningHandler(queries, exports, validate),
		holiday:  handler.NewHolidayHandler(holidaySvc),
		template: handler.NewTemplateHandler(templateSvc),
		system: handler.NewMetricsHandler(metrics, map[string]handler.Pinger{
			"postgres": schedules,
			"redis":    redisCheck,
		}),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
