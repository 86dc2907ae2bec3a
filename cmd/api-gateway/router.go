package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/uni-schedule-api/api/swagger"
	"github.com/noah-isme/uni-schedule-api/internal/handler"
	"github.com/noah-isme/uni-schedule-api/internal/middleware"
	"github.com/noah-isme/uni-schedule-api/internal/models"
	"github.com/noah-isme/uni-schedule-api/internal/service"
	"github.com/noah-isme/uni-schedule-api/pkg/config"
	"github.com/noah-isme/uni-schedule-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/uni-schedule-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/uni-schedule-api/pkg/middleware/requestid"
)

type routerDeps struct {
	metrics  *service.MetricsService
	tokens   *service.TokenService
	conflict *handler.LessonConflictHandler
	workload *handler.WorkloadWarningHandler
	holiday  *handler.HolidayHandler
	template *handler.TemplateHandler
	system   *handler.MetricsHandler
	cutover  *service.CutoverService
}

func newRouter(cfg *config.Config, logr *zap.Logger, deps routerDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.metrics, "/health", "/ready", "/metrics"))

	r.GET("/health", deps.system.Health)
	r.GET("/ready", deps.system.Ready)
	r.GET("/metrics", deps.system.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.WithResponseMeta(), middleware.CutoverStage(deps.cutover))

	// Reads follow the legacy backend and stay public unless auth is on.
	// Cache refresh and the metrics snapshot are operator actions.
	reads := api.Group("")
	ops := api.Group("")
	if cfg.JWT.Enabled {
		reads.Use(middleware.JWT(deps.tokens))
		ops.Use(middleware.JWT(deps.tokens), middleware.RequireRoles(models.RoleAdmin, models.RoleCoordinator))
	} else {
		ops.Use(middleware.OptionalJWT(deps.tokens))
	}

	reads.GET("/lesson/conflicts/summary", deps.conflict.Summary)
	reads.GET("/lesson/conflicts/export", deps.conflict.Export)
	reads.GET("/lesson/groups", deps.conflict.Groups)
	reads.GET("/professor_workload/warnings/combined/:id", deps.workload.Combined)
	reads.GET("/professor_workload/warnings/export/:id", deps.workload.Export)
	reads.GET("/university_holiday", deps.holiday.List)
	reads.GET("/recurring_template/:id/occurrences", deps.template.Occurrences)

	ops.POST("/lesson/conflicts/refresh", middleware.Audit(logr, "conflicts.refresh"), deps.conflict.Refresh)
	ops.GET("/metrics/snapshot", deps.system.Snapshot)
	ops.GET("/internal/cutover/legacy", handler.NewCutoverHandler(deps.cutover).PingLegacy)

	return r
}
