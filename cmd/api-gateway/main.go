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
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/rasd-app/rasd-api/api/swagger"
	"github.com/rasd-app/rasd-api/internal/handler"
	"github.com/rasd-app/rasd-api/internal/middleware"
	"github.com/rasd-app/rasd-api/internal/models"
	"github.com/rasd-app/rasd-api/internal/repository"
	"github.com/rasd-app/rasd-api/internal/service"
	"github.com/rasd-app/rasd-api/pkg/cache"
	"github.com/rasd-app/rasd-api/pkg/config"
	"github.com/rasd-app/rasd-api/pkg/database"
	"github.com/rasd-app/rasd-api/pkg/logger"
	corsmiddleware "github.com/rasd-app/rasd-api/pkg/middleware/cors"
	reqidmiddleware "github.com/rasd-app/rasd-api/pkg/middleware/requestid"
)

// @title Rasd API
// @version 1.0.0
// @description Timetable, substitution and session-entry tracking service
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("database connection failed", "error", err)
	}
	defer db.Close()

	metricsSvc := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	cacheEnabled := cfg.Cache.Enabled
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		cacheEnabled = false
	} else {
		repo := repository.NewCacheRepository(redisClient, logr)
		defer repo.Close()
		cacheRepo = repo
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.DefaultTTL, logr, cacheEnabled)

	scheduleRepo := repository.NewScheduleRepository(db)
	substitutionRepo := repository.NewSubstitutionRepository(db)
	sessionEntryRepo := repository.NewSessionEntryRepository(db)
	classRepo := repository.NewClassRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	validate := validator.New()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dispatcher := service.NewReminderDispatcher(messageRepo, cfg.Reminders, logr)
	dispatcher.Start(ctx)
	defer dispatcher.Stop()

	authSvc := service.NewAuthService(cfg.JWT)
	scheduleSvc := service.NewScheduleService(scheduleRepo, substitutionRepo, cacheSvc, validate, logr)
	substitutionSvc := service.NewSubstitutionService(substitutionRepo, scheduleRepo, cacheSvc, validate, logr)
	sessionEntrySvc := service.NewSessionEntryService(sessionEntryRepo, scheduleRepo, substitutionRepo, auditRepo, cacheSvc, logr)
	readinessSvc := service.NewReadinessService(service.ReadinessServiceParams{
		Schedule:   scheduleRepo,
		Subs:       substitutionRepo,
		Entries:    sessionEntryRepo,
		Classes:    classRepo,
		Dispatcher: dispatcher,
		Cache:      cacheSvc,
		Logger:     logr,
		Config:     service.ReadinessServiceConfig{CacheTTL: cfg.Dashboard.CacheTTL},
	})
	reportSvc := service.NewReportService(readinessSvc, logr)

	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)
	substitutionHandler := handler.NewSubstitutionHandler(substitutionSvc)
	sessionEntryHandler := handler.NewSessionEntryHandler(sessionEntrySvc)
	dashboardHandler := handler.NewDashboardHandler(readinessSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	classHandler := handler.NewClassHandler(classRepo)
	auditHandler := handler.NewAuditHandler(auditRepo)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, db)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(authSvc))
	{
		api.GET("/schedules", scheduleHandler.List)
		api.PUT("/schedules", middleware.RequireRoles(models.RoleAdmin), scheduleHandler.Replace)
		api.GET("/schedules/effective", scheduleHandler.Effective)
		api.GET("/teachers/:name/schedules", scheduleHandler.TeacherDay)

		api.POST("/substitutions", middleware.RequireRoles(models.RoleAdmin, models.RoleCounselor), substitutionHandler.Assign)
		api.GET("/substitutions", substitutionHandler.List)

		api.POST("/sessions/:id/entries", sessionEntryHandler.Enter)
		api.GET("/session-entries", sessionEntryHandler.List)

		api.GET("/dashboard/readiness", dashboardHandler.Readiness)
		api.POST("/dashboard/readiness/:className/remind", middleware.RequireRoles(models.RoleAdmin, models.RoleCounselor), dashboardHandler.Remind)

		api.GET("/reports/readiness", middleware.RequireRoles(models.RoleAdmin, models.RoleCounselor), reportHandler.Readiness)

		api.GET("/classes", classHandler.List)
		api.GET("/audit/events", middleware.RequireRoles(models.RoleAdmin), auditHandler.Recent)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("graceful shutdown failed", "error", err)
	}
}
