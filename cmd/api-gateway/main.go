package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/classedgee/scheduler-api/api/swagger"
	"github.com/classedgee/scheduler-api/internal/handler"
	"github.com/classedgee/scheduler-api/internal/middleware"
	"github.com/classedgee/scheduler-api/internal/repository"
	"github.com/classedgee/scheduler-api/internal/service"
	"github.com/classedgee/scheduler-api/pkg/cache"
	"github.com/classedgee/scheduler-api/pkg/config"
	"github.com/classedgee/scheduler-api/pkg/database"
	"github.com/classedgee/scheduler-api/pkg/logger"
	corsmiddleware "github.com/classedgee/scheduler-api/pkg/middleware/cors"
	reqidmiddleware "github.com/classedgee/scheduler-api/pkg/middleware/requestid"
)

// @title ClassEdgee Scheduler API
// @version 1.0.0
// @description Automatic and manual class scheduling for departments
// @BasePath /api/v1
// @schemes http

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect database", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, catalog caching disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()
	metrics := service.NewMetricsService()

	subjectRepo := repository.NewSubjectRepository(db)
	facultyRepo := repository.NewFacultyRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	timeslotRepo := repository.NewTimeslotRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	runRepo := repository.NewScheduleRunRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Scheduler.CatalogCacheTTL, logr, redisClient != nil)
	catalogSvc := service.NewCatalogService(subjectRepo, facultyRepo, roomRepo, timeslotRepo, sectionRepo, cacheSvc, cfg.Scheduler.CatalogCacheTTL, logr)
	occurrenceSvc := service.NewOccurrenceService(assignmentRepo, cfg.Scheduler.OccurrenceWeeks, logr)
	generatorSvc := service.NewScheduleGeneratorService(db, catalogSvc, runRepo, assignmentRepo, occurrenceSvc, service.GreedyStrategy{}, metrics, validate, service.GeneratorConfig{
		DefaultTotalWeeks: cfg.Scheduler.DefaultTotalWeeks,
		AttemptMultiplier: cfg.Scheduler.AttemptMultiplier,
	}, logr)
	manualSvc := service.NewManualScheduleService(runRepo, assignmentRepo, facultyRepo, roomRepo, timeslotRepo, sectionRepo, occurrenceSvc, validate, logr)
	exportSvc := service.NewExportService(runRepo, assignmentRepo, cfg.Export.PDFTitle, logr, nil, nil)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	occurrenceSvc.Start(ctx)
	defer occurrenceSvc.Stop()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	scheduleHandler := handler.NewScheduleHandler(generatorSvc, exportSvc)
	manualHandler := handler.NewManualScheduleHandler(manualSvc)

	api := r.Group(cfg.APIPrefix)
	{
		schedule := api.Group("/schedule")
		schedule.POST("/generate", scheduleHandler.Generate)
		schedule.POST("/feasibility", scheduleHandler.Feasibility)
		schedule.GET("/latest", scheduleHandler.Latest)
		schedule.PATCH("/:id/finalize", scheduleHandler.Finalize)
		schedule.GET("/:id/export", scheduleHandler.Export)

		manual := schedule.Group("/manual")
		manual.POST("/init", manualHandler.Init)
		manual.GET("/faculty", manualHandler.AvailableFaculty)
		manual.GET("/rooms", manualHandler.AvailableRooms)
		manual.POST("/assign", manualHandler.Assign)
		manual.GET("/:id", manualHandler.Details)
		manual.DELETE("/:id", manualHandler.Discard)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
