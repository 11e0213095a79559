package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Zxun2/teammates/api/swagger"
	"github.com/Zxun2/teammates/internal/handler"
	"github.com/Zxun2/teammates/internal/middleware"
	"github.com/Zxun2/teammates/internal/models"
	"github.com/Zxun2/teammates/internal/repository"
	"github.com/Zxun2/teammates/internal/service"
	"github.com/Zxun2/teammates/internal/upstream"
	"github.com/Zxun2/teammates/pkg/cache"
	"github.com/Zxun2/teammates/pkg/config"
	"github.com/Zxun2/teammates/pkg/database"
	"github.com/Zxun2/teammates/pkg/logger"
	corsmiddleware "github.com/Zxun2/teammates/pkg/middleware/cors"
	reqidmiddleware "github.com/Zxun2/teammates/pkg/middleware/requestid"
)

// @title Enroll Gateway API
// @version 0.1.0
// @description Course enrollment gateway in front of the platform API
// @BasePath /
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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsSvc := service.NewMetricsService()

	// The gateway degrades gracefully without redis: rosters are fetched
	// from the platform on every request.
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, roster caching disabled")
		redisClient = nil
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Roster.CacheTTL, logr, redisClient != nil)

	// Audit persistence is optional in the same way.
	var auditStore service.AuditStore
	if cfg.Audit.Enabled {
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			logr.Warn("postgres unavailable, audit logging disabled")
		} else {
			auditStore = repository.NewAuditRepository(db)
		}
	}

	client := upstream.NewClient(cfg.Upstream, logr)
	client.SetObserver(metricsSvc.ObserveUpstreamCall)

	rosterSvc := service.NewRosterService(client, cacheSvc, cfg.Roster.CacheTTL, logr)
	enrollSvc := service.NewEnrollService(client, rosterSvc, auditStore, metricsSvc, nil, logr)
	sessionsSvc := service.NewSessionsService(client, logr)
	tokenSvc := service.NewTokenService(cfg.JWT.Secret)

	enrollHandler := handler.NewEnrollHandler(enrollSvc)
	rosterHandler := handler.NewRosterHandler(rosterSvc)
	sessionsHandler := handler.NewSessionsHandler(sessionsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.Use(middleware.JWT(tokenSvc))
	api.Use(middleware.RequireRoles(models.RoleInstructor, models.RoleAdmin))

	courses := api.Group("/courses/:courseId")
	{
		courses.POST("/enroll", enrollHandler.Submit)
		courses.POST("/enroll/modified", enrollHandler.SubmitModified)
		courses.POST("/enroll/edits", enrollHandler.RecordEdit)
		courses.DELETE("/enroll/edits", enrollHandler.ResetEdits)
		courses.GET("/enroll/history", enrollHandler.History)

		courses.GET("/students", rosterHandler.List)
		courses.GET("/students/export", rosterHandler.Export)
		courses.GET("/responses/check", rosterHandler.CheckResponses)

		courses.GET("/sessions/table", sessionsHandler.Table)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "upstream", cfg.Upstream.BaseURL)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
