package main

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/gradecalc-api/internal/handler"
	"github.com/noah-isme/gradecalc-api/internal/middleware"
	"github.com/noah-isme/gradecalc-api/internal/models"
	"github.com/noah-isme/gradecalc-api/internal/repository"
	"github.com/noah-isme/gradecalc-api/internal/service"
	"github.com/noah-isme/gradecalc-api/pkg/config"
	"github.com/noah-isme/gradecalc-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/gradecalc-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/gradecalc-api/pkg/middleware/requestid"
)

type dependencies struct {
	db            *sqlx.DB
	users         *repository.UserRepository
	metrics       *service.MetricsService
	auth          *service.AuthService
	routePolicy   *service.RoutePolicyService
	announcements *service.AnnouncementService
	catalog       *service.CatalogService
	exports       *service.ExportService
}

func buildDependencies(cfg *config.Config, logr *zap.Logger, db *sqlx.DB, cacheSvc *service.CacheService, metricsSvc *service.MetricsService, warmer *service.CacheWarmer) (*dependencies, error) {
	validate := validator.New()
	if err := service.RegisterAnnouncementValidations(validate); err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)

	return &dependencies{
		db:      db,
		users:   userRepo,
		metrics: metricsSvc,
		auth: service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
			AccessTokenSecret:  cfg.JWT.Secret,
			AccessTokenExpiry:  cfg.JWT.Expiration,
			RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
			Issuer:             cfg.JWT.Issuer,
		}),
		routePolicy: service.NewRoutePolicyService(service.RoutePolicyConfig{
			AdsEnabled:       cfg.Ads.Enabled,
			ClientID:         cfg.Ads.ClientID,
			MinContentLength: cfg.Ads.MinContentLength,
			LoadDelay:        cfg.Ads.LoadDelay,
		}, metricsSvc, logr),
		announcements: service.NewAnnouncementService(service.AnnouncementServiceParams{
			Repo:      announcementRepo,
			Audit:     userRepo,
			Cache:     cacheSvc,
			Metrics:   metricsSvc,
			Warmer:    warmer,
			Validator: validate,
			Logger:    logr,
			CacheTTL:  cfg.Announcements.CacheTTL,
		}),
		catalog: service.NewCatalogService(catalogRepo, cacheSvc, metricsSvc, logr, cfg.Catalog.CacheTTL),
		exports: service.NewExportService(announcementRepo, service.ExportConfig{
			Enabled: cfg.Exports.Enabled,
			MaxRows: cfg.Exports.MaxRows,
		}, logr, nil, nil),
	}, nil
}

func newRouter(cfg *config.Config, logr *zap.Logger, deps *dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.metrics))
	r.Use(middleware.WithResponseMeta())

	metricsHandler := handler.NewMetricsHandler(deps.metrics, deps.db)
	routePolicyHandler := handler.NewRoutePolicyHandler(deps.routePolicy)
	announcementHandler := handler.NewAnnouncementHandler(deps.announcements, deps.exports)
	catalogHandler := handler.NewCatalogHandler(deps.catalog)
	authHandler := handler.NewAuthHandler(deps.auth)

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.GET("/route-policy", routePolicyHandler.Evaluate)
	api.GET("/route-policy/tables", routePolicyHandler.Tables)
	api.GET("/announcements", announcementHandler.Feed)
	api.GET("/semesters", catalogHandler.Semesters)
	api.GET("/branches", catalogHandler.Branches)
	api.GET("/catalog", catalogHandler.All)

	authGroup := api.Group("/auth")
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/refresh", authHandler.Refresh)
	authGroup.POST("/logout", middleware.JWT(deps.auth), authHandler.Logout)
	authGroup.GET("/me", middleware.JWT(deps.auth), authHandler.Me)

	staff := []models.UserRole{models.RoleSuperAdmin, models.RoleAdmin, models.RoleEditor}
	admins := []models.UserRole{models.RoleSuperAdmin, models.RoleAdmin}

	adminGroup := api.Group("/admin", middleware.JWT(deps.auth))
	announcements := adminGroup.Group("/announcements", middleware.RequireRoles(staff...))
	announcements.GET("", announcementHandler.List)
	announcements.GET("/export",
		middleware.RequireRoles(admins...),
		middleware.Audit(deps.users, logr, models.AuditActionAnnouncementExport, "announcements"),
		announcementHandler.Export,
	)
	announcements.GET("/:id", announcementHandler.Get)
	announcements.POST("", announcementHandler.Create)
	announcements.PUT("/:id", announcementHandler.Update)
	announcements.PATCH("/:id/active", announcementHandler.SetActive)
	announcements.DELETE("/:id", announcementHandler.Delete)

	api.GET("/metrics/summary", middleware.JWT(deps.auth), middleware.RequireRoles(admins...), metricsHandler.Summary)

	return r
}
