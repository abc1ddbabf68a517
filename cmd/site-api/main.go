package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/noah-isme/gradecalc-api/api/swagger"
	"github.com/noah-isme/gradecalc-api/internal/repository"
	"github.com/noah-isme/gradecalc-api/internal/service"
	"github.com/noah-isme/gradecalc-api/pkg/cache"
	"github.com/noah-isme/gradecalc-api/pkg/config"
	"github.com/noah-isme/gradecalc-api/pkg/database"
	"github.com/noah-isme/gradecalc-api/pkg/jobs"
	"github.com/noah-isme/gradecalc-api/pkg/logger"
)

// @title GradeCalc Site API
// @version 1.0.0
// @description Route ad policy, announcements and staff tooling for the grade calculator site.
// @BasePath /api/v1
// @schemes http https
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
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		redisClient = nil
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Announcements.CacheTTL, logr, redisClient != nil)

	queue := jobs.NewQueue("cache-warm", jobs.QueueConfig{Workers: 1, Logger: logr})
	warmer := service.NewCacheWarmer(queue, logr)

	deps, err := buildDependencies(cfg, logr, db, cacheSvc, metricsSvc, warmer)
	if err != nil {
		logr.Fatal("failed to build dependencies", zap.Error(err))
	}
	warmer.Add(service.WarmTargetAnnouncements, deps.announcements.WarmCache)
	warmer.Add(service.WarmTargetCatalog, deps.catalog.WarmCache)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	queue.Start(ctx)
	defer queue.Stop()
	if cacheSvc.Enabled() {
		warmer.ScheduleAll()
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           newRouter(cfg, logr, deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
