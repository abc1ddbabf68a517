package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/gradecalc-api/internal/dto"
	"github.com/noah-isme/gradecalc-api/internal/models"
	"github.com/noah-isme/gradecalc-api/internal/policy"
)

// RoutePolicyConfig carries the ad loader settings attached to eligible routes.
type RoutePolicyConfig struct {
	AdsEnabled       bool
	ClientID         string
	MinContentLength int
	LoadDelay        time.Duration
}

// RoutePolicyService answers whether a site route may display advertisements.
type RoutePolicyService struct {
	cfg     RoutePolicyConfig
	metrics *MetricsService
	logger  *zap.Logger
}

// NewRoutePolicyService constructs the service.
func NewRoutePolicyService(cfg RoutePolicyConfig, metrics *MetricsService, logger *zap.Logger) *RoutePolicyService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MinContentLength <= 0 {
		cfg.MinContentLength = 500
	}
	if cfg.LoadDelay < 0 {
		cfg.LoadDelay = 0
	}
	return &RoutePolicyService{cfg: cfg, metrics: metrics, logger: logger}
}

// Evaluate classifies a normalised path. Loader settings are attached only when the
// route may show ads and ads are switched on with a client id.
func (s *RoutePolicyService) Evaluate(path string) dto.RoutePolicyResponse {
	result := policy.Classify(path)
	s.metrics.RecordRouteClassification(result)
	s.logger.Debug("route classified",
		zap.String("path", path),
		zap.String("page_type", string(result.PageType)),
		zap.Bool("can_show_ads", result.CanShowAds),
	)

	resp := dto.RoutePolicyResponse{Path: path, RouteClassification: result}
	if result.CanShowAds && s.cfg.AdsEnabled && s.cfg.ClientID != "" {
		resp.AdLoader = &dto.AdLoaderSettings{
			ClientID:         s.cfg.ClientID,
			MinContentLength: s.cfg.MinContentLength,
			LoadDelayMs:      s.cfg.LoadDelay.Milliseconds(),
		}
	}
	return resp
}

// Tables returns the fixed classification tables.
func (s *RoutePolicyService) Tables() dto.RouteTablesResponse {
	return dto.RouteTablesResponse{
		Tables:            policy.RouteTables(),
		CourseDetailRoute: "/courses/:id",
		PageTypes:         models.PageTypes(),
	}
}
