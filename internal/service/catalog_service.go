package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/gradecalc-api/internal/dto"
	"github.com/noah-isme/gradecalc-api/internal/models"
	appErrors "github.com/noah-isme/gradecalc-api/pkg/errors"
)

const (
	semestersCacheKey = "catalog:semesters"
	branchesCacheKey  = "catalog:branches"
)

type catalogRepository interface {
	ListSemesters(ctx context.Context) ([]models.Semester, error)
	ListBranches(ctx context.Context) ([]models.Branch, error)
}

// CatalogService serves the semester and branch options used to build a viewer context.
type CatalogService struct {
	repo     catalogRepository
	cache    *CacheService
	metrics  *MetricsService
	logger   *zap.Logger
	cacheTTL time.Duration
}

// NewCatalogService constructs the service.
func NewCatalogService(repo catalogRepository, cache *CacheService, metrics *MetricsService, logger *zap.Logger, cacheTTL time.Duration) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}
	return &CatalogService{repo: repo, cache: cache, metrics: metrics, logger: logger, cacheTTL: cacheTTL}
}

// Semesters lists semesters in display order.
func (s *CatalogService) Semesters(ctx context.Context) ([]models.Semester, bool, error) {
	var semesters []models.Semester
	hit, err := s.cache.Fetch(ctx, semestersCacheKey, s.cacheTTL, &semesters, func(ctx context.Context) error {
		start := time.Now()
		rows, err := s.repo.ListSemesters(ctx)
		s.metrics.ObserveDBQuery("catalog.semesters", time.Since(start))
		semesters = rows
		return err
	})
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list semesters")
	}
	return semesters, hit, nil
}

// Branches lists branches in display order.
func (s *CatalogService) Branches(ctx context.Context) ([]models.Branch, bool, error) {
	var branches []models.Branch
	hit, err := s.cache.Fetch(ctx, branchesCacheKey, s.cacheTTL, &branches, func(ctx context.Context) error {
		start := time.Now()
		rows, err := s.repo.ListBranches(ctx)
		s.metrics.ObserveDBQuery("catalog.branches", time.Since(start))
		branches = rows
		return err
	})
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list branches")
	}
	return branches, hit, nil
}

// WarmCache loads both lists into cache.
func (s *CatalogService) WarmCache(ctx context.Context) error {
	_, _, err := s.All(ctx)
	return err
}

// All returns both lists; the cache flag is true only when both were cached.
func (s *CatalogService) All(ctx context.Context) (*dto.CatalogResponse, bool, error) {
	semesters, semHit, err := s.Semesters(ctx)
	if err != nil {
		return nil, false, err
	}
	branches, branchHit, err := s.Branches(ctx)
	if err != nil {
		return nil, false, err
	}
	return &dto.CatalogResponse{Semesters: semesters, Branches: branches}, semHit && branchHit, nil
}
