package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/gradecalc-api/internal/dto"
	"github.com/noah-isme/gradecalc-api/internal/models"
	"github.com/noah-isme/gradecalc-api/internal/policy"
	appErrors "github.com/noah-isme/gradecalc-api/pkg/errors"
)

const (
	activeAnnouncementsKey   = "announcements:active"
	announcementCachePattern = "announcements:*"
	announcementResource     = "announcements"
)

type announcementRepository interface {
	ListActive(ctx context.Context) ([]models.Announcement, error)
	List(ctx context.Context, filter models.AnnouncementFilter) ([]models.Announcement, int, error)
	GetByID(ctx context.Context, id string) (*models.Announcement, error)
	Create(ctx context.Context, announcement *models.Announcement) error
	Update(ctx context.Context, announcement *models.Announcement) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

type auditRecorder interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

type warmScheduler interface {
	Schedule(target string)
}

// AnnouncementServiceParams groups constructor dependencies.
type AnnouncementServiceParams struct {
	Repo      announcementRepository
	Audit     auditRecorder
	Cache     *CacheService
	Metrics   *MetricsService
	Warmer    warmScheduler
	Validator *validator.Validate
	Logger    *zap.Logger
	CacheTTL  time.Duration
}

// AnnouncementService serves the viewer feed and the staff administration workflows.
type AnnouncementService struct {
	repo      announcementRepository
	audit     auditRecorder
	cache     *CacheService
	metrics   *MetricsService
	warmer    warmScheduler
	validator *validator.Validate
	logger    *zap.Logger
	cacheTTL  time.Duration
}

// NewAnnouncementService constructs the service.
func NewAnnouncementService(params AnnouncementServiceParams) *AnnouncementService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
		if err := RegisterAnnouncementValidations(validate); err != nil {
			logger.Error("failed to register announcement validations", zap.Error(err))
		}
	}
	ttl := params.CacheTTL
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &AnnouncementService{
		repo:      params.Repo,
		audit:     params.Audit,
		cache:     params.Cache,
		metrics:   params.Metrics,
		warmer:    params.Warmer,
		validator: validate,
		logger:    logger,
		cacheTTL:  ttl,
	}
}

// RegisterAnnouncementValidations installs the custom tags used by announcement
// payloads. Call it once on a shared validator before passing it to the service.
func RegisterAnnouncementValidations(validate *validator.Validate) error {
	return validate.RegisterValidation("linktype", func(fl validator.FieldLevel) bool {
		switch models.AnnouncementLinkType(strings.ToLower(fl.Field().String())) {
		case models.AnnouncementLinkInternal, models.AnnouncementLinkExternal, models.AnnouncementLinkDownload:
			return true
		default:
			return false
		}
	})
}

// Feed returns the active announcements visible to the viewer, newest first. The
// boolean reports whether the active set came from cache.
func (s *AnnouncementService) Feed(ctx context.Context, req dto.AnnouncementFeedRequest) ([]models.Announcement, bool, error) {
	active, hit, err := s.activeAnnouncements(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load announcements")
	}

	visible := policy.FilterAnnouncements(active, blankToNil(req.SemesterID), blankToNil(req.BranchID))
	s.metrics.ObserveAnnouncementFeed(len(visible))
	return visible, hit, nil
}

// WarmCache loads the active announcement set into cache.
func (s *AnnouncementService) WarmCache(ctx context.Context) error {
	_, _, err := s.activeAnnouncements(ctx)
	return err
}

func (s *AnnouncementService) activeAnnouncements(ctx context.Context) ([]models.Announcement, bool, error) {
	var active []models.Announcement
	hit, err := s.cache.Fetch(ctx, activeAnnouncementsKey, s.cacheTTL, &active, func(ctx context.Context) error {
		start := time.Now()
		rows, err := s.repo.ListActive(ctx)
		s.metrics.ObserveDBQuery("announcements.list_active", time.Since(start))
		if err != nil {
			return err
		}
		active = rows
		return nil
	})
	return active, hit, err
}

// List returns announcements with pagination for administration.
func (s *AnnouncementService) List(ctx context.Context, req dto.AnnouncementListRequest) ([]models.Announcement, *models.Pagination, error) {
	filter := models.AnnouncementFilter{Active: req.Active, Page: req.Page, PageSize: req.PageSize}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	start := time.Now()
	rows, total, err := s.repo.List(ctx, filter)
	s.metrics.ObserveDBQuery("announcements.list", time.Since(start))
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list announcements")
	}
	return rows, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}, nil
}

// Get returns an announcement by id.
func (s *AnnouncementService) Get(ctx context.Context, id string) (*models.Announcement, error) {
	ann, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapAnnouncementErr(err, "failed to get announcement")
	}
	return ann, nil
}

// Create registers a new announcement. New announcements are active unless the
// payload says otherwise.
func (s *AnnouncementService) Create(ctx context.Context, req dto.AnnouncementPayload, actor *models.JWTClaims) (*models.Announcement, error) {
	if err := s.validatePayload(&req); err != nil {
		return nil, err
	}
	announcement := &models.Announcement{IsActive: true}
	applyPayload(announcement, req)
	if actor != nil {
		announcement.CreatedBy = &actor.UserID
	}
	if err := s.repo.Create(ctx, announcement); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create announcement")
	}
	s.afterMutation(ctx, models.AuditActionAnnouncementCreate, announcement.ID, actor, nil, announcement)
	return announcement, nil
}

// Update replaces the editable fields of an announcement.
func (s *AnnouncementService) Update(ctx context.Context, id string, req dto.AnnouncementPayload, actor *models.JWTClaims) (*models.Announcement, error) {
	if err := s.validatePayload(&req); err != nil {
		return nil, err
	}
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapAnnouncementErr(err, "failed to load announcement")
	}
	before := *existing
	applyPayload(existing, req)
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, mapAnnouncementErr(err, "failed to update announcement")
	}
	s.afterMutation(ctx, models.AuditActionAnnouncementUpdate, id, actor, &before, existing)
	return existing, nil
}

// SetActive publishes or retracts an announcement.
func (s *AnnouncementService) SetActive(ctx context.Context, id string, req dto.SetAnnouncementActiveRequest, actor *models.JWTClaims) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "is_active is required")
	}
	if err := s.repo.SetActive(ctx, id, *req.IsActive); err != nil {
		return mapAnnouncementErr(err, "failed to update announcement")
	}
	s.afterMutation(ctx, models.AuditActionAnnouncementUpdate, id, actor, nil, map[string]bool{"is_active": *req.IsActive})
	return nil
}

// Delete removes an announcement by id.
func (s *AnnouncementService) Delete(ctx context.Context, id string, actor *models.JWTClaims) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapAnnouncementErr(err, "failed to delete announcement")
	}
	s.afterMutation(ctx, models.AuditActionAnnouncementDelete, id, actor, nil, nil)
	return nil
}

func (s *AnnouncementService) validatePayload(req *dto.AnnouncementPayload) error {
	req.Title = strings.TrimSpace(req.Title)
	req.SemesterID = blankToNil(req.SemesterID)
	req.BranchID = blankToNil(req.BranchID)
	req.LinkURL = blankToNil(req.LinkURL)
	req.LinkLabel = blankToNil(req.LinkLabel)
	req.LinkType = blankToNil(req.LinkType)
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid payload")
	}
	if req.LinkURL != nil && req.LinkLabel == nil {
		return appErrors.Clone(appErrors.ErrValidation, "link_label required when link_url is set")
	}
	if req.LinkURL == nil && (req.LinkLabel != nil || req.LinkType != nil) {
		return appErrors.Clone(appErrors.ErrValidation, "link_url required when link_label or link_type is set")
	}
	return nil
}

func (s *AnnouncementService) afterMutation(ctx context.Context, action, id string, actor *models.JWTClaims, before, after interface{}) {
	if err := s.cache.Invalidate(ctx, announcementCachePattern); err != nil {
		s.logger.Warn("failed to invalidate announcement cache", zap.String("id", id), zap.Error(err))
	} else if s.warmer != nil && s.cache.Enabled() {
		s.warmer.Schedule(WarmTargetAnnouncements)
	}
	if s.audit == nil {
		return
	}
	entry := &models.AuditLog{Action: action, Resource: announcementResource, ResourceID: &id}
	if actor != nil {
		entry.UserID = &actor.UserID
	}
	entry.OldValues = s.auditSnapshot(action, "old_values", before)
	entry.NewValues = s.auditSnapshot(action, "new_values", after)
	if err := s.audit.CreateAuditLog(ctx, entry); err != nil {
		s.logger.Warn("failed to record announcement audit log", zap.String("action", action), zap.Error(err))
	}
}

func (s *AnnouncementService) auditSnapshot(action, field string, value interface{}) []byte {
	if value == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("failed to encode announcement audit snapshot", zap.String("action", action), zap.String("field", field), zap.Error(err))
		return nil
	}
	return raw
}

func applyPayload(target *models.Announcement, req dto.AnnouncementPayload) {
	target.Title = req.Title
	target.Description = req.Description
	target.LinkURL = req.LinkURL
	target.LinkLabel = req.LinkLabel
	target.LinkType = nil
	if req.LinkType != nil {
		linkType := models.AnnouncementLinkType(strings.ToLower(*req.LinkType))
		target.LinkType = &linkType
	}
	if req.IsActive != nil {
		target.IsActive = *req.IsActive
	}
	target.SemesterID = req.SemesterID
	target.BranchID = req.BranchID
}

func mapAnnouncementErr(err error, message string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, "announcement not found")
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

func blankToNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
