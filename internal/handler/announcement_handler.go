package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/gradecalc-api/internal/dto"
	"github.com/noah-isme/gradecalc-api/internal/middleware"
	"github.com/noah-isme/gradecalc-api/internal/models"
	appErrors "github.com/noah-isme/gradecalc-api/pkg/errors"
	"github.com/noah-isme/gradecalc-api/pkg/response"
)

type announcementService interface {
	Feed(ctx context.Context, req dto.AnnouncementFeedRequest) ([]models.Announcement, bool, error)
	List(ctx context.Context, req dto.AnnouncementListRequest) ([]models.Announcement, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Announcement, error)
	Create(ctx context.Context, req dto.AnnouncementPayload, actor *models.JWTClaims) (*models.Announcement, error)
	Update(ctx context.Context, id string, req dto.AnnouncementPayload, actor *models.JWTClaims) (*models.Announcement, error)
	SetActive(ctx context.Context, id string, req dto.SetAnnouncementActiveRequest, actor *models.JWTClaims) error
	Delete(ctx context.Context, id string, actor *models.JWTClaims) error
}

type announcementExporter interface {
	ExportAnnouncements(ctx context.Context, req dto.ExportRequest) (*dto.ExportFile, error)
}

// AnnouncementHandler serves the viewer feed and the staff announcement tooling.
type AnnouncementHandler struct {
	service  announcementService
	exporter announcementExporter
}

// NewAnnouncementHandler constructs the handler.
func NewAnnouncementHandler(service announcementService, exporter announcementExporter) *AnnouncementHandler {
	return &AnnouncementHandler{service: service, exporter: exporter}
}

// Feed godoc
// @Summary Announcements for a viewer
// @Description Active announcements, newest first, that target the viewer's semester and branch. Announcements without a semester or branch apply to everyone.
// @Tags Announcements
// @Produce json
// @Param semester_id query string false "Viewer semester"
// @Param branch_id query string false "Viewer branch"
// @Success 200 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /announcements [get]
func (h *AnnouncementHandler) Feed(c *gin.Context) {
	var req dto.AnnouncementFeedRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}
	start := time.Now()
	items, cacheHit, err := h.service.Feed(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, items, nil, middleware.MetaWithTiming(c, start))
}

// List godoc
// @Summary List announcements
// @Tags Announcements
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Param active query bool false "Filter by active flag"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /admin/announcements [get]
func (h *AnnouncementHandler) List(c *gin.Context) {
	var req dto.AnnouncementListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}
	items, pagination, err := h.service.List(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get godoc
// @Summary Get announcement
// @Tags Announcements
// @Security BearerAuth
// @Produce json
// @Param id path string true "Announcement ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/announcements/{id} [get]
func (h *AnnouncementHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create godoc
// @Summary Create announcement
// @Tags Announcements
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body dto.AnnouncementPayload true "Announcement payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/announcements [post]
func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req dto.AnnouncementPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	item, err := h.service.Create(c.Request.Context(), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update announcement
// @Tags Announcements
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Announcement ID"
// @Param payload body dto.AnnouncementPayload true "Announcement payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/announcements/{id} [put]
func (h *AnnouncementHandler) Update(c *gin.Context) {
	var req dto.AnnouncementPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	item, err := h.service.Update(c.Request.Context(), c.Param("id"), req, claimsFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// SetActive godoc
// @Summary Publish or retract announcement
// @Tags Announcements
// @Security BearerAuth
// @Accept json
// @Param id path string true "Announcement ID"
// @Param payload body dto.SetAnnouncementActiveRequest true "Active flag"
// @Success 204
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/announcements/{id}/active [patch]
func (h *AnnouncementHandler) SetActive(c *gin.Context) {
	var req dto.SetAnnouncementActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.service.SetActive(c.Request.Context(), c.Param("id"), req, claimsFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Delete godoc
// @Summary Delete announcement
// @Tags Announcements
// @Security BearerAuth
// @Param id path string true "Announcement ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /admin/announcements/{id} [delete]
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), claimsFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Export godoc
// @Summary Export announcements
// @Tags Announcements
// @Security BearerAuth
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/announcements/export [get]
func (h *AnnouncementHandler) Export(c *gin.Context) {
	if h.exporter == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrFeatureDisabled, "exports are disabled"))
		return
	}
	req := dto.ExportRequest{Format: strings.TrimSpace(c.Query("format"))}
	file, err := h.exporter.ExportAnnouncements(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Payload)
}
