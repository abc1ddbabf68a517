package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/gradecalc-api/internal/dto"
	"github.com/noah-isme/gradecalc-api/internal/middleware"
	"github.com/noah-isme/gradecalc-api/internal/models"
	"github.com/noah-isme/gradecalc-api/pkg/response"
)

type catalogService interface {
	Semesters(ctx context.Context) ([]models.Semester, bool, error)
	Branches(ctx context.Context) ([]models.Branch, bool, error)
	All(ctx context.Context) (*dto.CatalogResponse, bool, error)
}

// CatalogHandler serves the semester and branch selectors.
type CatalogHandler struct {
	service catalogService
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(service catalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// Semesters godoc
// @Summary List semesters
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /semesters [get]
func (h *CatalogHandler) Semesters(c *gin.Context) {
	start := time.Now()
	items, hit, err := h.service.Semesters(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, items, nil, middleware.MetaWithTiming(c, start))
}

// Branches godoc
// @Summary List branches
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /branches [get]
func (h *CatalogHandler) Branches(c *gin.Context) {
	start := time.Now()
	items, hit, err := h.service.Branches(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, items, nil, middleware.MetaWithTiming(c, start))
}

// All godoc
// @Summary Semesters and branches in one payload
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /catalog [get]
func (h *CatalogHandler) All(c *gin.Context) {
	start := time.Now()
	catalog, hit, err := h.service.All(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	response.JSON(c, http.StatusOK, catalog, nil, middleware.MetaWithTiming(c, start))
}
