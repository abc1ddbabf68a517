package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/gradecalc-api/internal/dto"
	"github.com/noah-isme/gradecalc-api/pkg/response"
)

type routePolicyService interface {
	Evaluate(path string) dto.RoutePolicyResponse
	Tables() dto.RouteTablesResponse
}

// RoutePolicyHandler exposes ad eligibility decisions to the front-end.
type RoutePolicyHandler struct {
	service routePolicyService
}

// NewRoutePolicyHandler constructs the handler.
func NewRoutePolicyHandler(service routePolicyService) *RoutePolicyHandler {
	return &RoutePolicyHandler{service: service}
}

// Evaluate godoc
// @Summary Classify a site route for ad display
// @Description Returns the page type, ad eligibility and loader settings for a path. Query strings and fragments in the supplied value are ignored.
// @Tags RoutePolicy
// @Produce json
// @Param path query string false "Route path, e.g. /courses/42"
// @Success 200 {object} response.Envelope
// @Router /route-policy [get]
func (h *RoutePolicyHandler) Evaluate(c *gin.Context) {
	path := normalizeRoutePath(c.Query("path"))
	response.JSON(c, http.StatusOK, h.service.Evaluate(path), nil)
}

// Tables godoc
// @Summary List route classification tables
// @Tags RoutePolicy
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /route-policy/tables [get]
func (h *RoutePolicyHandler) Tables(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Tables(), nil)
}

// normalizeRoutePath reduces a client supplied location to a bare path. Only URLs with
// a scheme are parsed; scheme-relative values such as "//admin" stay as given so they
// classify as unknown routes.
func normalizeRoutePath(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if u, err := url.Parse(raw); err == nil && u.Scheme != "" {
		if u.Opaque != "" {
			return raw
		}
		if u.Path == "" {
			return "/"
		}
		return u.EscapedPath()
	}
	if idx := strings.IndexAny(raw, "?#"); idx >= 0 {
		raw = raw[:idx]
	}
	return raw
}
