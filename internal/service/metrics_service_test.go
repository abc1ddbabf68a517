package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/gradecalc-api/internal/models"
)

func TestMetricsServiceSnapshot(t *testing.T) {
	m := NewMetricsService()
	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/route-policy", http.StatusOK, 10*time.Millisecond)
	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/route-policy", http.StatusOK, 30*time.Millisecond)
	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordCacheOperation(true, time.Millisecond)
	m.RecordCacheOperation(false, time.Millisecond)
	m.ObserveDBQuery("announcements.list_active", 4*time.Millisecond)
	m.RecordRouteClassification(models.RouteClassification{PageType: models.PageTypeError})
	m.ObserveAnnouncementFeed(3)

	snap := m.Snapshot()
	assert.Equal(t, uint64(2), snap.RequestsTotal)
	assert.InDelta(t, 20.0, snap.AverageRequestDurationMs, 0.001)
	assert.InDelta(t, 2.0/3.0, snap.CacheHitRatio, 0.001)
	assert.Equal(t, uint64(1), snap.DBQueryCount)
	assert.Equal(t, uint64(1), snap.RouteClassifications["error"])
	assert.False(t, snap.GeneratedAt.IsZero())
}

func TestMetricsServiceHandlerExposesCollectors(t *testing.T) {
	m := NewMetricsService()
	m.RecordRouteClassification(models.RouteClassification{PageType: models.PageTypeContent, CanShowAds: true})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `route_classifications_total{can_show_ads="true",page_type="content"} 1`)
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	m.ObserveHTTPRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	m.RecordRouteClassification(models.RouteClassification{})
	assert.Equal(t, models.SystemMetrics{}, m.Snapshot())

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
