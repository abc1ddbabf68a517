package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/gradecalc-api/internal/dto"
	"github.com/noah-isme/gradecalc-api/internal/middleware"
	"github.com/noah-isme/gradecalc-api/internal/models"
	appErrors "github.com/noah-isme/gradecalc-api/pkg/errors"
)

type fakeAnnouncementSrv struct {
	feed        []models.Announcement
	feedHit     bool
	lastFeed    dto.AnnouncementFeedRequest
	lastList    dto.AnnouncementListRequest
	lastPayload dto.AnnouncementPayload
	lastActor   *models.JWTClaims
	lastActive  dto.SetAnnouncementActiveRequest
	err         error
}

func (f *fakeAnnouncementSrv) Feed(_ context.Context, req dto.AnnouncementFeedRequest) ([]models.Announcement, bool, error) {
	f.lastFeed = req
	return f.feed, f.feedHit, f.err
}

func (f *fakeAnnouncementSrv) List(_ context.Context, req dto.AnnouncementListRequest) ([]models.Announcement, *models.Pagination, error) {
	f.lastList = req
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.feed, &models.Pagination{Page: 1, PageSize: 20, TotalCount: len(f.feed)}, nil
}

func (f *fakeAnnouncementSrv) Get(_ context.Context, id string) (*models.Announcement, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Announcement{ID: id, Title: "t"}, nil
}

func (f *fakeAnnouncementSrv) Create(_ context.Context, req dto.AnnouncementPayload, actor *models.JWTClaims) (*models.Announcement, error) {
	f.lastPayload, f.lastActor = req, actor
	if f.err != nil {
		return nil, f.err
	}
	return &models.Announcement{ID: "new", Title: req.Title, IsActive: true}, nil
}

func (f *fakeAnnouncementSrv) Update(_ context.Context, id string, req dto.AnnouncementPayload, actor *models.JWTClaims) (*models.Announcement, error) {
	f.lastPayload, f.lastActor = req, actor
	if f.err != nil {
		return nil, f.err
	}
	return &models.Announcement{ID: id, Title: req.Title}, nil
}

func (f *fakeAnnouncementSrv) SetActive(_ context.Context, _ string, req dto.SetAnnouncementActiveRequest, actor *models.JWTClaims) error {
	f.lastActive, f.lastActor = req, actor
	return f.err
}

func (f *fakeAnnouncementSrv) Delete(_ context.Context, _ string, actor *models.JWTClaims) error {
	f.lastActor = actor
	return f.err
}

type fakeExporter struct {
	file    *dto.ExportFile
	err     error
	lastReq dto.ExportRequest
}

func (f *fakeExporter) ExportAnnouncements(_ context.Context, req dto.ExportRequest) (*dto.ExportFile, error) {
	f.lastReq = req
	return f.file, f.err
}

func newAnnouncementTestRouter(srv *fakeAnnouncementSrv, exp announcementExporter, claims *models.JWTClaims) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAnnouncementHandler(srv, exp)
	r := gin.New()
	r.Use(middleware.WithResponseMeta())
	r.GET("/announcements", h.Feed)

	admin := r.Group("/admin/announcements", func(c *gin.Context) {
		if claims != nil {
			c.Set(middleware.ContextUserKey, claims)
		}
		c.Next()
	})
	admin.GET("", h.List)
	admin.GET("/export", h.Export)
	admin.GET("/:id", h.Get)
	admin.POST("", h.Create)
	admin.PUT("/:id", h.Update)
	admin.PATCH("/:id/active", h.SetActive)
	admin.DELETE("/:id", h.Delete)
	return r
}

func do(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAnnouncementHandlerFeed(t *testing.T) {
	srv := &fakeAnnouncementSrv{feed: []models.Announcement{{ID: "a1", Title: "Exams"}}, feedHit: true}
	r := newAnnouncementTestRouter(srv, nil, nil)

	rec := do(r, http.MethodGet, "/announcements?semester_id=S5&branch_id=CSE", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, srv.lastFeed.SemesterID)
	assert.Equal(t, "S5", *srv.lastFeed.SemesterID)
	assert.Equal(t, "CSE", *srv.lastFeed.BranchID)
	assert.Equal(t, "HIT", rec.Header().Get(middleware.CacheHeader))

	var envelope struct {
		Data []models.Announcement  `json:"data"`
		Meta map[string]interface{} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "a1", envelope.Data[0].ID)
	assert.Equal(t, true, envelope.Meta["cache_hit"])
}

func TestAnnouncementHandlerFeedWithoutViewer(t *testing.T) {
	srv := &fakeAnnouncementSrv{feed: []models.Announcement{}}
	r := newAnnouncementTestRouter(srv, nil, nil)

	rec := do(r, http.MethodGet, "/announcements", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, srv.lastFeed.SemesterID)
	assert.Nil(t, srv.lastFeed.BranchID)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestAnnouncementHandlerFeedError(t *testing.T) {
	srv := &fakeAnnouncementSrv{err: appErrors.ErrInternal}
	r := newAnnouncementTestRouter(srv, nil, nil)

	assert.Equal(t, http.StatusInternalServerError, do(r, http.MethodGet, "/announcements", "").Code)
}

func TestAnnouncementHandlerListBindsFilters(t *testing.T) {
	srv := &fakeAnnouncementSrv{feed: []models.Announcement{{ID: "a1"}}}
	r := newAnnouncementTestRouter(srv, nil, nil)

	rec := do(r, http.MethodGet, "/admin/announcements?page=2&page_size=5&active=false", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, srv.lastList.Page)
	assert.Equal(t, 5, srv.lastList.PageSize)
	require.NotNil(t, srv.lastList.Active)
	assert.False(t, *srv.lastList.Active)
	assert.Contains(t, rec.Body.String(), `"total_count":1`)
}

func TestAnnouncementHandlerCreatePassesActor(t *testing.T) {
	srv := &fakeAnnouncementSrv{}
	actor := &models.JWTClaims{UserID: "editor-1", Role: models.RoleEditor}
	r := newAnnouncementTestRouter(srv, nil, actor)

	rec := do(r, http.MethodPost, "/admin/announcements", `{"title":"Fee deadline","branch_id":"CSE"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Fee deadline", srv.lastPayload.Title)
	assert.Equal(t, actor, srv.lastActor)
}

func TestAnnouncementHandlerCreateRejectsMalformedJSON(t *testing.T) {
	r := newAnnouncementTestRouter(&fakeAnnouncementSrv{}, nil, nil)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/admin/announcements", `{"title":`).Code)
}

func TestAnnouncementHandlerUpdateNotFound(t *testing.T) {
	srv := &fakeAnnouncementSrv{err: appErrors.Clone(appErrors.ErrNotFound, "announcement not found")}
	r := newAnnouncementTestRouter(srv, nil, nil)

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPut, "/admin/announcements/x", `{"title":"y"}`).Code)
}

func TestAnnouncementHandlerSetActiveAndDelete(t *testing.T) {
	srv := &fakeAnnouncementSrv{}
	r := newAnnouncementTestRouter(srv, nil, nil)

	rec := do(r, http.MethodPatch, "/admin/announcements/a1/active", `{"is_active":false}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, srv.lastActive.IsActive)
	assert.False(t, *srv.lastActive.IsActive)

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodDelete, "/admin/announcements/a1", "").Code)
}

func TestAnnouncementHandlerExport(t *testing.T) {
	exp := &fakeExporter{file: &dto.ExportFile{Filename: "announcements.csv", ContentType: "text/csv", Payload: []byte("id\n")}}
	r := newAnnouncementTestRouter(&fakeAnnouncementSrv{}, exp, nil)

	rec := do(r, http.MethodGet, "/admin/announcements/export?format=csv", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "csv", exp.lastReq.Format)
	assert.Equal(t, `attachment; filename="announcements.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "id\n", rec.Body.String())
}

func TestAnnouncementHandlerExportDisabled(t *testing.T) {
	r := newAnnouncementTestRouter(&fakeAnnouncementSrv{}, nil, nil)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/admin/announcements/export", "").Code)
}
