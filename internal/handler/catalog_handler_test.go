package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/gradecalc-api/internal/dto"
	"github.com/noah-isme/gradecalc-api/internal/models"
	appErrors "github.com/noah-isme/gradecalc-api/pkg/errors"
)

type fakeCatalogSrv struct {
	err error
	hit bool
}

func (f fakeCatalogSrv) Semesters(context.Context) ([]models.Semester, bool, error) {
	return []models.Semester{{ID: "S1", Name: "Semester 1", Number: 1}}, f.hit, f.err
}

func (f fakeCatalogSrv) Branches(context.Context) ([]models.Branch, bool, error) {
	return []models.Branch{{ID: "b1", Code: "CSE", Name: "Computer Science"}}, f.hit, f.err
}

func (f fakeCatalogSrv) All(ctx context.Context) (*dto.CatalogResponse, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	s, _, _ := f.Semesters(ctx)
	b, _, _ := f.Branches(ctx)
	return &dto.CatalogResponse{Semesters: s, Branches: b}, f.hit, nil
}

func newCatalogTestRouter(srv catalogService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewCatalogHandler(srv)
	r := gin.New()
	r.GET("/semesters", h.Semesters)
	r.GET("/branches", h.Branches)
	r.GET("/catalog", h.All)
	return r
}

func TestCatalogHandlerLists(t *testing.T) {
	r := newCatalogTestRouter(fakeCatalogSrv{hit: true})

	rec := do(r, http.MethodGet, "/semesters", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Semester 1"`)
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))

	rec = do(r, http.MethodGet, "/branches", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"CSE"`)

	rec = do(r, http.MethodGet, "/catalog", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"semesters":[`)
	assert.Contains(t, rec.Body.String(), `"branches":[`)
}

func TestCatalogHandlerError(t *testing.T) {
	r := newCatalogTestRouter(fakeCatalogSrv{err: appErrors.ErrInternal})
	assert.Equal(t, http.StatusInternalServerError, do(r, http.MethodGet, "/semesters", "").Code)
	assert.Equal(t, http.StatusInternalServerError, do(r, http.MethodGet, "/catalog", "").Code)
}
