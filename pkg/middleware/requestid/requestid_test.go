package requestid

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, Value(c))
	})
	return r
}

func TestMiddlewareReusesClientID(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(headerKey, "abc-123")
	newRouter().ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(headerKey))
	assert.Equal(t, "abc-123", rec.Body.String())
}

func TestMiddlewareReplacesOversizedID(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(headerKey, strings.Repeat("z", 200))
	newRouter().ServeHTTP(rec, req)

	id := rec.Header().Get(headerKey)
	assert.Len(t, id, 36)
	assert.Equal(t, id, rec.Body.String())
}
