package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newJSONOnlyRouter() *gin.Engine {
	r := gin.New()
	r.Use(RequireJSON())
	handler := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }
	r.GET("/things", handler)
	r.POST("/things", handler)
	r.PUT("/things", handler)
	return r
}

func TestRequireJSON(t *testing.T) {
	t.Run("rejects form-encoded POST with 415", func(t *testing.T) {
		r := newJSONOnlyRouter()
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/things", strings.NewReader("a=1"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_UNSUPPORTED_MEDIA")
	})

	t.Run("accepts application/json", func(t *testing.T) {
		r := newJSONOnlyRouter()
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/things", strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("accepts multipart uploads", func(t *testing.T) {
		r := newJSONOnlyRouter()
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/things", strings.NewReader("--x--"))
		req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("GET requests are exempt", func(t *testing.T) {
		r := newJSONOnlyRouter()
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/things", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("empty-body POST is exempt", func(t *testing.T) {
		r := newJSONOnlyRouter()
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/things", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
