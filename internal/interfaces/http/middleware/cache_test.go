package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mdev98/fast-food-api/internal/infrastructure/cache"
)

func TestCacheKey(t *testing.T) {
	t.Run("no query", func(t *testing.T) {
		assert.Equal(t, "ffapi:/products", CacheKey("ffapi", "/products", ""))
	})

	t.Run("query params are sorted", func(t *testing.T) {
		k1 := CacheKey("ffapi", "/products", "page=2&brand=mamapizza")
		k2 := CacheKey("ffapi", "/products", "brand=mamapizza&page=2")
		assert.Equal(t, k1, k2)
		assert.Equal(t, "ffapi:/products?brand=mamapizza&page=2", k1)
	})
}

func newCachedRouter(store cache.Store, hits *int32) *gin.Engine {
	r := gin.New()
	r.Use(CacheResponses(CacheConfig{Store: store, TTL: time.Minute, Prefix: "ffapi"}))
	r.GET("/products", func(c *gin.Context) {
		atomic.AddInt32(hits, 1)
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	r.GET("/missing", func(c *gin.Context) {
		atomic.AddInt32(hits, 1)
		c.JSON(http.StatusNotFound, gin.H{"success": false})
	})
	return r
}

func TestCacheResponses(t *testing.T) {
	t.Run("second GET is served from cache", func(t *testing.T) {
		store := cache.NewMemoryStore()
		defer store.Close()
		var hits int32
		r := newCachedRouter(store, &hits)

		w1 := httptest.NewRecorder()
		r.ServeHTTP(w1, httptest.NewRequest(http.MethodGet, "/products?brand=planete_kebab", nil))
		require.Equal(t, http.StatusOK, w1.Code)
		assert.Equal(t, "MISS", w1.Header().Get("X-Cache"))

		w2 := httptest.NewRecorder()
		r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/products?brand=planete_kebab", nil))
		require.Equal(t, http.StatusOK, w2.Code)
		assert.Equal(t, "HIT", w2.Header().Get("X-Cache"))
		assert.Equal(t, w1.Body.String(), w2.Body.String())
		assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	})

	t.Run("different query strings cache separately", func(t *testing.T) {
		store := cache.NewMemoryStore()
		defer store.Close()
		var hits int32
		r := newCachedRouter(store, &hits)

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products?page=1", nil))
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products?page=2", nil))
		assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
	})

	t.Run("non-200 responses are not cached", func(t *testing.T) {
		store := cache.NewMemoryStore()
		defer store.Close()
		var hits int32
		r := newCachedRouter(store, &hits)

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
		assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
	})

	t.Run("prefix invalidation forces a fresh response", func(t *testing.T) {
		store := cache.NewMemoryStore()
		defer store.Close()
		var hits int32
		r := newCachedRouter(store, &hits)

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products", nil))
		deleted, err := store.DeletePrefix(context.Background(), "ffapi:/products")
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products", nil))
		assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
	})
}
