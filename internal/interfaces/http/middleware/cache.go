package middleware

import (
	"bytes"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Mdev98/fast-food-api/internal/infrastructure/cache"
)

// CacheConfig configures the response cache middleware.
type CacheConfig struct {
	Store  cache.Store
	TTL    time.Duration
	Prefix string
	Logger *zap.Logger
}

// CacheKey builds the cache key for a request path and raw query. The
// query is sorted so parameter order does not fragment the cache.
func CacheKey(prefix, path, rawQuery string) string {
	key := prefix + ":" + path
	if rawQuery == "" {
		return key
	}

	params := strings.Split(rawQuery, "&")
	sort.Strings(params)
	return key + "?" + strings.Join(params, "&")
}

// bodyCapturer duplicates the response body so it can be stored.
type bodyCapturer struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyCapturer) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCapturer) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// CacheResponses serves GET responses from the cache store and fills
// the cache on misses. Store failures degrade to uncached operation.
func CacheResponses(cfg CacheConfig) gin.HandlerFunc {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		if cfg.Store == nil || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := CacheKey(cfg.Prefix, c.Request.URL.Path, c.Request.URL.RawQuery)

		cached, found, err := cfg.Store.Get(c.Request.Context(), key)
		if err != nil {
			logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		} else if found {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			c.Abort()
			return
		}

		capturer := &bodyCapturer{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = capturer
		c.Header("X-Cache", "MISS")

		c.Next()

		// Only successful JSON responses are cacheable
		if c.Writer.Status() != http.StatusOK {
			return
		}
		if !strings.HasPrefix(c.Writer.Header().Get("Content-Type"), "application/json") {
			return
		}

		if err := cfg.Store.Set(c.Request.Context(), key, capturer.body.Bytes(), cfg.TTL); err != nil {
			logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
}
