package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Mdev98/fast-food-api/internal/infrastructure/cache"
	"github.com/Mdev98/fast-food-api/internal/interfaces/http/dto"
)

// DBPinger reports database liveness.
type DBPinger interface {
	Ping() error
}

// SystemHandler handles health and cache administration endpoints.
type SystemHandler struct {
	BaseHandler
	db          DBPinger
	cache       cache.Store
	cachePrefix string
	startTime   time.Time
}

// NewSystemHandler creates a new SystemHandler. db and store may be nil
// when the corresponding backend is disabled.
func NewSystemHandler(db DBPinger, store cache.Store, cachePrefix string) *SystemHandler {
	return &SystemHandler{
		db:          db,
		cache:       store,
		cachePrefix: cachePrefix,
		startTime:   time.Now(),
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status     string            `json:"status"`
	GoVersion  string            `json:"go_version"`
	Uptime     string            `json:"uptime"`
	Components map[string]string `json:"components"`
}

// CacheClearResponse reports how many cache entries were removed.
type CacheClearResponse struct {
	Deleted int64  `json:"deleted"`
	Prefix  string `json:"prefix"`
}

// Health reports service and dependency status. Returns 503 when the
// database is unreachable.
func (h *SystemHandler) Health(c *gin.Context) {
	components := map[string]string{}
	healthy := true

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			components["database"] = "down"
			healthy = false
		} else {
			components["database"] = "up"
		}
	} else {
		components["database"] = "disabled"
	}

	if h.cache != nil {
		if err := h.cache.Ping(c.Request.Context()); err != nil {
			components["cache"] = "down"
		} else {
			components["cache"] = "up"
		}
	} else {
		components["cache"] = "disabled"
	}

	resp := HealthResponse{
		Status:     "ok",
		GoVersion:  runtime.Version(),
		Uptime:     time.Since(h.startTime).Round(time.Second).String(),
		Components: components,
	}

	if !healthy {
		resp.Status = "degraded"
		c.JSON(http.StatusServiceUnavailable, dto.NewSuccessResponse(resp))
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// CacheClear removes cached responses. An optional prefix query
// parameter narrows the clear to a path prefix, e.g. /products.
func (h *SystemHandler) CacheClear(c *gin.Context) {
	if h.cache == nil {
		h.Success(c, CacheClearResponse{Deleted: 0, Prefix: h.cachePrefix})
		return
	}

	prefix := h.cachePrefix
	if scope := c.Query("prefix"); scope != "" {
		prefix = h.cachePrefix + ":" + scope
	}

	deleted, err := h.cache.DeletePrefix(c.Request.Context(), prefix)
	if err != nil {
		h.InternalError(c, "Failed to clear cache")
		return
	}

	h.Success(c, CacheClearResponse{Deleted: deleted, Prefix: prefix})
}
