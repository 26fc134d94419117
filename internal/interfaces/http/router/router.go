package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Mdev98/fast-food-api/internal/infrastructure/cache"
	"github.com/Mdev98/fast-food-api/internal/infrastructure/config"
	"github.com/Mdev98/fast-food-api/internal/infrastructure/logger"
	"github.com/Mdev98/fast-food-api/internal/interfaces/http/handler"
	"github.com/Mdev98/fast-food-api/internal/interfaces/http/middleware"
)

// Dependencies holds everything the route table needs.
type Dependencies struct {
	Config   *config.Config
	Logger   *zap.Logger
	Cache    cache.Store // nil disables response caching
	Products *handler.ProductHandler
	Orders   *handler.OrderHandler
	System   *handler.SystemHandler
}

// New builds the gin engine with the full middleware chain and route
// table.
func New(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(middleware.RequestID())
	engine.Use(middleware.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsCfg))

	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}
	engine.Use(middleware.RequireJSON())

	cacheReads := func() gin.HandlerFunc {
		if deps.Cache == nil {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.CacheResponses(middleware.CacheConfig{
			Store:  deps.Cache,
			TTL:    cfg.Cache.TTL,
			Prefix: cfg.Cache.Prefix,
			Logger: log,
		})
	}()

	adminOnly := middleware.APIKey(cfg.Auth.AdminAPIKey)

	engine.GET("/health", deps.System.Health)
	engine.POST("/cache/clear", adminOnly, deps.System.CacheClear)

	products := engine.Group("/products")
	{
		products.GET("", cacheReads, deps.Products.List)
		products.GET("/:id", cacheReads, deps.Products.Get)
		products.POST("", adminOnly, deps.Products.Create)
		products.POST("/create-with-image", adminOnly, deps.Products.CreateWithImage)
		products.POST("/upload-image", adminOnly, deps.Products.UploadImage)
		products.POST("/:id/image", adminOnly, deps.Products.AttachImage)
		products.PUT("/:id", adminOnly, deps.Products.Update)
		products.DELETE("/delete-image", adminOnly, deps.Products.DeleteImage)
		products.DELETE("/:id", adminOnly, deps.Products.Delete)
	}

	orders := engine.Group("/orders")
	{
		orders.GET("", cacheReads, deps.Orders.List)
		orders.GET("/:id", cacheReads, deps.Orders.Get)
		orders.POST("", adminOnly, deps.Orders.Place)
		orders.PATCH("/:id/status", adminOnly, deps.Orders.UpdateStatus)
	}

	return engine
}
