// Package httpapi wires the Gin transport to the comparison and search
// services together with the shared middleware stack.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/votabienperu/comparador/docs"
	"github.com/votabienperu/comparador/internal/config"
	"github.com/votabienperu/comparador/internal/http/handlers"
	"github.com/votabienperu/comparador/internal/http/middleware"
	"github.com/votabienperu/comparador/internal/services"
)

const (
	maxBodyBytes  = 64 << 10
	healthTimeout = 2 * time.Second
)

// Pinger is implemented by sources that can report their own reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RegisterRoutes installs middleware, operational endpoints and the public
// API on r. Middleware order:
//
//	otelgin → RequestID → RedactingLogger → Recovery → body limit → Metrics →
//	gzip → RateLimiter → CORS → SecurityHeaders
func RegisterRoutes(r *gin.Engine, src services.Source, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{
		MaskHeaders: []string{"X-API-Key"},
	}))
	r.Use(middleware.Recovery())
	r.Use(limitBody(maxBodyBytes))
	r.Use(middleware.Metrics())
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	r.Use(middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, "/health", "/metrics").Middleware())
	r.Use(corsMiddleware(cfg.CORS))

	hstsAge := 0
	if cfg.Security.EnableHSTS {
		hstsAge = int(cfg.Security.HSTSMaxAge / time.Second)
	}
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{HSTSMaxAge: hstsAge}))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", health(src))

	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	cmp := services.NewComparisonService(src)
	cmp.MinIDs, cmp.MaxIDs = cfg.Compare.MinIDs, cfg.Compare.MaxIDs

	srch := services.NewSearchService(src)
	srch.DefaultLimit, srch.MaxLimit = cfg.Compare.SearchDefaultLimit, cfg.Compare.SearchMaxLimit

	h := handlers.New(cmp, srch)

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		api.POST("/compare", h.PostCompare)
		api.GET("/compare", h.GetCompare)
		api.GET("/search", h.Search)
	}
}

// health reports 200 when the source answers a ping within healthTimeout.
// Sources without Ping are assumed healthy.
func health(src services.Source) gin.HandlerFunc {
	p, canPing := src.(Pinger)
	return func(c *gin.Context) {
		if canPing {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
			defer cancel()
			if err := p.Ping(ctx); err != nil {
				middleware.LoggerFrom(c).Warn().Err(err).Msg("health: source ping failed")
				handlers.Fail(c, http.StatusServiceUnavailable, handlers.ErrCodeUnavailable, "data source unavailable")
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// corsMiddleware allows any origin when no allowlist is configured. The API
// is read-only and unauthenticated, so credentials are never allowed.
func corsMiddleware(cc config.CORSConfig) gin.HandlerFunc {
	conf := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "If-None-Match", middleware.RequestIDHeader},
		ExposeHeaders: []string{middleware.RequestIDHeader, "ETag", "Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(cc.AllowedOrigins) == 0 {
		conf.AllowAllOrigins = true
	} else {
		conf.AllowOrigins = cc.AllowedOrigins
	}
	return cors.New(conf)
}

// limitBody caps request bodies; reads past maxBytes fail.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
