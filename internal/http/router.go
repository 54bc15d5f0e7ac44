// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging, panic recovery, metrics, CORS,
// security headers, compression, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/mkarpov/go-ads-backend/internal/config"
	"github.com/mkarpov/go-ads-backend/internal/http/handlers"
	"github.com/mkarpov/go-ads-backend/internal/http/middleware"
	"github.com/mkarpov/go-ads-backend/internal/services"
	"github.com/mkarpov/go-ads-backend/internal/storage"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting, CORS
// and security headers, compression, health and metrics endpoints, and then
// mounts the public API under the configured base path.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Rate limiter (per user/IP)
//  8. CORS and Security headers
//  9. Gzip compression for response bodies
func RegisterRoutes(r *gin.Engine, db *gorm.DB, covers *storage.DiskStore, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured access logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (5 MiB; covers are the largest payload)
	r.Use(limitBody(5 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 8) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Set ACAO: * on every response, including requests without an Origin header.
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// 9) Compress JSON responses
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Stored cover images
	if covers != nil {
		r.Static("/covers", covers.Root())
	}

	// Dependency injection: services ← repo/db/storage
	adSvc := &services.AdService{DB: db, Covers: coverStore(covers)}
	taxSvc := &services.TaxonomyService{DB: db}
	respSvc := &services.ResponseService{DB: db}
	h := handlers.New(adSvc, taxSvc, respSvc)

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Listing surfaces
		api.GET("/", h.ListAds)
		api.GET("/my-ads", h.MyAds)
		api.GET("/admin-ads", h.AdminAds)
		api.GET("/category/:slug", h.CategoryAds)
		api.GET("/city/:slug", h.CityAds)
		api.GET("/tag/:slug", h.TagAds)

		// Advertisements
		api.POST("/advertisement/new", h.CreateAd)
		api.GET("/advertisement/:slug", h.GetAd)
		api.GET("/advertisement/:slug/similar", h.SimilarAds)
		api.PUT("/advertisement/:slug/update", h.UpdateAd)
		api.DELETE("/advertisement/:slug/delete", h.DeleteAd)
		api.POST("/advertisement/:slug/cover", h.UploadCover)

		// Responses
		api.POST("/advertisement/:slug/respond", h.CreateResponse)
		api.GET("/response/:id", h.GetResponse)
		api.POST("/response/:id/accept", h.AcceptResponse)
		api.POST("/response/:id/reject", h.RejectResponse)
		api.GET("/responses", h.Inbox)
		api.GET("/profile/:username", h.Profile)

		// Taxonomy
		api.GET("/cities", h.ListCities)
		api.POST("/cities", h.CreateCity)
		api.DELETE("/cities/:slug", h.DeleteCity)
		api.GET("/categories", h.ListCategories)
		api.POST("/categories", h.CreateCategory)
		api.DELETE("/categories/:slug", h.DeleteCategory)
		api.GET("/tags", h.ListTags)
		api.POST("/tag/add", h.CreateTag)
	}
}

// coverStore widens *storage.DiskStore to the CoverStore interface while
// keeping a nil pointer as a nil interface, so the service's nil check works.
func coverStore(s *storage.DiskStore) storage.CoverStore {
	if s == nil {
		return nil
	}
	return s
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
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
