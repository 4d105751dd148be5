package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"listing-backend/internal/listings"
	"listing-backend/internal/shared/config"
	"listing-backend/internal/shared/metrics"
	"listing-backend/internal/shared/server/middleware"
	"listing-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers wired into the engine.
type RouterDeps struct {
	Config          config.Config
	ListingsHandler *listings.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(cfg.Env),
		middleware.RateLimit(rateLimitConfig(cfg)),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	registerMeRoutes(api)
	if deps.ListingsHandler != nil {
		deps.ListingsHandler.RegisterRoutes(api)
	}

	return r
}

// rateLimitConfig throttles generation harder than reads: generation fans
// out to the LLM provider per request, reads are repo lookups.
func rateLimitConfig(cfg config.Config) middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		DefaultGroup: "DEFAULT",
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodGet {
				return "READ"
			}
			return "DEFAULT"
		},
		Limiter: middleware.NewRateLimiter(),
		Rules: map[string]middleware.RateLimitRule{
			"DEFAULT": {Rate: cfg.RateLimitRPS, Burst: cfg.RateLimitBurst},
			"READ":    {Rate: cfg.RateLimitRPS * 5, Burst: cfg.RateLimitBurst * 4},
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
