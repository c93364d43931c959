package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"parking-status-backend/config"
	"parking-status-backend/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(handler *Handler, cfg config.ServerConfig) *gin.Engine {
	r := gin.Default()

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	// Disabled unless cache_ttl_seconds > 0.
	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	caching := mw.Cache(cache.New(ttl, 10*time.Minute), ttl)

	r.GET("/health", handler.GetHealth)

	// The report takes no parameters and answers any method.
	r.Any("/get_spaces.php", rateLimiter, caching, handler.GetSpaces)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.Any("/spaces", caching, handler.GetSpaces)
	}

	return r
}
