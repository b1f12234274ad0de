package middleware

import (
	"net/http"
	"strings"
	"time"

	localCache "github.com/DaUnderlord/monday-sippin-sub000/cache"
	"github.com/DaUnderlord/monday-sippin-sub000/config"
	"github.com/DaUnderlord/monday-sippin-sub000/metrics"
	"github.com/DaUnderlord/monday-sippin-sub000/model"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// VisualizePath gets its own, tighter bucket since each miss bills the AI
// service.
const VisualizePath = "/api/visualize-play"

type limitPolicy struct {
	bucket string
	rps    rate.Limit
	burst  int
	retry  string
}

var (
	defaultPolicy   = limitPolicy{bucket: "api", rps: 5, burst: 15, retry: "5"}
	visualizePolicy = limitPolicy{bucket: "visualize", rps: 0.5, burst: 5, retry: "10"}
)

func policyFor(path string) limitPolicy {
	if strings.HasPrefix(path, VisualizePath) {
		return visualizePolicy
	}
	return defaultPolicy
}

func limiterFor(key string, p limitPolicy) *rate.Limiter {
	if val, found := localCache.RateLimiterCache.Get(key); found {
		if limiter, ok := val.(*rate.Limiter); ok {
			return limiter
		}
	}
	limiter := rate.NewLimiter(p.rps, p.burst)
	localCache.RateLimiterCache.Set(key, limiter, cache.DefaultExpiration)
	return limiter
}

func RateLimiter(cfg *config.ConfigManager) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !cfg.GetConfig().RateLimiter || ctx.Request.Method == http.MethodOptions {
			ctx.Next()
			return
		}

		p := policyFor(ctx.Request.URL.Path)
		limiter := limiterFor(p.bucket+":"+ctx.ClientIP(), p)

		if !limiter.Allow() {
			metrics.Get().RateLimited.WithLabelValues(p.bucket).Inc()
			ctx.Header("Retry-After", p.retry)
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, model.Response{
				Message: "Too many requests. Please wait " + p.retry + " seconds before trying again.",
				Error:   "rate_limit_exceeded",
			})
			return
		}

		ctx.Next()
	}
}

func RecoveryMiddleware(c *gin.Context) {
	defer func() {
		if err := recover(); err != nil {
			log.Error().
				Interface("panic", err).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Msg("PANIC_RECOVERED")

			c.AbortWithStatusJSON(http.StatusInternalServerError, model.Response{
				Message: "Internal server error",
				Error:   "unexpected_panic",
			})
		}
	}()
	c.Next()
}

var quietPaths = map[string]struct{}{
	"/api/health":   {},
	"/metrics":      {},
	"/openapi.yaml": {},
	"/openapi.json": {},
}

func ZerologMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if _, quiet := quietPaths[path]; quiet {
			c.Next()
			return
		}

		start := time.Now()
		query := c.Request.URL.RawQuery

		c.Next()

		status := c.Writer.Status()
		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Str("query", query).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("HTTP Request")
	}
}
