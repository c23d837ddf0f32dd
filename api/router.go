// Package api exposes the scoring components over HTTP.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/seo-optimizer/articleseo/analyzer"
	"github.com/seo-optimizer/articleseo/audit"
	"github.com/seo-optimizer/articleseo/checker"
	"github.com/seo-optimizer/articleseo/history"
	"github.com/seo-optimizer/articleseo/metadata"
	"github.com/seo-optimizer/articleseo/metrics"
	"github.com/seo-optimizer/articleseo/middleware"
	"github.com/seo-optimizer/articleseo/sitemap"
	"github.com/seo-optimizer/articleseo/stats"
)

// Deps are the services behind the handlers. Stats, Traffic, Metrics,
// History and RateLimiter are optional.
type Deps struct {
	Analyzer    *analyzer.Analyzer
	Checker     *checker.Checker
	Metadata    *metadata.Generator
	Sitemap     *sitemap.Generator
	Auditor     *audit.Auditor
	Stats       *stats.Storage
	Traffic     *stats.Traffic
	Metrics     *metrics.Metrics
	History     history.Recorder
	RateLimiter *middleware.RateLimiter
	DevMode     bool
}

type handler struct {
	Deps
}

// NewRouter builds the gin engine with middleware and every route.
func NewRouter(d Deps) *gin.Engine {
	h := &handler{Deps: d}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.StatsMiddleware(d.Metrics, d.Traffic))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORS())

	r.GET("/robots.txt", h.robots)
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}

	api := r.Group("/api")
	if d.RateLimiter != nil {
		api.Use(d.RateLimiter.RateLimit())
	}
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		api.POST("/analyze", h.analyze)
		api.POST("/checklist", h.checklist)
		api.POST("/metadata", h.metadata)
		api.POST("/audit", h.audit)
		api.POST("/sitemap", h.sitemap)

		api.GET("/statistics", h.statistics)
		api.GET("/history/:slug", h.history)
	}

	return r
}
