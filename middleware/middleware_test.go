package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seo-optimizer/articleseo/metrics"
	"github.com/seo-optimizer/articleseo/stats"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(r http.Handler, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestErrorHandlerRecoversPanic(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), ErrorHandler())
	r.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	rec := perform(r, http.MethodGet, "/boom", nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"An unexpected error occurred"}`, rec.Body.String())
}

func TestRateLimiterAllow(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(2, 3)
	rl.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("a"), "request %d", i)
	}
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"), "buckets are per client")

	now = now.Add(500 * time.Millisecond)
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
}

func TestRateLimiterSweepsIdleBuckets(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1)
	rl.now = func() time.Time { return now }

	rl.Allow("a")
	now = now.Add(time.Hour)
	rl.Allow("b")

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.NotContains(t, rl.buckets, "a")
	assert.Contains(t, rl.buckets, "b")
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(NewRateLimiter(0.001, 1).RateLimit())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, perform(r, http.MethodGet, "/", nil).Code)
	rec := perform(r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "Rate limit exceeded")
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	rec := perform(r, http.MethodGet, "/", nil)
	generated := rec.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, rec.Body.String())

	rec = perform(r, http.MethodGet, "/", map[string]string{RequestIDHeader: "abc"})
	assert.Equal(t, "abc", rec.Header().Get(RequestIDHeader))
}

func TestStatsMiddlewareRecords(t *testing.T) {
	m := metrics.New(nil)
	traffic := stats.NewTraffic()

	r := gin.New()
	r.Use(RequestID(), StatsMiddleware(m, traffic))
	r.GET("/api/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/api/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	perform(r, http.MethodGet, "/api/items/1", nil)
	perform(r, http.MethodGet, "/api/items/2", nil)
	perform(r, http.MethodGet, "/api/fail", nil)
	perform(r, http.MethodGet, "/nowhere", nil)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/items/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/fail", "500")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")))

	snap := traffic.Snapshot(true, 10)
	require.Equal(t, 4, snap.TotalRequests)
	assert.InDelta(t, 25.0, snap.ErrorRate, 1e-9)
	assert.Equal(t, map[string]int{"/api/items/:id": 2, "/api/fail": 1}, snap.PopularPaths)
}

func TestStatsMiddlewareIgnoresUnknownPaths(t *testing.T) {
	traffic := stats.NewTraffic()

	r := gin.New()
	r.Use(StatsMiddleware(nil, traffic))
	r.GET("/api/history/:slug", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 50; i++ {
		perform(r, http.MethodGet, fmt.Sprintf("/api/junk-%d", i), nil)
		perform(r, http.MethodGet, fmt.Sprintf("/api/history/slug-%d", i), nil)
	}

	snap := traffic.Snapshot(true, 100)
	assert.Equal(t, 100, snap.TotalRequests)
	assert.Equal(t, map[string]int{"/api/history/:slug": 50}, snap.PopularPaths)
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.POST("/api/analyze", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := perform(r, http.MethodOptions, "/api/analyze", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = perform(r, http.MethodPost, "/api/analyze", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
