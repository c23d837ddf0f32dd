package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrafficSnapshot(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tr := NewTraffic()
	tr.now = func() time.Time { return now }

	tr.Track("10.0.0.1", "/api/analyze", 10*time.Millisecond, false)
	tr.Track("10.0.0.1", "/api/analyze", 30*time.Millisecond, false)
	tr.Track("10.0.0.2", "/api/audit", 20*time.Millisecond, true)
	tr.Track("10.0.0.3", "/metrics", 0, false)

	snap := tr.Snapshot(false, 5)
	assert.Equal(t, 3, snap.UniqueVisitors24h)
	assert.Equal(t, 4, snap.TotalRequests)
	assert.InDelta(t, 25.0, snap.ErrorRate, 1e-9)
	assert.InDelta(t, 15.0, snap.AverageLoadTime, 1e-9)
	assert.Nil(t, snap.PopularPaths)

	detailed := tr.Snapshot(true, 1)
	assert.Equal(t, map[string]int{"/api/analyze": 2}, detailed.PopularPaths)
}

func TestTrafficForgetsOldVisitors(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	tr := NewTraffic()
	tr.now = func() time.Time { return now }

	tr.Track("10.0.0.1", "/api/analyze", 0, false)
	now = now.Add(25 * time.Hour)
	tr.Track("10.0.0.2", "/api/analyze", 0, false)

	assert.Equal(t, 1, tr.Snapshot(false, 5).UniqueVisitors24h)
}

func TestTrafficEmpty(t *testing.T) {
	snap := NewTraffic().Snapshot(true, 5)
	assert.Zero(t, snap.TotalRequests)
	assert.Zero(t, snap.ErrorRate)
	assert.Zero(t, snap.AverageLoadTime)
	assert.Empty(t, snap.PopularPaths)
}

func TestTrafficSkipsUnmatchedRoutes(t *testing.T) {
	tr := NewTraffic()

	tr.Track("10.0.0.1", "", 0, false)
	tr.Track("10.0.0.1", "", 0, false)
	tr.Track("10.0.0.1", "/api/history/:slug", 0, false)

	snap := tr.Snapshot(true, 10)
	assert.Equal(t, 3, snap.TotalRequests)
	assert.Equal(t, map[string]int{"/api/history/:slug": 1}, snap.PopularPaths)
}
