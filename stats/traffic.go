package stats

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Traffic tracks request-level figures in memory: unique visitors, request
// and error counts, average latency and the most requested API paths.
type Traffic struct {
	mutex          sync.RWMutex
	visitors       map[string]time.Time // IP -> last visit
	paths          map[string]int
	requests       int
	errors         int
	totalLatencyMs float64
	now            func() time.Time
}

// TrafficSnapshot is the public view returned by /api/statistics.
type TrafficSnapshot struct {
	UniqueVisitors24h int            `json:"uniqueVisitors24h"`
	TotalRequests     int            `json:"totalRequests"`
	ErrorRate         float64        `json:"errorRate"`
	AverageLoadTime   float64        `json:"averageLoadTime"`
	PopularPaths      map[string]int `json:"popularPaths,omitempty"`
}

func NewTraffic() *Traffic {
	return &Traffic{
		visitors: make(map[string]time.Time),
		paths:    make(map[string]int),
		now:      time.Now,
	}
}

// Track records one finished request. route is the matched route template
// (e.g. /api/history/:slug); only /api/ routes count as popular paths and an
// empty route, an unmatched request, is never keyed.
func (t *Traffic) Track(ip, route string, latency time.Duration, failed bool) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if ip != "" {
		t.visitors[ip] = t.now()
	}
	if strings.HasPrefix(route, "/api/") {
		t.paths[route]++
	}

	t.requests++
	if failed {
		t.errors++
	}
	t.totalLatencyMs += float64(latency) / float64(time.Millisecond)
}

// Snapshot reports the current figures. Popular paths are only included
// when detailed is set (development mode).
func (t *Traffic) Snapshot(detailed bool, topN int) TrafficSnapshot {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	cutoff := t.now().Add(-24 * time.Hour)
	visitors := 0
	for ip, last := range t.visitors {
		if last.After(cutoff) {
			visitors++
		} else {
			delete(t.visitors, ip)
		}
	}

	snap := TrafficSnapshot{
		UniqueVisitors24h: visitors,
		TotalRequests:     t.requests,
	}
	if t.requests > 0 {
		snap.ErrorRate = float64(t.errors) / float64(t.requests) * 100
		snap.AverageLoadTime = t.totalLatencyMs / float64(t.requests)
	}
	if detailed {
		snap.PopularPaths = t.topPaths(topN)
	}
	return snap
}

func (t *Traffic) topPaths(n int) map[string]int {
	type pathCount struct {
		path  string
		count int
	}
	counts := make([]pathCount, 0, len(t.paths))
	for p, c := range t.paths {
		counts = append(counts, pathCount{p, c})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].path < counts[j].path
	})

	result := make(map[string]int)
	for i := 0; i < len(counts) && i < n; i++ {
		result[counts[i].path] = counts[i].count
	}
	return result
}
