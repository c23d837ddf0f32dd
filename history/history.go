// Package history records the scores of fresh audits so an article's SEO
// progress can be followed over time.
package history

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Entry is one recorded audit. Score fields are zero when the analyzer was
// skipped; HasScore tells the two cases apart.
type Entry struct {
	Slug                string    `json:"slug"`
	Title               string    `json:"title"`
	ContentHash         string    `json:"contentHash"`
	HasScore            bool      `json:"hasScore"`
	Overall             float64   `json:"overall"`
	KeywordOptimization float64   `json:"keywordOptimization"`
	ContentQuality      float64   `json:"contentQuality"`
	TechnicalSEO        float64   `json:"technicalSeo"`
	UserExperience      float64   `json:"userExperience"`
	PassRate            int       `json:"passRate"`
	RecordedAt          time.Time `json:"recordedAt"`
}

type Recorder interface {
	Record(ctx context.Context, e Entry) error
	// Recent returns up to n entries for slug, newest first.
	Recent(ctx context.Context, slug string, n int) ([]Entry, error)
}

// memoryPerSlug caps how many entries Memory keeps for one slug.
const memoryPerSlug = 100

// Memory keeps the latest entries of each slug in process. The server uses
// it in dev mode when no database is configured.
type Memory struct {
	mu      sync.RWMutex
	entries map[string][]Entry
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string][]Entry)}
}

func (m *Memory) Record(_ context.Context, e Entry) error {
	if e.RecordedAt.IsZero() {
		e.RecordedAt = time.Now().UTC()
	}
	m.mu.Lock()
	list := append(m.entries[e.Slug], e)
	if len(list) > memoryPerSlug {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].RecordedAt.Before(list[j].RecordedAt)
		})
		list = append([]Entry(nil), list[len(list)-memoryPerSlug:]...)
	}
	m.entries[e.Slug] = list
	m.mu.Unlock()
	return nil
}

func (m *Memory) Recent(_ context.Context, slug string, n int) ([]Entry, error) {
	m.mu.RLock()
	src := m.entries[slug]
	out := make([]Entry, len(src))
	copy(out, src)
	m.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RecordedAt.After(out[j].RecordedAt)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out, nil
}
