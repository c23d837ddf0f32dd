package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// MonthlyStats represents statistics for a specific month
type MonthlyStats struct {
	Analyses    int       `json:"analyses"`
	Checklists  int       `json:"checklists"`
	Metadata    int       `json:"metadata"`
	Audits      int       `json:"audits"`
	CacheHits   int       `json:"cache_hits"`
	CacheMisses int       `json:"cache_misses"`
	Errors      int       `json:"errors"`
	LastUpdated time.Time `json:"last_updated"`
}

// Delta is a set of counter increments applied in one call.
type Delta struct {
	Analyses    int
	Checklists  int
	Metadata    int
	Audits      int
	CacheHits   int
	CacheMisses int
	Errors      int
}

// Storage handles persistent storage of statistics
type Storage struct {
	mutex       sync.RWMutex
	stats       map[string]*MonthlyStats // key: "YYYY-MM"
	filePath    string
	lastWrite   time.Time
	writeBuffer chan struct{}
	done        chan struct{}
	stopped     chan struct{}
	closeOnce   sync.Once
}

// NewStorage creates a new statistics storage instance
func NewStorage(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Storage{
		stats:       make(map[string]*MonthlyStats),
		filePath:    filepath.Join(dataDir, "stats.json"),
		writeBuffer: make(chan struct{}, 1),
		done:        make(chan struct{}),
		stopped:     make(chan struct{}),
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}

	go s.backgroundWriter()

	return s, nil
}

func (s *Storage) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	return json.Unmarshal(data, &s.stats)
}

// save writes statistics through a temporary file and an atomic rename.
func (s *Storage) save() error {
	s.mutex.RLock()
	data, err := json.Marshal(s.stats)
	s.mutex.RUnlock()

	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tempFile, s.filePath); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}

func (s *Storage) backgroundWriter() {
	defer close(s.stopped)

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.writeBuffer:
			s.saveLogged()
		case <-ticker.C:
			s.saveLogged()
		case <-s.done:
			return
		}
	}
}

func (s *Storage) saveLogged() {
	if err := s.save(); err != nil {
		log.Error().Err(err).Str("file", s.filePath).Msg("failed to persist statistics")
	}
}

func currentMonth() string {
	return time.Now().Format("2006-01")
}

// requestWrite signals the background writer without blocking.
func (s *Storage) requestWrite() {
	select {
	case s.writeBuffer <- struct{}{}:
	default:
		// write already pending
	}
}

// Increment applies d to the current month's counters.
func (s *Storage) Increment(d Delta) {
	month := currentMonth()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	stats, exists := s.stats[month]
	if !exists {
		stats = &MonthlyStats{}
		s.stats[month] = stats
	}

	stats.Analyses += d.Analyses
	stats.Checklists += d.Checklists
	stats.Metadata += d.Metadata
	stats.Audits += d.Audits
	stats.CacheHits += d.CacheHits
	stats.CacheMisses += d.CacheMisses
	stats.Errors += d.Errors
	stats.LastUpdated = time.Now()

	if time.Since(s.lastWrite) > time.Minute {
		s.requestWrite()
		s.lastWrite = time.Now()
	}
}

// GetCurrentStats returns statistics for the current month
func (s *Storage) GetCurrentStats() MonthlyStats {
	return s.monthOrZero(currentMonth())
}

func (s *Storage) monthOrZero(month string) MonthlyStats {
	stats, _ := s.GetMonthlyStats(month)
	return stats
}

// Cleanup drops every month older than retainMonths before the current one.
func (s *Storage) Cleanup(retainMonths int) {
	now := time.Now()
	keep := make(map[string]bool, retainMonths+1)
	for i := 0; i <= retainMonths; i++ {
		keep[now.AddDate(0, -i, 0).Format("2006-01")] = true
	}

	s.mutex.Lock()
	removed := 0
	for key := range s.stats {
		if !keep[key] {
			delete(s.stats, key)
			removed++
		}
	}
	s.mutex.Unlock()

	s.requestWrite()

	log.Info().Int("retain_months", retainMonths).Int("removed", removed).Msg("statistics cleaned up")
}

// GetMonthlyStats returns statistics for a specific month
func (s *Storage) GetMonthlyStats(yearMonth string) (MonthlyStats, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if stats, exists := s.stats[yearMonth]; exists {
		return *stats, true
	}
	return MonthlyStats{}, false
}

// GetAllMonths returns all months with statistics, newest first.
func (s *Storage) GetAllMonths() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	months := make([]string, 0, len(s.stats))
	for month := range s.stats {
		months = append(months, month)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	return months
}

// Close stops the background writer and flushes to disk.
func (s *Storage) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		<-s.stopped
		err = s.save()
	})
	return err
}
