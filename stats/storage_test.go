package stats

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStorage(t *testing.T) {
	tempDir := t.TempDir()

	storage, err := NewStorage(tempDir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	defer storage.Close()

	t.Run("Increment", func(t *testing.T) {
		storage.Increment(Delta{Analyses: 1, Checklists: 2, CacheHits: 3, CacheMisses: 4})
		stats := storage.GetCurrentStats()

		if stats.Analyses != 1 {
			t.Errorf("Expected 1 analysis, got %d", stats.Analyses)
		}
		if stats.Checklists != 2 {
			t.Errorf("Expected 2 checklists, got %d", stats.Checklists)
		}
		if stats.CacheHits != 3 {
			t.Errorf("Expected 3 cache hits, got %d", stats.CacheHits)
		}
		if stats.CacheMisses != 4 {
			t.Errorf("Expected 4 cache misses, got %d", stats.CacheMisses)
		}
		if stats.LastUpdated.IsZero() {
			t.Error("LastUpdated should be set")
		}
	})

	t.Run("Persistence", func(t *testing.T) {
		storage.requestWrite()
		time.Sleep(100 * time.Millisecond) // Give time for the write to complete

		storage2, err := NewStorage(tempDir)
		if err != nil {
			t.Fatalf("Failed to create second storage: %v", err)
		}
		defer storage2.Close()

		stats := storage2.GetCurrentStats()
		if stats.Analyses != 1 {
			t.Errorf("Expected 1 analysis after reload, got %d", stats.Analyses)
		}
	})

	t.Run("Cleanup", func(t *testing.T) {
		oldMonth := time.Now().AddDate(0, -2, 0).Format("2006-01")
		lastMonth := time.Now().AddDate(0, -1, 0).Format("2006-01")
		storage.mutex.Lock()
		storage.stats[oldMonth] = &MonthlyStats{Analyses: 100}
		storage.stats[lastMonth] = &MonthlyStats{Analyses: 50}
		storage.mutex.Unlock()

		storage.Cleanup(1)

		if _, exists := storage.GetMonthlyStats(oldMonth); exists {
			t.Error("Old stats should have been cleaned up")
		}
		if _, exists := storage.GetMonthlyStats(lastMonth); !exists {
			t.Error("Previous month should be retained")
		}
	})

	t.Run("AllMonthsNewestFirst", func(t *testing.T) {
		months := storage.GetAllMonths()
		if len(months) != 2 {
			t.Fatalf("Expected 2 months, got %v", months)
		}
		if months[0] != currentMonth() {
			t.Errorf("Expected current month first, got %s", months[0])
		}
	})

	t.Run("FileSize", func(t *testing.T) {
		storage.requestWrite()
		time.Sleep(100 * time.Millisecond)

		info, err := os.Stat(filepath.Join(tempDir, "stats.json"))
		if err != nil {
			t.Fatalf("Failed to stat file: %v", err)
		}

		if info.Size() > 1024 {
			t.Errorf("File size too large: %d bytes", info.Size())
		}
	})

	t.Run("ConcurrentAccess", func(t *testing.T) {
		before := storage.GetCurrentStats()

		done := make(chan bool)
		for i := 0; i < 10; i++ {
			go func() {
				for j := 0; j < 100; j++ {
					storage.Increment(Delta{Audits: 1, Errors: 1})
					storage.GetCurrentStats()
				}
				done <- true
			}()
		}

		for i := 0; i < 10; i++ {
			<-done
		}

		stats := storage.GetCurrentStats()
		if got := stats.Audits - before.Audits; got != 1000 {
			t.Errorf("Expected 1000 audits, got %d", got)
		}
		if got := stats.Errors - before.Errors; got != 1000 {
			t.Errorf("Expected 1000 errors, got %d", got)
		}
	})
}

func TestCloseFlushes(t *testing.T) {
	tempDir := t.TempDir()

	storage, err := NewStorage(tempDir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	storage.Increment(Delta{Metadata: 7})
	if err := storage.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := storage.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}

	reloaded, err := NewStorage(tempDir)
	if err != nil {
		t.Fatalf("Failed to reload storage: %v", err)
	}
	defer reloaded.Close()

	if got := reloaded.GetCurrentStats().Metadata; got != 7 {
		t.Errorf("Expected 7 metadata generations, got %d", got)
	}
}

func TestScheduleCleanupValidatesSchedule(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	defer storage.Close()

	if _, err := ScheduleCleanup(storage, "not a schedule", 1); err == nil {
		t.Error("Expected an error for an invalid schedule")
	}

	c, err := ScheduleCleanup(storage, "@daily", 1)
	if err != nil {
		t.Fatalf("Expected @daily to be accepted: %v", err)
	}
	c.Stop()
}
