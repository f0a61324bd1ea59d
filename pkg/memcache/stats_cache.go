// pkg/memcache/stats_cache.go
package mem

import (
	"context"
	"sync"
	"time"

	"netops/internal/models/response_models"
)

type StatsEntry struct {
	Stats    response_models.DashboardStats `json:"stats"`
	StoredAt time.Time                      `json:"stored_at"`
}

// StatsStore keeps the last computed dashboard stats per scope key. Entries
// are never evicted on read; freshness is decided by the caller so that an
// expired entry can still serve as a fallback.
type StatsStore interface {
	Get(ctx context.Context, key string) (StatsEntry, bool)
	Set(ctx context.Context, key string, entry StatsEntry)
	Clear(ctx context.Context) error
}

type StatsCache struct {
	mu   sync.RWMutex
	data map[string]StatsEntry
}

func NewStatsCache() *StatsCache {
	return &StatsCache{
		data: make(map[string]StatsEntry),
	}
}

func (s *StatsCache) Get(_ context.Context, key string) (StatsEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.data[key]
	return e, ok
}

func (s *StatsCache) Set(_ context.Context, key string, entry StatsEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = entry
}

func (s *StatsCache) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]StatsEntry)
	return nil
}
