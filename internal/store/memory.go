package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/restoboard/restoboard/internal/kpi"
	"github.com/restoboard/restoboard/internal/models"
)

type entryKey struct {
	StoreID      string
	BusinessDate time.Time
}

// MemoryStore keeps entries and targets in maps. Used by tests and DSN-less
// dev runs; same contract as the Postgres store.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[entryKey]models.RawDailyRecord
	targets map[string]models.StoreTargets
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[entryKey]models.RawDailyRecord),
		targets: make(map[string]models.StoreTargets),
	}
}

// UpsertEntry replaces any previous entry for the same (store, business date).
// Un upsert, nunca acumula: la última captura gana.
func (s *MemoryStore) UpsertEntry(_ context.Context, rec models.RawDailyRecord) error {
	rec.BusinessDate = kpi.Day(rec.BusinessDate)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[entryKey{StoreID: rec.StoreID, BusinessDate: rec.BusinessDate}] = rec
	return nil
}

func (s *MemoryStore) EntriesInRange(_ context.Context, storeID string, from, to time.Time) ([]models.RawDailyRecord, error) {
	from, to = kpi.Day(from), kpi.Day(to)
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.RawDailyRecord
	for k, v := range s.entries {
		if k.StoreID != storeID {
			continue
		}
		if !k.BusinessDate.Before(from) && !k.BusinessDate.After(to) {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BusinessDate.Before(out[j].BusinessDate) })
	return out, nil
}

func (s *MemoryStore) Targets(_ context.Context, storeID string) (models.StoreTargets, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.targets[storeID]
	if !ok {
		return models.StoreTargets{}, ErrUnknownStore
	}
	return t, nil
}

func (s *MemoryStore) AllTargets(_ context.Context) ([]models.StoreTargets, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.StoreTargets, 0, len(s.targets))
	for _, t := range s.targets {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StoreID < out[j].StoreID })
	return out, nil
}

func (s *MemoryStore) SaveTargets(_ context.Context, t models.StoreTargets) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targets[t.StoreID] = t
	return nil
}
