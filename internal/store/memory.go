package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps assessments in process. It is used when no database is
// configured; contents are lost on restart.
type MemoryStore struct {
	mu          sync.RWMutex
	assessments map[uuid.UUID]*Assessment
	seq         map[uuid.UUID]uint64
	next        uint64
	now         func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		assessments: make(map[uuid.UUID]*Assessment),
		seq:         make(map[uuid.UUID]uint64),
		now:         time.Now,
	}
}

func (m *MemoryStore) CreateAssessment(_ context.Context, a *Assessment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.CreatedAt = m.now().UTC()
	cp := *a
	m.assessments[a.ID] = &cp
	m.next++
	m.seq[a.ID] = m.next
	return nil
}

func (m *MemoryStore) GetAssessment(_ context.Context, id uuid.UUID) (*Assessment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.assessments[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (m *MemoryStore) ListAssessments(_ context.Context, filter AssessmentFilter) ([]*Assessment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*Assessment
	for _, a := range m.assessments {
		if filter.Kind != "" && a.Kind != filter.Kind {
			continue
		}
		if filter.Mode != "" && a.Mode != filter.Mode {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	// Newest first; insertion order breaks timestamp ties.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return m.seq[out[i].ID] > m.seq[out[j].ID]
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *MemoryStore) GetStats(_ context.Context) (*AssessmentStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stats := &AssessmentStats{ByEffect: make(map[string]int)}
	for _, a := range m.assessments {
		stats.Total++
		if a.Kind == KindMission {
			stats.Missions++
		}
		if a.FluxLive != nil && !*a.FluxLive {
			stats.FluxFallbacks++
		}
		stats.ByEffect[a.Effect]++
	}
	return stats, nil
}

func (m *MemoryStore) Close() error { return nil }
