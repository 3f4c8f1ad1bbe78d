package store

import (
	"context"
	"slices"
	"strings"
	"sync"
)

// MemoryStore keeps reports in a map.
type MemoryStore struct {
	mu      sync.RWMutex
	reports map[string]*Report
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{reports: make(map[string]*Report)}
}

func (s *MemoryStore) Save(_ context.Context, r *Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *r
	s.reports[r.ID] = &cp
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[id]
	if !ok {
		return nil, notFound(id)
	}
	cp := *r
	return &cp, nil
}

func (s *MemoryStore) ListByClaim(_ context.Context, claim string, limit int) ([]*Report, error) {
	s.mu.RLock()
	var out []*Report
	for _, r := range s.reports {
		if claim == "" || r.Claim == claim {
			cp := *r
			out = append(out, &cp)
		}
	}
	s.mu.RUnlock()
	return newestFirst(out, limit), nil
}

func (s *MemoryStore) Close() error { return nil }

// newestFirst sorts by start time, most recent first, and truncates.
func newestFirst(rs []*Report, limit int) []*Report {
	slices.SortFunc(rs, func(a, b *Report) int {
		if c := b.StartedAt.Compare(a.StartedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	if limit > 0 && len(rs) > limit {
		rs = rs[:limit]
	}
	return rs
}

var _ Store = (*MemoryStore)(nil)
