package errlog

import (
	"context"
	"sort"
	"sync"

	id "pulse/pkg/domain"
)

// MemoryStore is an in-memory Store for tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[id.ProjectID][]GroupedError
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[id.ProjectID][]GroupedError)}
}

// Add seeds grouped errors for a project.
func (s *MemoryStore) Add(projectID id.ProjectID, errs ...GroupedError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[projectID] = append(s.entries[projectID], errs...)
}

func (s *MemoryStore) TopGrouped(_ context.Context, projectID id.ProjectID, limit int) ([]GroupedError, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]GroupedError, len(s.entries[projectID]))
	copy(out, s.entries[projectID])
	sort.Slice(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
