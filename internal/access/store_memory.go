package access

import (
	"context"
	"sync"

	id "pulse/pkg/domain"
	"pulse/pkg/platform/sentinel"
)

// MemoryStore is an in-memory ProjectStore + MembershipStore for tests and
// local development.
type MemoryStore struct {
	mu          sync.RWMutex
	projects    map[id.ProjectID]*Project
	memberships map[memberKey]id.Role
}

type memberKey struct {
	userID   id.UserID
	tenantID id.TenantID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		projects:    make(map[id.ProjectID]*Project),
		memberships: make(map[memberKey]id.Role),
	}
}

// AddProject seeds a project.
func (s *MemoryStore) AddProject(p Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := p
	s.projects[p.ID] = &cp
}

// AddMembership seeds a membership.
func (s *MemoryStore) AddMembership(m Membership) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memberships[memberKey{m.UserID, m.TenantID}] = m.Role
}

func (s *MemoryStore) FindByIDAndTenant(_ context.Context, projectID id.ProjectID, tenantID id.TenantID) (*Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[projectID]
	if !ok || p.TenantID != tenantID {
		return nil, sentinel.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *MemoryStore) ListIDsByTenant(_ context.Context, tenantID id.TenantID) ([]id.ProjectID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var ids []id.ProjectID
	for _, p := range s.projects {
		if p.TenantID == tenantID {
			ids = append(ids, p.ID)
		}
	}
	return ids, nil
}

func (s *MemoryStore) FindRole(_ context.Context, userID id.UserID, tenantID id.TenantID) (id.Role, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	role, ok := s.memberships[memberKey{userID, tenantID}]
	if !ok {
		return "", sentinel.ErrNotFound
	}
	return role, nil
}
