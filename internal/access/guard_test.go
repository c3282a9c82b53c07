package access

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	dErrors "pulse/pkg/domain-errors"
	id "pulse/pkg/domain"
)

// =============================================================================
// Access Guard Test Suite
// =============================================================================
// Justification for unit tests: the guard is the only thing standing between
// a warm cache entry and a principal whose access was revoked.

type GuardSuite struct {
	suite.Suite
	store *MemoryStore
	guard *Guard

	tenantID  id.TenantID
	projectID id.ProjectID
	userID    id.UserID
}

func TestGuardSuite(t *testing.T) {
	suite.Run(t, new(GuardSuite))
}

func (s *GuardSuite) SetupTest() {
	s.store = NewMemoryStore()

	var err error
	s.guard, err = NewGuard(s.store, s.store)
	s.Require().NoError(err)

	s.tenantID = id.TenantID(uuid.New())
	s.projectID = id.ProjectID(uuid.New())
	s.userID = id.UserID(uuid.New())

	s.store.AddProject(Project{ID: s.projectID, TenantID: s.tenantID, Name: "shop"})
	s.store.AddMembership(Membership{UserID: s.userID, TenantID: s.tenantID, Role: id.RoleMember})
}

func (s *GuardSuite) TestNewGuard() {
	s.Run("nil project store returns error", func() {
		_, err := NewGuard(nil, s.store)
		s.Error(err)
	})

	s.Run("nil membership store returns error", func() {
		_, err := NewGuard(s.store, nil)
		s.Error(err)
	})
}

func (s *GuardSuite) TestCheckAccess() {
	ctx := context.Background()

	s.Run("member of owning tenant passes", func() {
		s.NoError(s.guard.CheckAccess(ctx, s.projectID, s.tenantID, s.userID))
	})

	s.Run("unknown project is not found", func() {
		err := s.guard.CheckAccess(ctx, id.ProjectID(uuid.New()), s.tenantID, s.userID)
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("project under another tenant is not found", func() {
		otherTenant := id.TenantID(uuid.New())
		s.store.AddMembership(Membership{UserID: s.userID, TenantID: otherTenant, Role: id.RoleOwner})

		err := s.guard.CheckAccess(ctx, s.projectID, otherTenant, s.userID)
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("principal without membership is forbidden", func() {
		err := s.guard.CheckAccess(ctx, s.projectID, s.tenantID, id.UserID(uuid.New()))
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("role outside the allowed set is forbidden", func() {
		err := s.guard.CheckAccess(ctx, s.projectID, s.tenantID, s.userID, id.RoleOwner, id.RoleAdmin)
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("role inside the allowed set passes", func() {
		s.NoError(s.guard.CheckAccess(ctx, s.projectID, s.tenantID, s.userID, id.RoleMember))
	})

	s.Run("empty allowed set permits any role", func() {
		s.NoError(s.guard.CheckAccess(ctx, s.projectID, s.tenantID, s.userID))
	})
}

func (s *GuardSuite) TestCheckMembership() {
	ctx := context.Background()

	s.Run("member passes", func() {
		s.NoError(s.guard.CheckMembership(ctx, s.tenantID, s.userID))
	})

	s.Run("non-member is forbidden", func() {
		err := s.guard.CheckMembership(ctx, s.tenantID, id.UserID(uuid.New()))
		s.Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})
}
