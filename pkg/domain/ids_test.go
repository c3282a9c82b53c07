package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type DomainSuite struct {
	suite.Suite
}

func TestDomainSuite(t *testing.T) {
	suite.Run(t, new(DomainSuite))
}

func (s *DomainSuite) TestParseIDs() {
	raw := uuid.New().String()

	s.Run("round trips valid uuids", func() {
		pid, err := ParseProjectID(raw)
		s.Require().NoError(err)
		s.Equal(raw, pid.String())
		s.False(pid.IsNil())

		tid, err := ParseTenantID(raw)
		s.Require().NoError(err)
		s.Equal(raw, tid.String())

		userID, err := ParseUserID(raw)
		s.Require().NoError(err)
		s.Equal(raw, userID.String())
	})

	s.Run("rejects malformed input", func() {
		_, err := ParseProjectID("not-a-uuid")
		s.Error(err)
		_, err = ParseTenantID("")
		s.Error(err)
		_, err = ParseUserID("12345")
		s.Error(err)
	})

	s.Run("zero values are nil", func() {
		s.True(ProjectID{}.IsNil())
		s.True(TenantID{}.IsNil())
		s.True(UserID{}.IsNil())
	})
}

func (s *DomainSuite) TestParseRole() {
	for _, role := range []Role{RoleOwner, RoleAdmin, RoleMember, RoleViewer} {
		parsed, err := ParseRole(role.String())
		s.Require().NoError(err)
		s.Equal(role, parsed)
	}

	_, err := ParseRole("superuser")
	s.Error(err)
}

func (s *DomainSuite) TestRoleIn() {
	s.True(RoleMember.In(nil))
	s.True(RoleAdmin.In([]Role{RoleOwner, RoleAdmin}))
	s.False(RoleViewer.In([]Role{RoleOwner, RoleAdmin}))
}
