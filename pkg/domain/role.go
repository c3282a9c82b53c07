package domain

import "fmt"

// Role is a principal's role within a tenant.
// This is a domain primitive that enforces validity at parse time.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleViewer Role = "viewer"
)

var validRoles = map[Role]struct{}{
	RoleOwner:  {},
	RoleAdmin:  {},
	RoleMember: {},
	RoleViewer: {},
}

// ParseRole validates and returns a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := validRoles[r]; !ok {
		return "", fmt.Errorf("unknown role: %s", s)
	}
	return r, nil
}

func (r Role) String() string { return string(r) }

// In reports whether r is a member of the given set. An empty set means
// any role is acceptable.
func (r Role) In(roles []Role) bool {
	if len(roles) == 0 {
		return true
	}
	for _, allowed := range roles {
		if r == allowed {
			return true
		}
	}
	return false
}
