// Package domain holds identifier primitives shared across modules.
// IDs are typed wrappers over UUIDs so a project id can never be passed
// where a tenant id is expected.
package domain

import (
	"fmt"

	"github.com/google/uuid"
)

type (
	// TenantID identifies the billing/organizational unit owning projects.
	TenantID uuid.UUID

	// ProjectID identifies a tracked website/app scoped within a tenant.
	// It is the unit of report scoping.
	ProjectID uuid.UUID

	// UserID identifies a principal (a member of a tenant).
	UserID uuid.UUID
)

func (id TenantID) String() string  { return uuid.UUID(id).String() }
func (id ProjectID) String() string { return uuid.UUID(id).String() }
func (id UserID) String() string    { return uuid.UUID(id).String() }

func (id TenantID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id ProjectID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id UserID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }

// ParseTenantID validates and returns a TenantID.
func ParseTenantID(s string) (TenantID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return TenantID{}, fmt.Errorf("invalid tenant id: %w", err)
	}
	return TenantID(u), nil
}

// ParseProjectID validates and returns a ProjectID.
func ParseProjectID(s string) (ProjectID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ProjectID{}, fmt.Errorf("invalid project id: %w", err)
	}
	return ProjectID(u), nil
}

// ParseUserID validates and returns a UserID.
func ParseUserID(s string) (UserID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, fmt.Errorf("invalid user id: %w", err)
	}
	return UserID(u), nil
}
