package access

import (
	"context"

	id "pulse/pkg/domain"
)

// ProjectStore looks up project ownership. Implementations return
// sentinel.ErrNotFound when no project matches.
type ProjectStore interface {
	// FindByIDAndTenant returns the project only if it belongs to the tenant.
	FindByIDAndTenant(ctx context.Context, projectID id.ProjectID, tenantID id.TenantID) (*Project, error)

	// ListIDsByTenant returns all project ids owned by the tenant, for
	// dashboard aggregation.
	ListIDsByTenant(ctx context.Context, tenantID id.TenantID) ([]id.ProjectID, error)
}

// MembershipStore looks up a principal's role within a tenant.
// Implementations return sentinel.ErrNotFound when the principal has no
// membership.
type MembershipStore interface {
	FindRole(ctx context.Context, userID id.UserID, tenantID id.TenantID) (id.Role, error)
}
