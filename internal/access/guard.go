package access

import (
	"context"
	"errors"
	"log/slog"

	dErrors "pulse/pkg/domain-errors"
	id "pulse/pkg/domain"
	"pulse/pkg/platform/sentinel"
)

// Guard answers one question: may this principal see this project's
// reports? It must run before any cache lookup so that revoked access is
// never served from a still-warm cache entry.
type Guard struct {
	projects    ProjectStore
	memberships MembershipStore
	logger      *slog.Logger
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

func WithLogger(logger *slog.Logger) GuardOption {
	return func(g *Guard) {
		g.logger = logger
	}
}

func NewGuard(projects ProjectStore, memberships MembershipStore, opts ...GuardOption) (*Guard, error) {
	if projects == nil {
		return nil, errors.New("project store is required")
	}
	if memberships == nil {
		return nil, errors.New("membership store is required")
	}
	g := &Guard{projects: projects, memberships: memberships}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// CheckAccess fails with not_found if the project does not exist under the
// tenant, and with forbidden if the principal has no membership in the
// tenant or its role is outside the allowed set. An empty allowedRoles set
// permits any role. Read-only; no side effects.
func (g *Guard) CheckAccess(ctx context.Context, projectID id.ProjectID, tenantID id.TenantID, principalID id.UserID, allowedRoles ...id.Role) error {
	if _, err := g.projects.FindByIDAndTenant(ctx, projectID, tenantID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "project not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "project lookup failed")
	}

	role, err := g.memberships.FindRole(ctx, principalID, tenantID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeForbidden, "no membership in tenant")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "membership lookup failed")
	}

	if !role.In(allowedRoles) {
		if g.logger != nil {
			g.logger.WarnContext(ctx, "role denied",
				"tenant_id", tenantID.String(),
				"user_id", principalID.String(),
				"role", role.String(),
			)
		}
		return dErrors.New(dErrors.CodeForbidden, "role not permitted")
	}
	return nil
}

// CheckMembership is CheckAccess without a project: it gates tenant-level
// surfaces such as the dashboard aggregation.
func (g *Guard) CheckMembership(ctx context.Context, tenantID id.TenantID, principalID id.UserID, allowedRoles ...id.Role) error {
	role, err := g.memberships.FindRole(ctx, principalID, tenantID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeForbidden, "no membership in tenant")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "membership lookup failed")
	}
	if !role.In(allowedRoles) {
		return dErrors.New(dErrors.CodeForbidden, "role not permitted")
	}
	return nil
}
