// Package access verifies that a calling principal may see a project's
// reports. It is read-only against the relational store owned by the
// (out-of-scope) tenant/project CRUD layer.
package access

import (
	id "pulse/pkg/domain"
)

// Project is the ownership link between a tenant and a tracked site/app.
// Only the fields the guard needs are modeled here; the full entity belongs
// to the project CRUD layer.
type Project struct {
	ID       id.ProjectID
	TenantID id.TenantID
	Name     string
}

// Membership maps a principal to a role within a tenant.
type Membership struct {
	UserID   id.UserID
	TenantID id.TenantID
	Role     id.Role
}
