package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"pulse/internal/platform/postgres"
	id "pulse/pkg/domain"
	"pulse/pkg/platform/sentinel"
)

// PostgresStore reads projects and memberships from the relational store.
type PostgresStore struct {
	pool *postgres.Pool
}

func NewPostgresStore(pool *postgres.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) FindByIDAndTenant(ctx context.Context, projectID id.ProjectID, tenantID id.TenantID) (*Project, error) {
	const q = `SELECT id, tenant_id, name FROM projects WHERE id = $1 AND tenant_id = $2`

	var (
		rawID     string
		rawTenant string
		name      string
	)
	err := s.pool.QueryRow(ctx, q, projectID.String(), tenantID.String()).
		Scan(&rawID, &rawTenant, &name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find project: %w", err)
	}
	pid, err := id.ParseProjectID(rawID)
	if err != nil {
		return nil, fmt.Errorf("project row: %w", err)
	}
	tid, err := id.ParseTenantID(rawTenant)
	if err != nil {
		return nil, fmt.Errorf("project row: %w", err)
	}
	return &Project{ID: pid, TenantID: tid, Name: name}, nil
}

func (s *PostgresStore) ListIDsByTenant(ctx context.Context, tenantID id.TenantID) ([]id.ProjectID, error) {
	const q = `SELECT id FROM projects WHERE tenant_id = $1 ORDER BY created_at`

	rows, err := s.pool.Query(ctx, q, tenantID.String())
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var ids []id.ProjectID
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan project id: %w", err)
		}
		projectID, err := id.ParseProjectID(raw)
		if err != nil {
			return nil, fmt.Errorf("project row: %w", err)
		}
		ids = append(ids, projectID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return ids, nil
}

func (s *PostgresStore) FindRole(ctx context.Context, userID id.UserID, tenantID id.TenantID) (id.Role, error) {
	const q = `SELECT role FROM memberships WHERE user_id = $1 AND tenant_id = $2`

	var raw string
	err := s.pool.QueryRow(ctx, q, userID.String(), tenantID.String()).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", sentinel.ErrNotFound
		}
		return "", fmt.Errorf("find membership: %w", err)
	}
	role, err := id.ParseRole(raw)
	if err != nil {
		return "", fmt.Errorf("membership row: %w", err)
	}
	return role, nil
}
