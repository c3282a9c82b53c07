package errlog

import (
	"context"
	"fmt"

	"pulse/internal/platform/postgres"
	id "pulse/pkg/domain"
)

// PostgresStore reads the event_errors table.
type PostgresStore struct {
	pool *postgres.Pool
}

func NewPostgresStore(pool *postgres.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) TopGrouped(ctx context.Context, projectID id.ProjectID, limit int) ([]GroupedError, error) {
	const q = `
		SELECT error_type, message, count(*) AS occurrences
		FROM event_errors
		WHERE project_id = $1
		GROUP BY error_type, message
		ORDER BY occurrences DESC
		LIMIT $2`

	rows, err := s.pool.Query(ctx, q, projectID.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("query event errors: %w", err)
	}
	defer rows.Close()

	var out []GroupedError
	for rows.Next() {
		var ge GroupedError
		if err := rows.Scan(&ge.ErrorType, &ge.Message, &ge.Count); err != nil {
			return nil, fmt.Errorf("scan event error row: %w", err)
		}
		out = append(out, ge)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query event errors: %w", err)
	}
	return out, nil
}
