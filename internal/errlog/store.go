// Package errlog reads the relational event-error log. Ingestion (out of
// scope) appends a row per rejected event; the Quality report surfaces the
// most frequent (errorType, message) pairs per project.
package errlog

import (
	"context"

	id "pulse/pkg/domain"
)

// GroupedError is one (errorType, message) pair annotated with how often it
// occurred.
type GroupedError struct {
	ErrorType string `json:"errorType"`
	Message   string `json:"message"`
	Count     int64  `json:"count"`
}

// Store exposes the grouped-count query the Quality report needs.
type Store interface {
	// TopGrouped returns the most frequent (errorType, message) pairs for
	// the project, ordered by occurrence count descending.
	TopGrouped(ctx context.Context, projectID id.ProjectID, limit int) ([]GroupedError, error)
}
