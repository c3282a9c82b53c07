// Package cache sits in front of the report computers. It owns key
// construction, the recency-driven TTL policy, and the key-value store
// wrappers. Caching is a performance optimization only: every failure mode
// degrades to a recompute, never to an error.
package cache

import (
	"sort"
	"strings"

	id "pulse/pkg/domain"
)

// BuildKey derives a deterministic cache key from a tenant-scoped resource
// id, a report kind, and the report parameters. Params with empty values
// are dropped and the rest are sorted by name, so two logically identical
// requests hit the same entry regardless of how the caller assembled its
// parameter map.
func BuildKey(resourceID string, kind id.ReportKind, params map[string]string) string {
	names := make([]string, 0, len(params))
	for name, value := range params {
		if value == "" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString(resourceID)
	b.WriteByte(':')
	b.WriteString(kind.String())
	b.WriteByte(':')
	for i, name := range names {
		if i > 0 {
			b.WriteByte(':')
		}
		b.WriteString(name)
		b.WriteByte(':')
		b.WriteString(params[name])
	}
	return b.String()
}
