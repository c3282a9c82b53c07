package report

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"pulse/internal/report/cache"
	ts "pulse/internal/timeseries"
	id "pulse/pkg/domain"
	"pulse/pkg/requestcontext"
)

// dashboardConcurrency bounds the per-project fan-out so a tenant with many
// projects cannot flood the store.
const dashboardConcurrency = 4

// GetTenantDashboard sums overview totals across every project of the
// tenant over the default window. This is a partial-result aggregate: a
// project whose query fails contributes zero and is listed in
// FailedProjects, so one unhealthy project never blanks the whole tenant
// dashboard.
func (s *Service) GetTenantDashboard(ctx context.Context, tenantID id.TenantID, principalID id.UserID) (*Dashboard, error) {
	if err := s.guard.CheckMembership(ctx, tenantID, principalID); err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)
	r, err := ParseDateRange(now, "", "")
	if err != nil {
		return nil, err
	}

	key := cache.BuildKey(tenantID.String(), id.ReportDashboard, map[string]string{
		"start": r.StartDate(),
		"end":   r.EndDate(),
	})

	return fetchCached(ctx, s, key, id.ReportDashboard, cache.TTLFresh, func(ctx context.Context) (*Dashboard, error) {
		return s.computeDashboard(ctx, tenantID, r)
	})
}

func (s *Service) computeDashboard(ctx context.Context, tenantID id.TenantID, r DateRange) (*Dashboard, error) {
	projectIDs, err := s.projects.ListIDsByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	var (
		mu     sync.Mutex
		out    Dashboard
		failed []string
	)
	out.Totals.Projects = len(projectIDs)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(dashboardConcurrency)
	for _, projectID := range projectIDs {
		g.Go(func() error {
			q := ts.Select(
				"count() AS total",
				"uniqExact(anonymous_id) AS visitors",
				"uniqExact(session_id) AS sessions",
			).
				From(ts.TableEvents).
				Where(
					ts.EqString(ts.ColProjectID, projectID.String()),
					ts.Between(ts.ColTimestamp, r.StartUnix(), r.EndUnix()),
				)
			row, err := ts.QueryOne[totalsRow](gctx, s.store, q)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// One unhealthy project contributes zero; the caller
				// renders a warning from FailedProjects.
				failed = append(failed, projectID.String())
				if s.logger != nil {
					s.logger.WarnContext(gctx, "dashboard project query failed",
						"project_id", projectID.String(), "error", err)
				}
				return nil
			}
			out.Totals.TotalEvents += row.Total
			out.Totals.UniqueUsers += row.Visitors
			out.Totals.UniqueSessions += row.Sessions
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(failed)
	out.FailedProjects = failed
	return &out, nil
}
