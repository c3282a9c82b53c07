package report

import (
	"context"

	"golang.org/x/sync/errgroup"

	ts "pulse/internal/timeseries"
	id "pulse/pkg/domain"
)

// computeFunnel counts distinct visitors who fired each step's event name
// within the window. Steps are evaluated independently, not as an ordered
// per-visitor path: this is deliberate "step reach" semantics, and
// dashboards are built against it. Do not change it to a sequential-path
// join.
func (s *Service) computeFunnel(ctx context.Context, projectID id.ProjectID, r DateRange, steps []string) (*Funnel, error) {
	if len(steps) == 0 {
		steps = DefaultFunnelSteps
	}

	counts := make([]int64, len(steps))
	g, gctx := errgroup.WithContext(ctx)
	for i, step := range steps {
		g.Go(func() error {
			q := ts.Select("uniqExact(anonymous_id) AS visitors").
				From(ts.TableEvents).
				Where(
					ts.EqString(ts.ColProjectID, projectID.String()),
					ts.EqString(ts.ColEventName, step),
					ts.Between(ts.ColTimestamp, r.StartUnix(), r.EndUnix()),
				)
			row, err := ts.QueryOne[visitorsRow](gctx, s.store, q)
			if err != nil {
				return err
			}
			counts[i] = row.Visitors
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Funnel{
		Steps:          make([]FunnelStep, len(steps)),
		TotalStarted:   counts[0],
		TotalCompleted: counts[len(counts)-1],
		ConversionRate: roundRate(counts[len(counts)-1], counts[0]),
	}
	for i, step := range steps {
		fs := FunnelStep{Name: step, Count: counts[i]}
		if i == 0 {
			fs.Percentage = 100
		} else {
			fs.Percentage = roundRate(counts[i], counts[i-1])
			fs.Dropoff = counts[i-1] - counts[i]
		}
		out.Steps[i] = fs
	}
	return out, nil
}
