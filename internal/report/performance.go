package report

import (
	"context"

	"golang.org/x/sync/errgroup"

	ts "pulse/internal/timeseries"
	id "pulse/pkg/domain"
)

const channelRowLimit = 20

// computePerformance runs the four attribution aggregations concurrently:
// group-by UTM source (with sessions), medium, campaign, and the overall
// purchase revenue totals.
func (s *Service) computePerformance(ctx context.Context, projectID id.ProjectID, r DateRange) (*Performance, error) {
	var (
		bySource   []channelRow
		byMedium   []channelRow
		byCampaign []channelRow
		revenue    revenueRow
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		rows, err := s.queryChannel(gctx, projectID, r, ts.ColUTMSource, true)
		if err != nil {
			return err
		}
		bySource = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.queryChannel(gctx, projectID, r, ts.ColUTMMedium, false)
		if err != nil {
			return err
		}
		byMedium = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.queryChannel(gctx, projectID, r, ts.ColUTMCampaign, false)
		if err != nil {
			return err
		}
		byCampaign = rows
		return nil
	})
	g.Go(func() error {
		q := ts.Select("sum(value) AS revenue", "count() AS orders").
			From(ts.TableEvents).
			Where(
				ts.EqString(ts.ColProjectID, projectID.String()),
				ts.EqString(ts.ColEventName, "purchase"),
				ts.GtFloat(ts.ColValue, 0),
				ts.Between(ts.ColTimestamp, r.StartUnix(), r.EndUnix()),
			)
		row, err := ts.QueryOne[revenueRow](gctx, s.store, q)
		if err != nil {
			return err
		}
		revenue = row
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Performance{
		BySource:     toChannelStats(bySource, true),
		ByMedium:     toChannelStats(byMedium, false),
		ByCampaign:   toChannelStats(byCampaign, false),
		TotalRevenue: revenue.Revenue,
		TotalOrders:  revenue.Orders,
	}
	if revenue.Orders > 0 {
		out.AverageOrderValue = revenue.Revenue / float64(revenue.Orders)
	}
	return out, nil
}

// queryChannel is one group-by over an attribution dimension. Rows with an
// empty dimension value are excluded; output is the top rows by event count.
func (s *Service) queryChannel(ctx context.Context, projectID id.ProjectID, r DateRange, dim ts.Column, withSessions bool) ([]channelRow, error) {
	selects := []string{
		string(dim) + " AS dimension",
		"count() AS total",
		"uniqExact(anonymous_id) AS visitors",
	}
	if withSessions {
		selects = append(selects, "uniqExact(session_id) AS sessions")
	}
	selects = append(selects, "sumIf(value, event_name = 'purchase') AS revenue")

	q := ts.Select(selects...).
		From(ts.TableEvents).
		Where(
			ts.EqString(ts.ColProjectID, projectID.String()),
			ts.Between(ts.ColTimestamp, r.StartUnix(), r.EndUnix()),
			ts.NotEmpty(dim),
		).
		GroupBy(dim).
		OrderByDesc("total").
		Limit(channelRowLimit)
	return ts.QueryRows[channelRow](ctx, s.store, q)
}

func toChannelStats(rows []channelRow, withSessions bool) []ChannelStats {
	out := make([]ChannelStats, 0, len(rows))
	for _, row := range rows {
		cs := ChannelStats{
			Name:     row.Dimension,
			Events:   row.Total,
			Visitors: row.Visitors,
			Revenue:  row.Revenue,
		}
		if withSessions {
			cs.Sessions = row.Sessions
		}
		out = append(out, cs)
	}
	return out
}
