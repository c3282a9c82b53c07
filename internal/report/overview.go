package report

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	ts "pulse/internal/timeseries"
	id "pulse/pkg/domain"
)

const topEventsLimit = 10

// computeOverview issues five independent queries concurrently: window
// totals, comparison-window total, today's count, top event names, and the
// daily series. The computation does not proceed until all return; the
// first failure cancels the siblings and propagates.
func (s *Service) computeOverview(ctx context.Context, projectID id.ProjectID, r DateRange, now time.Time) (*Overview, error) {
	prev := r.Previous()
	midnight := dateOf(now)

	var (
		totals    totalsRow
		prevTotal countRow
		today     countRow
		topEvents []eventNameRow
		byDay     []dayCountRow
	)

	g, gctx := errgroup.WithContext(ctx)

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
		if err != nil {
			return err
		}
		totals = row
		return nil
	})

	g.Go(func() error {
		q := ts.Select("count() AS total").
			From(ts.TableEvents).
			Where(
				ts.EqString(ts.ColProjectID, projectID.String()),
				ts.Between(ts.ColTimestamp, prev.StartUnix(), prev.EndUnix()),
			)
		row, err := ts.QueryOne[countRow](gctx, s.store, q)
		if err != nil {
			return err
		}
		prevTotal = row
		return nil
	})

	g.Go(func() error {
		q := ts.Select("count() AS total").
			From(ts.TableEvents).
			Where(
				ts.EqString(ts.ColProjectID, projectID.String()),
				ts.Between(ts.ColTimestamp, midnight.Unix(), now.Unix()),
			)
		row, err := ts.QueryOne[countRow](gctx, s.store, q)
		if err != nil {
			return err
		}
		today = row
		return nil
	})

	g.Go(func() error {
		q := ts.Select("event_name AS name", "count() AS total").
			From(ts.TableEvents).
			Where(
				ts.EqString(ts.ColProjectID, projectID.String()),
				ts.Between(ts.ColTimestamp, r.StartUnix(), r.EndUnix()),
			).
			GroupBy(ts.ColEventName).
			OrderByDesc("total").
			Limit(topEventsLimit)
		rows, err := ts.QueryRows[eventNameRow](gctx, s.store, q)
		if err != nil {
			return err
		}
		topEvents = rows
		return nil
	})

	g.Go(func() error {
		q := ts.Select("toDate(toDateTime(timestamp)) AS day", "count() AS total").
			From(ts.TableEvents).
			Where(
				ts.EqString(ts.ColProjectID, projectID.String()),
				ts.Between(ts.ColTimestamp, r.StartUnix(), r.EndUnix()),
			).
			GroupByExpr("day").
			OrderByAsc("day")
		rows, err := ts.QueryRows[dayCountRow](gctx, s.store, q)
		if err != nil {
			return err
		}
		byDay = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &Overview{
		TotalEvents:    totals.Total,
		UniqueUsers:    totals.Visitors,
		UniqueSessions: totals.Sessions,
		EventsToday:    today.Total,
		EventsTrend:    trendPercent(totals.Total, prevTotal.Total),
		TopEvents:      make([]EventCount, 0, len(topEvents)),
		EventsByDay:    make([]DayCount, 0, len(byDay)),
	}
	for _, row := range topEvents {
		out.TopEvents = append(out.TopEvents, EventCount{Name: row.Name, Count: row.Total})
	}
	for _, row := range byDay {
		out.EventsByDay = append(out.EventsByDay, DayCount{Date: row.Day, Count: row.Total})
	}
	return out, nil
}
