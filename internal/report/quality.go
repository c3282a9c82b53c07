package report

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"pulse/internal/errlog"
	ts "pulse/internal/timeseries"
	id "pulse/pkg/domain"
)

const (
	qualityWindow    = 24 * time.Hour
	recentErrorLimit = 10
)

const (
	deliveryStatusDelivered = "delivered"
	deliveryStatusFailed    = "failed"
	deliveryStatusRetrying  = "retrying"
)

// computeQuality reports on the trailing 24 hours: structural validation
// counts from the event and invalid-event tables, conversion-API delivery
// outcomes, and the most frequent error-log entries from the relational
// store.
func (s *Service) computeQuality(ctx context.Context, projectID id.ProjectID, now time.Time) (*Quality, error) {
	since := now.Add(-qualityWindow).Unix()
	until := now.Unix()

	var (
		valid     countRow
		invalid   countRow
		delivery  []statusRow
		topErrors []errlog.GroupedError
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		q := ts.Select("count() AS total").
			From(ts.TableEvents).
			Where(
				ts.EqString(ts.ColProjectID, projectID.String()),
				ts.Between(ts.ColIngestedAt, since, until),
			)
		row, err := ts.QueryOne[countRow](gctx, s.store, q)
		if err != nil {
			return err
		}
		valid = row
		return nil
	})

	g.Go(func() error {
		q := ts.Select("count() AS total").
			From(ts.TableInvalidEvents).
			Where(
				ts.EqString(ts.ColProjectID, projectID.String()),
				ts.Between(ts.ColIngestedAt, since, until),
			)
		row, err := ts.QueryOne[countRow](gctx, s.store, q)
		if err != nil {
			return err
		}
		invalid = row
		return nil
	})

	g.Go(func() error {
		q := ts.Select("status", "count() AS total").
			From(ts.TableDeliveryLogs).
			Where(
				ts.EqString(ts.ColProjectID, projectID.String()),
				ts.Between(ts.ColTimestamp, since, until),
			).
			GroupBy(ts.ColStatus)
		rows, err := ts.QueryRows[statusRow](gctx, s.store, q)
		if err != nil {
			return err
		}
		delivery = rows
		return nil
	})

	g.Go(func() error {
		rows, err := s.errors.TopGrouped(gctx, projectID, recentErrorLimit)
		if err != nil {
			return err
		}
		topErrors = rows
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	validation := EventValidation{
		ValidEvents:    valid.Total,
		InvalidEvents:  invalid.Total,
		TotalEvents:    valid.Total + invalid.Total,
		ValidationRate: 100,
	}
	if validation.TotalEvents > 0 {
		validation.ValidationRate = roundRate(validation.ValidEvents, validation.TotalEvents)
	}

	del := Delivery{DeliveryRate: 100}
	for _, row := range delivery {
		del.Total += row.Total
		switch row.Status {
		case deliveryStatusDelivered:
			del.Delivered += row.Total
		case deliveryStatusFailed:
			del.Failed += row.Total
		case deliveryStatusRetrying:
			del.Retrying += row.Total
		}
	}
	if del.Total > 0 {
		del.DeliveryRate = roundRate(del.Delivered, del.Total)
	}

	if topErrors == nil {
		topErrors = []errlog.GroupedError{}
	}

	return &Quality{
		EventValidation: validation,
		MetaDelivery:    del,
		RecentErrors:    topErrors,
	}, nil
}
