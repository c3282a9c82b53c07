package report

import (
	"time"

	dErrors "pulse/pkg/domain-errors"
)

const dateLayout = "2006-01-02"

// defaultWindowDays is the default reporting window: the last 30 calendar
// days ending today, inclusive.
const defaultWindowDays = 30

// DateRange is an inclusive calendar-date window. Start is midnight UTC of
// the first day; End is 23:59:59 UTC of the last day.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateRange validates optional YYYY-MM-DD bounds against the request
// clock. Malformed input is rejected with a validation error before any
// query is issued.
func ParseDateRange(now time.Time, startStr, endStr string) (DateRange, error) {
	today := dateOf(now)

	end := today
	if endStr != "" {
		parsed, err := time.ParseInLocation(dateLayout, endStr, time.UTC)
		if err != nil {
			return DateRange{}, dErrors.Newf(dErrors.CodeValidation, "invalid end date %q", endStr)
		}
		end = parsed
	}

	start := end.AddDate(0, 0, -(defaultWindowDays - 1))
	if startStr != "" {
		parsed, err := time.ParseInLocation(dateLayout, startStr, time.UTC)
		if err != nil {
			return DateRange{}, dErrors.Newf(dErrors.CodeValidation, "invalid start date %q", startStr)
		}
		start = parsed
	}

	if start.After(end) {
		return DateRange{}, dErrors.New(dErrors.CodeValidation, "start date is after end date")
	}

	return DateRange{
		Start: start,
		End:   endOfDay(end),
	}, nil
}

// PeriodDays is ceil((end-start)/86400) with a floor of one day.
func (r DateRange) PeriodDays() int {
	secs := r.End.Unix() - r.Start.Unix()
	days := int((secs + 86399) / 86400)
	if days < 1 {
		return 1
	}
	return days
}

// Previous returns the comparison window of identical length immediately
// preceding this one.
func (r DateRange) Previous() DateRange {
	return DateRange{
		Start: r.Start.AddDate(0, 0, -r.PeriodDays()),
		End:   r.Start.Add(-time.Second),
	}
}

// StartUnix and EndUnix are the second-granularity bounds used in store
// predicates.
func (r DateRange) StartUnix() int64 { return r.Start.Unix() }
func (r DateRange) EndUnix() int64   { return r.End.Unix() }

// StartDate and EndDate render the calendar bounds for cache keys.
func (r DateRange) StartDate() string { return r.Start.UTC().Format(dateLayout) }
func (r DateRange) EndDate() string   { return r.End.UTC().Format(dateLayout) }

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func endOfDay(day time.Time) time.Time {
	y, m, d := day.UTC().Date()
	return time.Date(y, m, d, 23, 59, 59, 0, time.UTC)
}
