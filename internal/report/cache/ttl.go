package cache

import "time"

// The central caching invariant: fresher data is cached for less time.
// A window ending today is still receiving events; a window ending
// yesterday or earlier is settled and safe to cache for an hour.
const (
	// TTLFresh applies when the window's end date is today.
	TTLFresh = 60 * time.Second
	// TTLSettled applies when the window ended yesterday or earlier.
	TTLSettled = time.Hour
	// TTLDefault applies otherwise, and when Set is given no explicit TTL.
	TTLDefault = 300 * time.Second
)

// TTLForPeriod picks the TTL for a report over [start, end]. Only the end
// date matters; start is part of the signature so call sites read as the
// window they cache. A zero end time means the window defaults to ending
// today. Comparison is by UTC calendar date.
func TTLForPeriod(now, start, end time.Time) time.Duration {
	today := dateOf(now)
	if end.IsZero() {
		return TTLFresh
	}
	endDay := dateOf(end)
	switch {
	case endDay.Equal(today):
		return TTLFresh
	case endDay.Before(today):
		return TTLSettled
	default:
		return TTLDefault
	}
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
