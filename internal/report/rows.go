package report

import "math"

// Typed row shapes for store responses. Decoding is strict at the store
// boundary (a malformed row rejects the query); a field the store omits for
// an empty aggregate decodes to zero.

type totalsRow struct {
	Total    int64 `json:"total"`
	Visitors int64 `json:"visitors"`
	Sessions int64 `json:"sessions"`
}

type countRow struct {
	Total int64 `json:"total"`
}

type eventNameRow struct {
	Name  string `json:"name"`
	Total int64  `json:"total"`
}

type dayCountRow struct {
	Day   string `json:"day"`
	Total int64  `json:"total"`
}

type visitorsRow struct {
	Visitors int64 `json:"visitors"`
}

type channelRow struct {
	Dimension string  `json:"dimension"`
	Total     int64   `json:"total"`
	Visitors  int64   `json:"visitors"`
	Sessions  int64   `json:"sessions"`
	Revenue   float64 `json:"revenue"`
}

type revenueRow struct {
	Revenue float64 `json:"revenue"`
	Orders  int64   `json:"orders"`
}

type statusRow struct {
	Status string `json:"status"`
	Total  int64  `json:"total"`
}

// roundRate is round(num/den*100) as a signed integer percentage, 0 when
// the denominator is not positive.
func roundRate(num, den int64) int {
	if den <= 0 {
		return 0
	}
	return int(math.Round(float64(num) / float64(den) * 100))
}

// trendPercent is the signed percentage change versus prev. A previous
// count of zero means "no comparable trend", not division by zero.
func trendPercent(total, prev int64) int {
	if prev <= 0 {
		return 0
	}
	return int(math.Round(float64(total-prev) / float64(prev) * 100))
}
