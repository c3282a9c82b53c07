// Package report turns raw event rows in the time-series store into
// dashboard-ready aggregates: overview stats, conversion funnels,
// channel-attribution performance and data-quality metrics. Reports are
// ephemeral; they exist only as cached blobs keyed by their inputs and are
// recomputed on cache miss.
package report

import (
	"pulse/internal/errlog"
)

// Overview is the headline dashboard report for one project and window.
type Overview struct {
	TotalEvents    int64        `json:"totalEvents"`
	UniqueUsers    int64        `json:"uniqueUsers"`
	UniqueSessions int64        `json:"uniqueSessions"`
	EventsToday    int64        `json:"eventsToday"`
	// EventsTrend is a signed percentage versus the comparison window of
	// identical length immediately preceding; 0 when there is no comparable
	// previous period.
	EventsTrend int          `json:"eventsTrend"`
	TopEvents   []EventCount `json:"topEvents"`
	EventsByDay []DayCount   `json:"eventsByDay"`
}

// EventCount is one event name with its occurrence count.
type EventCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// DayCount is one calendar day's event count.
type DayCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// FunnelStep is one step's reach within a funnel.
type FunnelStep struct {
	Name string `json:"name"`
	// Count is the distinct visitors who fired this event name within the
	// window, independent of step order.
	Count int64 `json:"count"`
	// Percentage is relative to the previous step (100 for step 0).
	Percentage int `json:"percentage"`
	// Dropoff is previous step count minus this step count (0 for step 0).
	Dropoff int64 `json:"dropoff"`
}

// Funnel is the step-reach funnel report.
type Funnel struct {
	Steps          []FunnelStep `json:"steps"`
	ConversionRate int          `json:"conversionRate"`
	TotalStarted   int64        `json:"totalStarted"`
	TotalCompleted int64        `json:"totalCompleted"`
}

// ChannelStats aggregates one attribution dimension value.
type ChannelStats struct {
	Name     string  `json:"name"`
	Events   int64   `json:"events"`
	Visitors int64   `json:"visitors"`
	Sessions int64   `json:"sessions,omitempty"`
	Revenue  float64 `json:"revenue"`
}

// Performance is the channel-attribution report.
type Performance struct {
	BySource          []ChannelStats `json:"bySource"`
	ByMedium          []ChannelStats `json:"byMedium"`
	ByCampaign        []ChannelStats `json:"byCampaign"`
	TotalRevenue      float64        `json:"totalRevenue"`
	TotalOrders       int64          `json:"totalOrders"`
	AverageOrderValue float64        `json:"averageOrderValue"`
}

// EventValidation summarizes structural validity of events ingested in the
// trailing 24 hours.
type EventValidation struct {
	ValidEvents   int64 `json:"validEvents"`
	InvalidEvents int64 `json:"invalidEvents"`
	TotalEvents   int64 `json:"totalEvents"`
	// ValidationRate defaults to 100 when no events arrived; no data is
	// "fully valid", not a failure.
	ValidationRate int `json:"validationRate"`
}

// Delivery aggregates conversion-API forwarding attempts by status.
type Delivery struct {
	Total     int64 `json:"total"`
	Delivered int64 `json:"delivered"`
	Failed    int64 `json:"failed"`
	Retrying  int64 `json:"retrying"`
	// DeliveryRate defaults to 100 when no deliveries were attempted.
	DeliveryRate int `json:"deliveryRate"`
}

// Quality is the data-quality report over a fixed trailing 24-hour window.
type Quality struct {
	EventValidation EventValidation       `json:"eventValidation"`
	MetaDelivery    Delivery              `json:"metaDelivery"`
	RecentErrors    []errlog.GroupedError `json:"recentErrors"`
}

// DashboardTotals sums overview counters across a tenant's projects.
type DashboardTotals struct {
	TotalEvents    int64 `json:"totalEvents"`
	UniqueUsers    int64 `json:"uniqueUsers"`
	UniqueSessions int64 `json:"uniqueSessions"`
	Projects       int   `json:"projects"`
}

// Dashboard is a partial-result aggregate: a project whose queries fail
// contributes zero and is listed in FailedProjects so callers can render a
// warning instead of a silently incomplete dashboard.
type Dashboard struct {
	Totals         DashboardTotals `json:"totals"`
	FailedProjects []string        `json:"failedProjects,omitempty"`
}

// DefaultFunnelSteps is the e-commerce funnel used when the caller supplies
// no steps. An empty step list is always replaced by this, never computed
// as an empty funnel.
var DefaultFunnelSteps = []string{
	"page_view",
	"view_content",
	"add_to_cart",
	"initiate_checkout",
	"purchase",
}
