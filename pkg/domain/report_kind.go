package domain

// ReportKind names one of the fixed report shapes. Report shapes are known
// at design time; there are no ad-hoc queries.
type ReportKind string

const (
	ReportOverview    ReportKind = "overview"
	ReportFunnel      ReportKind = "funnel"
	ReportPerformance ReportKind = "performance"
	ReportQuality     ReportKind = "quality"
	ReportDashboard   ReportKind = "dashboard"
)

func (k ReportKind) String() string { return string(k) }
