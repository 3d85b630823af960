package models

// Report types
const (
	ReportTop    = "top"
	ReportRecent = "recent"
	ReportSearch = "search"
)

// Report output formats
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Report limits
const (
	DefaultReportLimit = 200
	MaxReportLimit     = 1000
	DefaultRecentDays  = 7
)

// ReportRequest is a parsed, clamped report query. It is never persisted.
type ReportRequest struct {
	Type        string
	Format      string
	Query       string
	MinFeedback float64
	Days        int
	Limit       int
}

// SearchParams are the arguments of the products_by_keyword function.
type SearchParams struct {
	Query       string
	MinFeedback float64
	Days        int
	MaxRows     int
}
