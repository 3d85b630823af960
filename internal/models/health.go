package models

// ProbeResult is the outcome of a single dependency probe.
type ProbeResult struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
	Status int    `json:"status,omitempty"`
}

// HealthReport aggregates all probe results.
type HealthReport struct {
	OK             bool        `json:"ok"`
	Storage        ProbeResult `json:"storage"`
	ProductsReport ProbeResult `json:"products_report"`
}
