package domain

import "time"

// Report sections used as the Category column of an export.
const (
	SectionKeyMetrics  = "KEY METRICS"
	SectionTotals      = "TOTALS"
	SectionPercentages = "PERCENTAGES"
)

// Metric names for the combined figures. Per-category and per-source rows
// use the category or source label as the metric.
const (
	MetricOptIns      = "Total Opt-Ins"
	MetricCXPlatforms = "CX Platforms"
	MetricDXPlatform  = "DX Platform"
)

// ReportRow is one metric line of an export.
type ReportRow struct {
	Category string `csv:"Category" json:"category"`
	Metric   string `csv:"Metric" json:"metric"`
	Value    string `csv:"Value" json:"value"`
}

// Report is the flat export of one period's stats.
type Report struct {
	Period   Period
	Filename string
	Rows     []ReportRow
}

// Value returns the value of the first row matching section and metric.
func (r *Report) Value(section, metric string) (string, bool) {
	for _, row := range r.Rows {
		if row.Category == section && row.Metric == metric {
			return row.Value, true
		}
	}
	return "", false
}

// UploadSummary describes the outcome of one upload.
type UploadSummary struct {
	// ID uniquely identifies the upload.
	ID string `json:"id"`

	// Period is the month the upload was stored under.
	Period Period `json:"-"`

	// UploadedAt is when the aggregate replaced the period's previous one.
	UploadedAt time.Time `json:"uploaded_at"`

	// RowsRead is the number of data rows parsed.
	RowsRead int `json:"rows_read"`

	// RowsCounted is the number of rows with a recognised source.
	RowsCounted int `json:"rows_counted"`

	// RowsDropped is the number of rows excluded for an unmapped channel code.
	RowsDropped int `json:"rows_dropped"`

	// DroppedCodes counts dropped rows by their raw channel code.
	DroppedCodes map[string]int `json:"dropped_codes,omitempty"`
}
