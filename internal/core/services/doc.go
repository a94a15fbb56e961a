// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The aggregation, statistics and export formatting steps are plain
// functions over domain values so they can be tested without any store.
// ReportService composes them with a RecordReader, a ReportWriter and an
// AggregateStore to serve the dashboard session.
package services
