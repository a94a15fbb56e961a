// Package domain defines the core business entities for commsdash.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawRecord: One communication-preference row from an upload
//   - Source and Category: The two axes every record is classified on
//   - PeriodAggregate: Bucket counts for a single calendar month
//   - Stats: Totals and percentages derived from an aggregate
//   - Report: The flat export of a period's stats
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
