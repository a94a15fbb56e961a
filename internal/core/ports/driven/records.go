package driven

import (
	"context"
	"io"

	"github.com/custodia-labs/commsdash/internal/core/domain"
)

// RecordReader parses an upload into raw records.
// It resolves once with every row or fails; it never yields partial results.
type RecordReader interface {
	// Read parses all records from r. Structural failures are returned
	// wrapped in domain.ErrParseFailure.
	Read(ctx context.Context, r io.Reader) ([]domain.RawRecord, error)
}

// ReportWriter serialises an export report.
type ReportWriter interface {
	// Write encodes the report rows to w.
	Write(w io.Writer, report *domain.Report) error
}
