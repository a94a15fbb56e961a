package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/commsdash/internal/core/domain"
)

// ReportService owns the session's monthly collection and everything the
// dashboard does with it.
type ReportService interface {
	// Periods returns the selectable periods in order.
	Periods() []domain.Period

	// DefaultPeriod returns the period selected at start-up.
	DefaultPeriod() domain.Period

	// Upload parses r and replaces the period's aggregate with the result.
	// On a parse failure the stored aggregate is left untouched.
	Upload(ctx context.Context, period domain.Period, r io.Reader) (*domain.UploadSummary, error)

	// Aggregate returns the period's aggregate, or domain.ErrNoData.
	Aggregate(ctx context.Context, period domain.Period) (domain.PeriodAggregate, error)

	// Stats derives the period's stats. A period without an upload yields
	// no-data stats rather than an error.
	Stats(ctx context.Context, period domain.Period) (*domain.Stats, error)

	// Uploaded returns the periods that hold an aggregate.
	Uploaded(ctx context.Context) ([]domain.Period, error)

	// Reset clears the period's aggregate.
	Reset(ctx context.Context, period domain.Period) error

	// ResetAll clears every period.
	ResetAll(ctx context.Context) error

	// Export builds the period's report, or returns domain.ErrNoData.
	Export(ctx context.Context, period domain.Period) (*domain.Report, error)

	// WriteExport builds the period's report and writes it to w.
	WriteExport(ctx context.Context, period domain.Period, w io.Writer) (*domain.Report, error)
}
