package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/commsdash/internal/core/domain"
	"github.com/custodia-labs/commsdash/internal/core/ports/driven"
	"github.com/custodia-labs/commsdash/internal/core/ports/driving"
	"github.com/custodia-labs/commsdash/internal/logger"
)

// Ensure ReportService implements the interface.
var _ driving.ReportService = (*ReportService)(nil)

// ReportService owns the session's monthly aggregates and derives the
// dashboard and export views from them.
type ReportService struct {
	reader driven.RecordReader
	writer driven.ReportWriter
	store  driven.AggregateStore

	window domain.PeriodSettings
	prefix string
	now    func() time.Time
}

// NewReportService creates a new report service with the default period
// window and export prefix.
func NewReportService(
	reader driven.RecordReader,
	writer driven.ReportWriter,
	store driven.AggregateStore,
) *ReportService {
	defaults := domain.DefaultAppSettings(time.Now())
	return &ReportService{
		reader: reader,
		writer: writer,
		store:  store,
		window: defaults.Periods,
		prefix: defaults.Export.Prefix,
		now:    time.Now,
	}
}

// SetWindow sets the selectable period window.
func (s *ReportService) SetWindow(window domain.PeriodSettings) {
	if window.Months <= 0 {
		window.Months = domain.DefaultWindowMonths
	}
	s.window = window
}

// SetExportPrefix sets the prefix of export file names.
func (s *ReportService) SetExportPrefix(prefix string) {
	s.prefix = prefix
}

// SetClock replaces the time source. Used by tests.
func (s *ReportService) SetClock(now func() time.Time) {
	s.now = now
}

// Periods returns the selectable periods in order.
func (s *ReportService) Periods() []domain.Period {
	return s.window.Periods()
}

// DefaultPeriod returns the current month when it is selectable,
// otherwise the first period of the window.
func (s *ReportService) DefaultPeriod() domain.Period {
	current := domain.PeriodOf(s.now())
	if s.window.Contains(current) {
		return current
	}
	return s.window.Start
}

// Upload parses r and replaces the period's aggregate with the result.
func (s *ReportService) Upload(ctx context.Context, period domain.Period, r io.Reader) (*domain.UploadSummary, error) {
	if s.reader == nil || s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if err := s.checkPeriod(period); err != nil {
		return nil, err
	}

	logger.Section("Upload " + period.Label())

	records, err := s.reader.Read(ctx, r)
	if err != nil {
		if !errors.Is(err, domain.ErrParseFailure) {
			err = fmt.Errorf("%w: %w", domain.ErrParseFailure, err)
		}
		logger.Warn("upload %s rejected: %v", period.Label(), err)
		return nil, fmt.Errorf("upload %s: %w", period.Label(), err)
	}

	result := Aggregate(records)
	if result.Dropped > 0 {
		logger.Warn("dropped %d of %d rows with unmapped channel codes: %v",
			result.Dropped, result.Rows, result.DroppedByCode)
	}

	if err := s.store.Replace(ctx, period, result.Aggregate); err != nil {
		return nil, fmt.Errorf("store %s: %w", period.Label(), err)
	}

	summary := &domain.UploadSummary{
		ID:           uuid.NewString(),
		Period:       period,
		UploadedAt:   s.now(),
		RowsRead:     result.Rows,
		RowsCounted:  result.Counted,
		RowsDropped:  result.Dropped,
		DroppedCodes: result.DroppedByCode,
	}
	logger.Info("upload %s stored for %s: %d rows counted", summary.ID, period.Label(), summary.RowsCounted)

	return summary, nil
}

// Aggregate returns the period's aggregate, or domain.ErrNoData.
func (s *ReportService) Aggregate(ctx context.Context, period domain.Period) (domain.PeriodAggregate, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if err := s.checkPeriod(period); err != nil {
		return nil, err
	}
	agg, err := s.store.Get(ctx, period)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", period.Label(), domain.ErrNoData)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", period.Label(), err)
	}
	return agg, nil
}

// Stats derives the period's stats. A period without an upload yields
// no-data stats.
func (s *ReportService) Stats(ctx context.Context, period domain.Period) (*domain.Stats, error) {
	agg, err := s.Aggregate(ctx, period)
	if err != nil && !errors.Is(err, domain.ErrNoData) {
		return nil, err
	}

	stats, err := DeriveStats(agg)
	if err != nil {
		logger.Error("derive stats for %s: %v", period.Label(), err)
		return nil, fmt.Errorf("derive stats for %s: %w", period.Label(), err)
	}
	stats.Period = period
	return stats, nil
}

// Uploaded returns the periods holding an aggregate, oldest first.
func (s *ReportService) Uploaded(ctx context.Context) ([]domain.Period, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.List(ctx)
}

// Reset clears the period's aggregate.
func (s *ReportService) Reset(ctx context.Context, period domain.Period) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	if err := s.checkPeriod(period); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, period); err != nil {
		return fmt.Errorf("reset %s: %w", period.Label(), err)
	}
	logger.Info("reset %s", period.Label())
	return nil
}

// ResetAll clears every period.
func (s *ReportService) ResetAll(ctx context.Context) error {
	if s.store == nil {
		return domain.ErrNotImplemented
	}
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("reset all: %w", err)
	}
	logger.Info("reset all periods")
	return nil
}

// Export builds the period's report, or returns domain.ErrNoData when
// nothing was uploaded for it.
func (s *ReportService) Export(ctx context.Context, period domain.Period) (*domain.Report, error) {
	if _, err := s.Aggregate(ctx, period); err != nil {
		return nil, err
	}
	stats, err := s.Stats(ctx, period)
	if err != nil {
		return nil, err
	}
	return FormatReport(s.prefix, stats), nil
}

// WriteExport builds the period's report and writes it to w.
func (s *ReportService) WriteExport(ctx context.Context, period domain.Period, w io.Writer) (*domain.Report, error) {
	if s.writer == nil {
		return nil, domain.ErrNotImplemented
	}
	report, err := s.Export(ctx, period)
	if err != nil {
		return nil, err
	}
	if err := s.writer.Write(w, report); err != nil {
		return nil, fmt.Errorf("write %s: %w", report.Filename, err)
	}
	logger.Info("exported %s (%d rows)", report.Filename, len(report.Rows))
	return report, nil
}

func (s *ReportService) checkPeriod(period domain.Period) error {
	if !s.window.Contains(period) {
		return fmt.Errorf("%w: %s", domain.ErrPeriodOutOfRange, period.Label())
	}
	return nil
}
