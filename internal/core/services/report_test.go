package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/jszwec/csvutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/commsdash/internal/adapters/driven/csvio"
	"github.com/custodia-labs/commsdash/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/commsdash/internal/core/domain"
)

const header = "ChannelType,IsTextCommunication,IsEmailCommunication\n"

const workedCSV = header +
	"DP,true,false\n" +
	"DP,false,true\n" +
	"FORDPASS,true,true\n" +
	"XYZ,true,true\n"

var (
	jan = domain.NewPeriod(2025, time.January)
	feb = domain.NewPeriod(2025, time.February)
)

// failingReader is a RecordReader that always fails.
type failingReader struct {
	err error
}

func (r *failingReader) Read(_ context.Context, _ io.Reader) ([]domain.RawRecord, error) {
	return nil, r.err
}

func newTestReportService() (*ReportService, *memory.AggregateStore) {
	store := memory.NewAggregateStore()
	service := NewReportService(csvio.NewReader(), csvio.NewWriter(), store)
	service.SetWindow(domain.PeriodSettings{Start: domain.NewPeriod(2024, time.January), Months: 24})
	service.SetClock(func() time.Time {
		return time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)
	})
	return service, store
}

func TestReportService_NilDependencies(t *testing.T) {
	service := NewReportService(nil, nil, nil)
	ctx := context.Background()
	period := service.DefaultPeriod()

	_, err := service.Upload(ctx, period, strings.NewReader(workedCSV))
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	_, err = service.Uploaded(ctx)
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	assert.ErrorIs(t, service.Reset(ctx, period), domain.ErrNotImplemented)
	assert.ErrorIs(t, service.ResetAll(ctx), domain.ErrNotImplemented)
	_, err = service.WriteExport(ctx, period, io.Discard)
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
}

func TestReportService_Periods(t *testing.T) {
	service, _ := newTestReportService()

	periods := service.Periods()

	require.Len(t, periods, 24)
	assert.Equal(t, "January 2024", periods[0].Label())
	assert.Equal(t, "December 2025", periods[23].Label())
}

func TestReportService_DefaultPeriod(t *testing.T) {
	service, _ := newTestReportService()
	assert.Equal(t, domain.NewPeriod(2025, time.March), service.DefaultPeriod())

	service.SetClock(func() time.Time { return time.Date(2030, time.June, 1, 0, 0, 0, 0, time.UTC) })
	assert.Equal(t, domain.NewPeriod(2024, time.January), service.DefaultPeriod())
}

func TestReportService_Upload(t *testing.T) {
	service, _ := newTestReportService()
	ctx := context.Background()

	summary, err := service.Upload(ctx, jan, strings.NewReader(workedCSV))

	require.NoError(t, err)
	assert.NotEmpty(t, summary.ID)
	assert.Equal(t, jan, summary.Period)
	assert.Equal(t, 4, summary.RowsRead)
	assert.Equal(t, 3, summary.RowsCounted)
	assert.Equal(t, 1, summary.RowsDropped)
	assert.Equal(t, map[string]int{"XYZ": 1}, summary.DroppedCodes)

	agg, err := service.Aggregate(ctx, jan)
	require.NoError(t, err)
	assert.Equal(t, 3, agg.Total())
}

func TestReportService_Upload_CountsRaggedRows(t *testing.T) {
	service, _ := newTestReportService()
	ctx := context.Background()
	input := "ChannelType,IsTextCommunication,IsEmailCommunication,Notes\n" +
		"FORDPASS,true,true\n" +
		"DP,true,false,Joe \"JJ\" Smith\n" +
		"OWNERWEB,true\n"

	summary, err := service.Upload(ctx, jan, strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, 3, summary.RowsCounted)
	agg, err := service.Aggregate(ctx, jan)
	require.NoError(t, err)
	assert.Equal(t, 1, agg.Count(domain.SourceFordPass, domain.CategoryEmailAndText))
	assert.Equal(t, 1, agg.Count(domain.SourceDealerWeb, domain.CategoryTextOnly))
	assert.Equal(t, 1, agg.Count(domain.SourceOwnerWeb, domain.CategoryTextOnly))
}

func TestReportService_Upload_UniqueIDs(t *testing.T) {
	service, _ := newTestReportService()
	ctx := context.Background()

	first, err := service.Upload(ctx, jan, strings.NewReader(workedCSV))
	require.NoError(t, err)
	second, err := service.Upload(ctx, jan, strings.NewReader(workedCSV))
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestReportService_Upload_ReplacesOnlyThatPeriod(t *testing.T) {
	service, _ := newTestReportService()
	ctx := context.Background()
	_, err := service.Upload(ctx, jan, strings.NewReader(workedCSV))
	require.NoError(t, err)
	_, err = service.Upload(ctx, feb, strings.NewReader(workedCSV))
	require.NoError(t, err)

	_, err = service.Upload(ctx, jan, strings.NewReader(header+"TIER3DEALERWEB,false,false\n"))
	require.NoError(t, err)

	janAgg, err := service.Aggregate(ctx, jan)
	require.NoError(t, err)
	assert.Equal(t, domain.PeriodAggregate{
		{Source: domain.SourceTier3, Category: domain.CategoryNoComms}: 1,
	}, janAgg)

	febAgg, err := service.Aggregate(ctx, feb)
	require.NoError(t, err)
	assert.Equal(t, 3, febAgg.Total())
}

func TestReportService_Upload_ParseFailureKeepsState(t *testing.T) {
	service, _ := newTestReportService()
	ctx := context.Background()
	_, err := service.Upload(ctx, jan, strings.NewReader(workedCSV))
	require.NoError(t, err)

	_, err = service.Upload(ctx, jan, strings.NewReader("ChannelType,Other\nDP,true\n"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrParseFailure)
	agg, err := service.Aggregate(ctx, jan)
	require.NoError(t, err)
	assert.Equal(t, 3, agg.Total())
}

func TestReportService_Upload_WrapsReaderErrors(t *testing.T) {
	store := memory.NewAggregateStore()
	service := NewReportService(&failingReader{err: errors.New("disk gone")}, nil, store)

	_, err := service.Upload(context.Background(), service.DefaultPeriod(), strings.NewReader(""))

	assert.ErrorIs(t, err, domain.ErrParseFailure)
	periods, listErr := store.List(context.Background())
	require.NoError(t, listErr)
	assert.Empty(t, periods)
}

func TestReportService_Upload_OutOfRange(t *testing.T) {
	service, _ := newTestReportService()

	_, err := service.Upload(context.Background(), domain.NewPeriod(2023, time.December), strings.NewReader(workedCSV))

	assert.ErrorIs(t, err, domain.ErrPeriodOutOfRange)
}

func TestReportService_Upload_EmptyFile(t *testing.T) {
	service, _ := newTestReportService()
	ctx := context.Background()

	summary, err := service.Upload(ctx, jan, strings.NewReader(""))
	require.NoError(t, err)
	assert.Zero(t, summary.RowsRead)

	stats, err := service.Stats(ctx, jan)
	require.NoError(t, err)
	assert.False(t, stats.HasData)

	uploaded, err := service.Uploaded(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Period{jan}, uploaded)
}

func TestReportService_Aggregate_NoData(t *testing.T) {
	service, _ := newTestReportService()

	_, err := service.Aggregate(context.Background(), jan)

	assert.ErrorIs(t, err, domain.ErrNoData)
}

func TestReportService_Stats(t *testing.T) {
	service, _ := newTestReportService()
	ctx := context.Background()

	empty, err := service.Stats(ctx, jan)
	require.NoError(t, err)
	assert.False(t, empty.HasData)
	assert.Equal(t, jan, empty.Period)

	_, err = service.Upload(ctx, jan, strings.NewReader(workedCSV))
	require.NoError(t, err)

	stats, err := service.Stats(ctx, jan)
	require.NoError(t, err)
	assert.True(t, stats.HasData)
	assert.Equal(t, "33.3%", stats.Percentages.TextOnly.String())
}

func TestReportService_Stats_InvariantViolation(t *testing.T) {
	service, store := newTestReportService()
	ctx := context.Background()
	require.NoError(t, store.Replace(ctx, jan, domain.PeriodAggregate{
		{Source: domain.SourceDealerWeb, Category: domain.CategoryTextOnly}: -2,
	}))

	_, err := service.Stats(ctx, jan)

	assert.ErrorIs(t, err, domain.ErrInvariantViolation)
}

func TestReportService_Reset(t *testing.T) {
	service, _ := newTestReportService()
	ctx := context.Background()
	_, err := service.Upload(ctx, jan, strings.NewReader(workedCSV))
	require.NoError(t, err)
	_, err = service.Upload(ctx, feb, strings.NewReader(workedCSV))
	require.NoError(t, err)

	require.NoError(t, service.Reset(ctx, jan))

	uploaded, err := service.Uploaded(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Period{feb}, uploaded)

	require.NoError(t, service.ResetAll(ctx))
	uploaded, err = service.Uploaded(ctx)
	require.NoError(t, err)
	assert.Empty(t, uploaded)
}

func TestReportService_Export_NoData(t *testing.T) {
	service, _ := newTestReportService()

	_, err := service.Export(context.Background(), jan)

	assert.ErrorIs(t, err, domain.ErrNoData)
}

func TestReportService_WriteExport(t *testing.T) {
	service, _ := newTestReportService()
	service.SetExportPrefix("Monthly")
	ctx := context.Background()
	_, err := service.Upload(ctx, jan, strings.NewReader(workedCSV))
	require.NoError(t, err)
	var buf bytes.Buffer

	report, err := service.WriteExport(ctx, jan, &buf)

	require.NoError(t, err)
	assert.Equal(t, "Monthly_January_2025.csv", report.Filename)
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Category,Metric,Value\n"))
	assert.Contains(t, out, "KEY METRICS,Dealer Web-Text Only,1\n")
	assert.Contains(t, out, "TOTALS,Total Opt-Ins,3\n")
	assert.Contains(t, out, "PERCENTAGES,Email & Text,33.3%\n")

	var rows []domain.ReportRow
	require.NoError(t, csvutil.Unmarshal(buf.Bytes(), &rows))
	assert.Equal(t, report.Rows, rows)
}
