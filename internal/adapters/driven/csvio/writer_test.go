package csvio

import (
	"bytes"
	"testing"

	"github.com/jszwec/csvutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/commsdash/internal/core/domain"
)

func TestWriter_Write(t *testing.T) {
	report := &domain.Report{
		Rows: []domain.ReportRow{
			{Category: domain.SectionTotals, Metric: "Email & Text", Value: "1234"},
			{Category: domain.SectionPercentages, Metric: "Text Only", Value: "33.3%"},
		},
	}
	var buf bytes.Buffer

	require.NoError(t, NewWriter().Write(&buf, report))

	assert.Equal(t, "Category,Metric,Value\n"+
		"TOTALS,Email & Text,1234\n"+
		"PERCENTAGES,Text Only,33.3%\n", buf.String())
}

func TestWriter_Write_NoRows(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, NewWriter().Write(&buf, &domain.Report{}))

	assert.Equal(t, "Category,Metric,Value\n", buf.String())
}

// TestWriter_ReadBack checks that written rows survive a round trip through csvutil.
func TestWriter_ReadBack(t *testing.T) {
	report := &domain.Report{
		Rows: []domain.ReportRow{
			{Category: domain.SectionKeyMetrics, Metric: "Dealer Web-Text Only", Value: "12"},
			{Category: domain.SectionKeyMetrics, Metric: "a,b", Value: domain.NoData},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, NewWriter().Write(&buf, report))

	var rows []domain.ReportRow
	require.NoError(t, csvutil.Unmarshal(buf.Bytes(), &rows))

	assert.Equal(t, report.Rows, rows)
}
