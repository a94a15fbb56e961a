package csvio

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jszwec/csvutil"

	"github.com/custodia-labs/commsdash/internal/core/domain"
	"github.com/custodia-labs/commsdash/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.ReportWriter = (*Writer)(nil)

// Writer encodes report rows as CSV with a Category,Metric,Value header.
type Writer struct{}

// NewWriter creates a new CSV report writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Write encodes the report rows to out.
func (w *Writer) Write(out io.Writer, report *domain.Report) error {
	cw := csv.NewWriter(out)
	enc := csvutil.NewEncoder(cw)

	if err := enc.EncodeHeader(domain.ReportRow{}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}
	for _, row := range report.Rows {
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("encode %s/%s: %w", row.Category, row.Metric, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
