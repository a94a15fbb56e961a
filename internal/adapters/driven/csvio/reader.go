// Package csvio reads preference exports and writes dashboard reports as
// comma-separated files with a header row.
package csvio

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jszwec/csvutil"

	"github.com/custodia-labs/commsdash/internal/core/domain"
	"github.com/custodia-labs/commsdash/internal/core/ports/driven"
	"github.com/custodia-labs/commsdash/internal/logger"
)

// Ensure Reader implements the interface.
var _ driven.RecordReader = (*Reader)(nil)

// RequiredColumns are the header names every upload must carry.
var RequiredColumns = []string{"ChannelType", "IsTextCommunication", "IsEmailCommunication"}

// Reader decodes RawRecords from CSV.
type Reader struct{}

// NewReader creates a new CSV record reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read parses every record from in. An empty input yields no records.
// Rows are read leniently: stray quotes are kept as text and short or long
// rows are fitted to the header, so a missing flag reads as false. A missing
// required column or an unreadable input is a domain.ErrParseFailure.
func (r *Reader) Read(ctx context.Context, in io.Reader) ([]domain.RawRecord, error) {
	cr := csv.NewReader(in)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return []domain.RawRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %w", domain.ErrParseFailure, err)
	}
	header = normalizeHeader(header)
	if err := checkColumns(header); err != nil {
		return nil, err
	}

	dec, err := csvutil.NewDecoder(&fittedReader{r: cr, width: len(header)}, header...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrParseFailure, err)
	}
	if unused := dec.Unused(); len(unused) > 0 {
		logger.Debug("ignoring %d extra columns", len(unused))
	}

	records := make([]domain.RawRecord, 0, 64)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var record domain.RawRecord
		if err := dec.Decode(&record); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%w: record %d: %w", domain.ErrParseFailure, len(records)+1, err)
		}
		records = append(records, record)
	}

	logger.Debug("parsed %d records", len(records))
	return records, nil
}

// fittedReader pads short records and trims long ones to the header width.
type fittedReader struct {
	r     *csv.Reader
	width int
}

var _ csvutil.Reader = (*fittedReader)(nil)

func (f *fittedReader) Read() ([]string, error) {
	record, err := f.r.Read()
	if err != nil {
		return nil, err
	}
	switch {
	case len(record) < f.width:
		record = append(record, make([]string, f.width-len(record))...)
	case len(record) > f.width:
		record = record[:f.width]
	}
	return record, nil
}

func normalizeHeader(header []string) []string {
	normalized := make([]string, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		normalized[i] = strings.TrimSpace(name)
	}
	return normalized
}

func checkColumns(header []string) error {
	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[name] = true
	}
	var missing []string
	for _, name := range RequiredColumns {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %w: %s", domain.ErrParseFailure, domain.ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}
