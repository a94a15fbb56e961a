package services

import (
	"strings"

	"github.com/custodia-labs/commsdash/internal/core/domain"
)

// AggregateResult is an aggregate plus the diagnostics of building it.
type AggregateResult struct {
	// Aggregate holds the counts of every row with a recognised source.
	Aggregate domain.PeriodAggregate

	// Rows is the number of records seen.
	Rows int

	// Counted is the number of records added to the aggregate.
	Counted int

	// Dropped is the number of records with an unmapped channel code.
	Dropped int

	// DroppedByCode counts dropped records by trimmed channel code.
	DroppedByCode map[string]int
}

// Aggregate classifies every record into its bucket and counts them.
// Records whose channel code maps to no source are dropped and only
// reported in the diagnostics. The result does not depend on record order.
func Aggregate(records []domain.RawRecord) *AggregateResult {
	result := &AggregateResult{
		Aggregate:     domain.NewPeriodAggregate(),
		Rows:          len(records),
		DroppedByCode: make(map[string]int),
	}

	for _, record := range records {
		key, ok := record.Bucket()
		if !ok {
			result.Dropped++
			result.DroppedByCode[strings.TrimSpace(record.ChannelType)]++
			continue
		}
		result.Aggregate[key]++
		result.Counted++
	}

	return result
}
