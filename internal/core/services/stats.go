package services

import (
	"fmt"

	"github.com/custodia-labs/commsdash/internal/core/domain"
)

// DeriveStats computes the totals and percentages of an aggregate.
//
// A nil or empty aggregate, or one without opt-ins, yields stats where every
// figure is unavailable. A negative bucket count cannot come out of Aggregate
// and is reported as domain.ErrInvariantViolation.
func DeriveStats(agg domain.PeriodAggregate) (*domain.Stats, error) {
	for key, n := range agg {
		if n < 0 {
			return nil, fmt.Errorf("%w: bucket %s has count %d", domain.ErrInvariantViolation, key, n)
		}
	}

	totals := make(map[domain.Category]int, len(domain.Categories()))
	optInsBySource := make(map[domain.Source]int, len(domain.Sources()))
	for key, n := range agg {
		totals[key.Category] += n
		if key.Category.IsOptIn() {
			optInsBySource[key.Source] += n
		}
	}

	optIns := 0
	for _, category := range domain.OptInCategories() {
		optIns += totals[category]
	}

	if len(agg) == 0 || optIns <= 0 {
		return noDataStats(), nil
	}

	stats := &domain.Stats{
		HasData: true,
		Buckets: make(map[domain.BucketKey]domain.Count, len(domain.Buckets())),
		Totals: domain.Totals{
			TextOnly:     domain.CountOf(totals[domain.CategoryTextOnly]),
			EmailOnly:    domain.CountOf(totals[domain.CategoryEmailOnly]),
			EmailAndText: domain.CountOf(totals[domain.CategoryEmailAndText]),
			NoComms:      domain.CountOf(totals[domain.CategoryNoComms]),
			OptIns:       domain.CountOf(optIns),
		},
		Percentages: domain.Percentages{
			TextOnly:     domain.PercentOf(totals[domain.CategoryTextOnly], optIns),
			EmailOnly:    domain.PercentOf(totals[domain.CategoryEmailOnly], optIns),
			EmailAndText: domain.PercentOf(totals[domain.CategoryEmailAndText], optIns),
			Platforms:    make(map[domain.Source]domain.Percent, len(domain.Sources())),
		},
	}

	for _, key := range domain.Buckets() {
		stats.Buckets[key] = domain.CountOf(agg[key])
	}

	cx := 0
	for _, source := range domain.Sources() {
		stats.Percentages.Platforms[source] = domain.PercentOf(optInsBySource[source], optIns)
		if source.IsCX() {
			cx += optInsBySource[source]
		}
	}
	stats.Percentages.CX = domain.PercentOf(cx, optIns)
	stats.Percentages.DX = domain.PercentOf(optInsBySource[domain.SourceDealerWeb], optIns)

	return stats, nil
}

func noDataStats() *domain.Stats {
	stats := &domain.Stats{
		Buckets: make(map[domain.BucketKey]domain.Count, len(domain.Buckets())),
		Totals: domain.Totals{
			TextOnly:     domain.NoCount(),
			EmailOnly:    domain.NoCount(),
			EmailAndText: domain.NoCount(),
			NoComms:      domain.NoCount(),
			OptIns:       domain.NoCount(),
		},
		Percentages: domain.Percentages{
			TextOnly:     domain.NoPercent(),
			EmailOnly:    domain.NoPercent(),
			EmailAndText: domain.NoPercent(),
			Platforms:    make(map[domain.Source]domain.Percent, len(domain.Sources())),
			CX:           domain.NoPercent(),
			DX:           domain.NoPercent(),
		},
	}
	for _, key := range domain.Buckets() {
		stats.Buckets[key] = domain.NoCount()
	}
	for _, source := range domain.Sources() {
		stats.Percentages.Platforms[source] = domain.NoPercent()
	}
	return stats
}
