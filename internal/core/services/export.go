package services

import (
	"strings"

	"github.com/custodia-labs/commsdash/internal/core/domain"
	"github.com/custodia-labs/commsdash/internal/format"
)

// ReportFilename returns the export file name for a period,
// e.g. "Comms_Report_January_2025.csv".
func ReportFilename(prefix string, period domain.Period) string {
	if prefix == "" {
		prefix = domain.DefaultExportPrefix
	}
	label := strings.Join(strings.Fields(period.Label()), "_")
	return prefix + "_" + label + ".csv"
}

// FormatReport flattens stats into export rows. Each value is the displayed
// value with its digit grouping stripped.
func FormatReport(prefix string, stats *domain.Stats) *domain.Report {
	report := &domain.Report{
		Period:   stats.Period,
		Filename: ReportFilename(prefix, stats.Period),
	}

	add := func(section, metric, display string) {
		report.Rows = append(report.Rows, domain.ReportRow{
			Category: section,
			Metric:   metric,
			Value:    format.StripGrouping(display),
		})
	}

	for _, key := range domain.Buckets() {
		add(domain.SectionKeyMetrics, key.String(), format.Count(stats.Bucket(key.Source, key.Category)))
	}

	for _, category := range domain.Categories() {
		add(domain.SectionTotals, category.String(), format.Count(stats.Totals.ByCategory(category)))
	}
	add(domain.SectionTotals, domain.MetricOptIns, format.Count(stats.Totals.OptIns))

	for _, category := range domain.OptInCategories() {
		add(domain.SectionPercentages, category.String(), format.Percent(stats.Percentages.ByCategory(category)))
	}
	for _, source := range domain.Sources() {
		add(domain.SectionPercentages, source.String(), format.Percent(stats.Percentages.Platform(source)))
	}
	add(domain.SectionPercentages, domain.MetricCXPlatforms, format.Percent(stats.Percentages.CX))
	add(domain.SectionPercentages, domain.MetricDXPlatform, format.Percent(stats.Percentages.DX))

	return report
}
