package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/commsdash/internal/core/domain"
	"github.com/custodia-labs/commsdash/internal/format"
)

// printDashboard writes the key metrics grid, totals and percentages.
func printDashboard(cmd *cobra.Command, stats *domain.Stats) {
	cmd.Printf("Communication preferences: %s\n", stats.Period.Label())
	if !stats.HasData {
		cmd.Println("No data for this period. Upload a CSV export to populate the dashboard.")
	}
	cmd.Println()

	cmd.Println(domain.SectionKeyMetrics)
	headers := []string{""}
	for _, source := range domain.Sources() {
		headers = append(headers, source.String())
	}
	grid := newTable().Headers(headers...)
	for _, category := range domain.Categories() {
		row := []string{category.String()}
		for _, source := range domain.Sources() {
			row = append(row, format.Count(stats.Bucket(source, category)))
		}
		grid.Row(row...)
	}
	cmd.Println(grid.String())
	cmd.Println()

	cmd.Println(domain.SectionTotals)
	totals := newTable().Headers("Metric", "Count")
	for _, category := range domain.Categories() {
		totals.Row(category.String(), format.Count(stats.Totals.ByCategory(category)))
	}
	totals.Row(domain.MetricOptIns, format.Count(stats.Totals.OptIns))
	cmd.Println(totals.String())
	cmd.Println()

	cmd.Println(domain.SectionPercentages)
	pcts := newTable().Headers("Metric", "Share of opt-ins")
	for _, category := range domain.OptInCategories() {
		pcts.Row(category.String(), format.Percent(stats.Percentages.ByCategory(category)))
	}
	for _, source := range domain.Sources() {
		pcts.Row(source.String(), format.Percent(stats.Percentages.Platform(source)))
	}
	pcts.Row(domain.MetricCXPlatforms, format.Percent(stats.Percentages.CX))
	pcts.Row(domain.MetricDXPlatform, format.Percent(stats.Percentages.DX))
	cmd.Println(pcts.String())
}

// printUploadSummary reports how many rows were counted and dropped.
func printUploadSummary(cmd *cobra.Command, summary *domain.UploadSummary) {
	cmd.Printf("Uploaded %d rows for %s (%d counted, %d dropped)\n",
		summary.RowsRead, summary.Period.Label(), summary.RowsCounted, summary.RowsDropped)
	if summary.RowsDropped == 0 {
		return
	}
	codes := make([]string, 0, len(summary.DroppedCodes))
	for code := range summary.DroppedCodes {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	parts := make([]string, 0, len(codes))
	for _, code := range codes {
		label := code
		if label == "" {
			label = "(blank)"
		}
		parts = append(parts, fmt.Sprintf("%s=%d", label, summary.DroppedCodes[code]))
	}
	cmd.Printf("Unrecognised channel codes: %s\n", strings.Join(parts, ", "))
}

// printJSON writes v as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func newTable() *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(_, col int) lipgloss.Style {
			if col == 0 {
				return lipgloss.NewStyle().Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
		})
}
