// Package format renders derived figures the way the dashboard shows them.
// The export reuses the same rendering with digit grouping stripped, so a
// value read off the screen always matches the exported file.
package format

import (
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/custodia-labs/commsdash/internal/core/domain"
)

// Count renders a count with digit grouping ("12,345"), or domain.NoData.
func Count(c domain.Count) string {
	n, ok := c.Value()
	if !ok {
		return domain.NoData
	}
	return humanize.Comma(int64(n))
}

// Percent renders a percentage with one decimal ("33.3%"), or domain.NoData.
func Percent(p domain.Percent) string {
	return p.String()
}

// StripGrouping removes thousands separators from a rendered value.
// Non-numeric values such as the no-data placeholder pass through unchanged.
func StripGrouping(value string) string {
	return strings.ReplaceAll(value, ",", "")
}
