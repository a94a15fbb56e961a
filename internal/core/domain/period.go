package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Period identifies one calendar month.
type Period struct {
	Year  int
	Month time.Month
}

// NewPeriod creates a period for the given month.
func NewPeriod(year int, month time.Month) Period {
	return Period{Year: year, Month: month}
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// ParsePeriod accepts "January 2025", "Jan 2025", "2025-01" and "01/2025".
func ParsePeriod(s string) (Period, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"January 2006", "Jan 2006", "2006-01", "01/2006", "January_2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return PeriodOf(t), nil
		}
	}
	return Period{}, fmt.Errorf("%w: period %q", ErrInvalidInput, s)
}

// IsZero reports whether the period is unset.
func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

// Label returns the display label, e.g. "January 2025".
func (p Period) Label() string {
	return p.Month.String() + " " + strconv.Itoa(p.Year)
}

// Key returns the sortable identifier, e.g. "2025-01".
func (p Period) Key() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// String returns the display label.
func (p Period) String() string {
	return p.Label()
}

// AddMonths returns the period n months later (earlier when negative).
func (p Period) AddMonths(n int) Period {
	return PeriodOf(time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0))
}

// Before reports whether p is earlier than other.
func (p Period) Before(other Period) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	return p.Month < other.Month
}

// PeriodWindow returns months consecutive periods starting at start.
func PeriodWindow(start Period, months int) []Period {
	if months <= 0 {
		return nil
	}
	periods := make([]Period, months)
	for i := range periods {
		periods[i] = start.AddMonths(i)
	}
	return periods
}
