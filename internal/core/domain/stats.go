package domain

import (
	"encoding/json"
	"strconv"
)

// NoData is the placeholder shown for any figure of a period without data.
// It is deliberately not a number so it cannot be mistaken for zero.
const NoData = "xxxx"

// Count is a derived count that may be unavailable.
type Count struct {
	n     int
	valid bool
}

// CountOf returns an available count.
func CountOf(n int) Count {
	return Count{n: n, valid: true}
}

// NoCount returns the no-data count.
func NoCount() Count {
	return Count{}
}

// Value returns the count and whether it is available.
func (c Count) Value() (int, bool) {
	return c.n, c.valid
}

// Valid reports whether the count is available.
func (c Count) Valid() bool {
	return c.valid
}

// String returns plain digits, or NoData.
func (c Count) String() string {
	if !c.valid {
		return NoData
	}
	return strconv.Itoa(c.n)
}

// MarshalJSON encodes the count as a number, or null without data.
func (c Count) MarshalJSON() ([]byte, error) {
	if !c.valid {
		return []byte("null"), nil
	}
	return json.Marshal(c.n)
}

// Percent is a share rounded to one decimal place that may be unavailable.
type Percent struct {
	tenths int
	valid  bool
}

// PercentOf returns part as a percentage of whole, rounded half up to one
// decimal. A non-positive whole yields the no-data percent without dividing.
func PercentOf(part, whole int) Percent {
	if whole <= 0 {
		return Percent{}
	}
	num := int64(part) * 2000
	den := int64(whole) * 2
	return Percent{tenths: int((num + int64(whole)) / den), valid: true}
}

// NoPercent returns the no-data percent.
func NoPercent() Percent {
	return Percent{}
}

// Tenths returns the value in tenths of a percent and whether it is available.
func (p Percent) Tenths() (int, bool) {
	return p.tenths, p.valid
}

// Valid reports whether the percent is available.
func (p Percent) Valid() bool {
	return p.valid
}

// Float returns the percentage as a float, zero without data.
func (p Percent) Float() float64 {
	return float64(p.tenths) / 10
}

// String returns e.g. "33.3%", or NoData.
func (p Percent) String() string {
	if !p.valid {
		return NoData
	}
	return strconv.Itoa(p.tenths/10) + "." + strconv.Itoa(p.tenths%10) + "%"
}

// MarshalJSON encodes the percent as a number, or null without data.
func (p Percent) MarshalJSON() ([]byte, error) {
	if !p.valid {
		return []byte("null"), nil
	}
	return json.Marshal(p.Float())
}

// Totals are the category sums across all sources.
type Totals struct {
	TextOnly     Count `json:"text_only"`
	EmailOnly    Count `json:"email_only"`
	EmailAndText Count `json:"email_and_text"`
	NoComms      Count `json:"no_comms"`

	// OptIns excludes No Comms.
	OptIns Count `json:"opt_ins"`
}

// ByCategory returns the total for a category.
func (t Totals) ByCategory(category Category) Count {
	switch category {
	case CategoryTextOnly:
		return t.TextOnly
	case CategoryEmailOnly:
		return t.EmailOnly
	case CategoryEmailAndText:
		return t.EmailAndText
	case CategoryNoComms:
		return t.NoComms
	default:
		return NoCount()
	}
}

// Percentages are opt-in shares by category and by platform.
type Percentages struct {
	TextOnly     Percent `json:"text_only"`
	EmailOnly    Percent `json:"email_only"`
	EmailAndText Percent `json:"email_and_text"`

	// Platforms holds each source's opt-ins over combined opt-ins.
	Platforms map[Source]Percent `json:"platforms"`

	// CX groups FordPass, Owner Web and Tier3; DX is Dealer Web alone.
	CX Percent `json:"cx_platforms"`
	DX Percent `json:"dx_platform"`
}

// ByCategory returns the share for an opt-in category.
func (p Percentages) ByCategory(category Category) Percent {
	switch category {
	case CategoryTextOnly:
		return p.TextOnly
	case CategoryEmailOnly:
		return p.EmailOnly
	case CategoryEmailAndText:
		return p.EmailAndText
	default:
		return NoPercent()
	}
}

// Platform returns the share for a source.
func (p Percentages) Platform(source Source) Percent {
	if pct, ok := p.Platforms[source]; ok {
		return pct
	}
	return NoPercent()
}

// Stats is everything the dashboard shows for one period.
type Stats struct {
	Period      Period              `json:"-"`
	HasData     bool                `json:"has_data"`
	Buckets     map[BucketKey]Count `json:"-"`
	Totals      Totals              `json:"totals"`
	Percentages Percentages         `json:"percentages"`
}

// Bucket returns the count for one source and category.
func (s *Stats) Bucket(source Source, category Category) Count {
	if c, ok := s.Buckets[BucketKey{Source: source, Category: category}]; ok {
		return c
	}
	return NoCount()
}

// MarshalJSON adds the period label and string-keyed buckets.
func (s *Stats) MarshalJSON() ([]byte, error) {
	type alias Stats
	buckets := make(map[string]Count, len(s.Buckets))
	for k, c := range s.Buckets {
		buckets[k.String()] = c
	}
	return json.Marshal(struct {
		Period  string           `json:"period"`
		Buckets map[string]Count `json:"buckets"`
		*alias
	}{
		Period:  s.Period.Label(),
		Buckets: buckets,
		alias:   (*alias)(s),
	})
}
