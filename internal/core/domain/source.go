package domain

import "strings"

// Source is the canonical platform a preference record originated from.
type Source string

// Canonical sources. The set is fixed.
const (
	SourceDealerWeb Source = "Dealer Web"
	SourceFordPass  Source = "FordPass"
	SourceOwnerWeb  Source = "Owner Web"
	SourceTier3     Source = "Tier3"
)

// channelSources maps raw ChannelType codes (upper-cased) to sources.
var channelSources = map[string]Source{
	"DP":             SourceDealerWeb,
	"FORDPASS":       SourceFordPass,
	"OWNERWEB":       SourceOwnerWeb,
	"TIER3DEALERWEB": SourceTier3,
}

// Sources returns all canonical sources in display order.
func Sources() []Source {
	return []Source{SourceDealerWeb, SourceFordPass, SourceOwnerWeb, SourceTier3}
}

// CXSources returns the sources grouped as customer-experience platforms.
func CXSources() []Source {
	return []Source{SourceFordPass, SourceOwnerWeb, SourceTier3}
}

// SourceForChannel resolves a raw channel code. Matching ignores case and
// surrounding whitespace. The boolean is false for unmapped codes.
func SourceForChannel(code string) (Source, bool) {
	source, ok := channelSources[strings.ToUpper(strings.TrimSpace(code))]
	return source, ok
}

// IsValid returns true if the source is one of the canonical sources.
func (s Source) IsValid() bool {
	switch s {
	case SourceDealerWeb, SourceFordPass, SourceOwnerWeb, SourceTier3:
		return true
	default:
		return false
	}
}

// IsCX reports whether the source belongs to the CX platforms grouping.
// Dealer Web is the only DX platform.
func (s Source) IsCX() bool {
	return s == SourceFordPass || s == SourceOwnerWeb || s == SourceTier3
}

// String returns the display label.
func (s Source) String() string {
	return string(s)
}
