package domain

import "strings"

// RawRecord is one row of an uploaded preference export.
// Only the three columns below are read; others are ignored.
type RawRecord struct {
	ChannelType          string `csv:"ChannelType"`
	IsTextCommunication  string `csv:"IsTextCommunication"`
	IsEmailCommunication string `csv:"IsEmailCommunication"`
}

// ParseFlag converts a boolean-like field. Only "true" (any case,
// surrounding whitespace ignored) is true; every other value is false.
func ParseFlag(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), "true")
}

// Bucket classifies the record. The boolean is false when the channel code
// has no source mapping and the record must be dropped.
func (r RawRecord) Bucket() (BucketKey, bool) {
	source, ok := SourceForChannel(r.ChannelType)
	if !ok {
		return BucketKey{}, false
	}
	return BucketKey{
		Source:   source,
		Category: Classify(ParseFlag(r.IsTextCommunication), ParseFlag(r.IsEmailCommunication)),
	}, true
}
