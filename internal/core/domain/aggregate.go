package domain

// BucketKey identifies one (source, category) cell of an aggregate.
type BucketKey struct {
	Source   Source
	Category Category
}

// String returns the composite "{source}-{category}" form.
func (k BucketKey) String() string {
	return k.Source.String() + "-" + k.Category.String()
}

// Buckets returns every key, category-major: each category lists the
// sources in display order.
func Buckets() []BucketKey {
	keys := make([]BucketKey, 0, len(Sources())*len(Categories()))
	for _, category := range Categories() {
		for _, source := range Sources() {
			keys = append(keys, BucketKey{Source: source, Category: category})
		}
	}
	return keys
}

// PeriodAggregate holds the bucket counts of one period's upload.
// Buckets that saw no rows are absent rather than zero.
type PeriodAggregate map[BucketKey]int

// NewPeriodAggregate creates an empty aggregate.
func NewPeriodAggregate() PeriodAggregate {
	return make(PeriodAggregate)
}

// Count returns the count for a bucket, zero when absent.
func (a PeriodAggregate) Count(source Source, category Category) int {
	return a[BucketKey{Source: source, Category: category}]
}

// Total returns the sum of every bucket.
func (a PeriodAggregate) Total() int {
	total := 0
	for _, n := range a {
		total += n
	}
	return total
}

// Clone returns an independent copy.
func (a PeriodAggregate) Clone() PeriodAggregate {
	clone := make(PeriodAggregate, len(a))
	for k, n := range a {
		clone[k] = n
	}
	return clone
}

// Keyed returns the counts keyed by the composite string form.
func (a PeriodAggregate) Keyed() map[string]int {
	keyed := make(map[string]int, len(a))
	for k, n := range a {
		keyed[k.String()] = n
	}
	return keyed
}
