package driven

import (
	"context"

	"github.com/custodia-labs/commsdash/internal/core/domain"
)

// AggregateStore holds the monthly collection of aggregates.
// Periods are only ever replaced whole or removed; there is no merge.
type AggregateStore interface {
	// Replace stores agg for the period, discarding any previous aggregate.
	Replace(ctx context.Context, period domain.Period, agg domain.PeriodAggregate) error

	// Get returns the period's aggregate, or domain.ErrNotFound.
	Get(ctx context.Context, period domain.Period) (domain.PeriodAggregate, error)

	// Delete removes the period's aggregate. Deleting a missing period is not an error.
	Delete(ctx context.Context, period domain.Period) error

	// Clear removes every aggregate.
	Clear(ctx context.Context) error

	// List returns the periods holding an aggregate, oldest first.
	List(ctx context.Context) ([]domain.Period, error)
}
