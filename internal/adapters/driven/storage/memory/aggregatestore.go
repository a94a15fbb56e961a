// Package memory provides in-memory implementations of the driven store ports.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/commsdash/internal/core/domain"
	"github.com/custodia-labs/commsdash/internal/core/ports/driven"
)

// Ensure AggregateStore implements the interface.
var _ driven.AggregateStore = (*AggregateStore)(nil)

// AggregateStore is an in-memory implementation of driven.AggregateStore.
// Aggregates are copied on the way in and out so callers never share a map
// with the store.
type AggregateStore struct {
	mu         sync.RWMutex
	aggregates map[domain.Period]domain.PeriodAggregate
}

// NewAggregateStore creates a new in-memory aggregate store.
func NewAggregateStore() *AggregateStore {
	return &AggregateStore{
		aggregates: make(map[domain.Period]domain.PeriodAggregate),
	}
}

// Replace stores agg for the period, discarding any previous aggregate.
func (s *AggregateStore) Replace(_ context.Context, period domain.Period, agg domain.PeriodAggregate) error {
	clone := agg.Clone()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aggregates[period] = clone
	return nil
}

// Get returns the period's aggregate.
func (s *AggregateStore) Get(_ context.Context, period domain.Period) (domain.PeriodAggregate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	agg, ok := s.aggregates[period]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return agg.Clone(), nil
}

// Delete removes the period's aggregate.
func (s *AggregateStore) Delete(_ context.Context, period domain.Period) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.aggregates, period)
	return nil
}

// Clear removes every aggregate.
func (s *AggregateStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.aggregates = make(map[domain.Period]domain.PeriodAggregate)
	return nil
}

// List returns the periods holding an aggregate, oldest first.
func (s *AggregateStore) List(_ context.Context) ([]domain.Period, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Period, 0, len(s.aggregates))
	for period := range s.aggregates {
		result = append(result, period)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Before(result[j])
	})
	return result, nil
}
