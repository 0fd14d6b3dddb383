// Package outcomes persists the append-only outcome log.
package outcomes

import (
	"context"
	"sync"
	"time"

	"crewfit/internal/outcome"
	id "crewfit/pkg/domain"
	dErrors "crewfit/pkg/domain-errors"
)

// InMemoryStore is the development and test implementation of the outcome
// log. Records are copied on the way in and out so callers can never mutate
// stored history.
type InMemoryStore struct {
	mu      sync.RWMutex
	records []*outcome.Outcome
	now     func() time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{now: time.Now}
}

// WithClock overrides the time source. Tests only.
func (s *InMemoryStore) WithClock(now func() time.Time) *InMemoryStore {
	s.now = now
	return s
}

// Append validates and stores one outcome. The record's ID and RecordedAt
// are assigned here when unset.
func (s *InMemoryStore) Append(_ context.Context, o *outcome.Outcome) error {
	if o == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "outcome is required")
	}
	if err := o.Validate(); err != nil {
		return err
	}

	stored := *o
	if stored.ID.IsNil() {
		stored.ID = id.NewOutcomeID()
	}
	if stored.RecordedAt.IsZero() {
		stored.RecordedAt = s.now()
	}
	o.ID = stored.ID
	o.RecordedAt = stored.RecordedAt

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, &stored)
	return nil
}

// List returns copies of every record matching the filter, oldest first.
func (s *InMemoryStore) List(_ context.Context, filter outcome.Filter) ([]*outcome.Outcome, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*outcome.Outcome
	for _, record := range s.records {
		if filter.Matches(record) {
			clone := *record
			out = append(out, &clone)
		}
	}
	return out, nil
}
