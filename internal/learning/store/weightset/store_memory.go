// Package weightset persists versioned learned weight sets and training
// run audit records.
package weightset

import (
	"context"
	"sync"

	"crewfit/internal/learning"
	"crewfit/internal/scoring/weights"
	id "crewfit/pkg/domain"
	dErrors "crewfit/pkg/domain-errors"
)

type setKey struct {
	scope   learning.Scope
	company id.CompanyID
	role    id.RoleKey
}

// InMemoryStore keeps weight-set history in memory. It implements both the
// learning store contract and the weight resolver's Source, so a single
// instance closes the loop from training to scoring in development and
// tests.
type InMemoryStore struct {
	mu   sync.RWMutex
	sets map[setKey][]*learning.WeightSetRecord
	runs []*learning.TrainingRun
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sets: make(map[setKey][]*learning.WeightSetRecord)}
}

// AppendSet stores a new version. Versions must arrive strictly increasing
// per scope/company/role; anything else is a conflict.
func (s *InMemoryStore) AppendSet(_ context.Context, record *learning.WeightSetRecord) error {
	if record == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "weight set record is required")
	}
	key := setKey{record.Scope, record.Company, record.Role}

	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.sets[key]
	if len(history) > 0 && record.Version <= history[len(history)-1].Version {
		return dErrors.Newf(dErrors.CodeConflict,
			"weight set version %d is not newer than %d", record.Version, history[len(history)-1].Version)
	}
	clone := *record
	clone.Weights = record.Weights.Clone()
	s.sets[key] = append(history, &clone)
	return nil
}

// LatestSet returns the newest version, or nil when none exists.
func (s *InMemoryStore) LatestSet(_ context.Context, scope learning.Scope, company id.CompanyID, role id.RoleKey) (*learning.WeightSetRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.sets[setKey{scope, company, role}]
	if len(history) == 0 {
		return nil, nil
	}
	clone := *history[len(history)-1]
	clone.Weights = clone.Weights.Clone()
	return &clone, nil
}

// AppendRun stores a training-run audit record.
func (s *InMemoryStore) AppendRun(_ context.Context, run *learning.TrainingRun) error {
	if run == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "training run is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *run
	s.runs = append(s.runs, &clone)
	return nil
}

// Runs returns the stored training runs, oldest first.
func (s *InMemoryStore) Runs() []*learning.TrainingRun {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*learning.TrainingRun, len(s.runs))
	copy(out, s.runs)
	return out
}

// CompanyWeights implements weights.Source over the company scope.
func (s *InMemoryStore) CompanyWeights(company id.CompanyID, role id.RoleKey) weights.Map {
	record, _ := s.LatestSet(context.Background(), learning.ScopeCompany, company, role)
	if record == nil {
		return nil
	}
	return record.Weights
}

// GlobalWeights implements weights.Source over the global scope.
func (s *InMemoryStore) GlobalWeights(role id.RoleKey) weights.Map {
	record, _ := s.LatestSet(context.Background(), learning.ScopeGlobal, id.CompanyID{}, role)
	if record == nil {
		return nil
	}
	return record.Weights
}
