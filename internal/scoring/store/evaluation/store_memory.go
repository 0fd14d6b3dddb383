// Package evaluation persists immutable scoring snapshots. A snapshot is
// written once when the evaluation completes and never updated; audits and
// the learning loop read them back by id or candidate.
package evaluation

import (
	"context"
	"sync"

	"crewfit/internal/scoring/models"
	id "crewfit/pkg/domain"
	dErrors "crewfit/pkg/domain-errors"
)

// InMemoryStore is the development and test snapshot store.
type InMemoryStore struct {
	mu          sync.RWMutex
	byID        map[id.EvaluationID]*models.ScoreResult
	byCandidate map[id.CandidateID][]*models.ScoreResult
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		byID:        make(map[id.EvaluationID]*models.ScoreResult),
		byCandidate: make(map[id.CandidateID][]*models.ScoreResult),
	}
}

// Append stores one snapshot. Re-appending an evaluation id is a conflict;
// snapshots are immutable.
func (s *InMemoryStore) Append(_ context.Context, result *models.ScoreResult) error {
	if result == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "score result is required")
	}
	if result.EvaluationID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "score result requires an evaluation id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[result.EvaluationID]; exists {
		return dErrors.Newf(dErrors.CodeConflict, "evaluation %s already recorded", result.EvaluationID)
	}
	clone := cloneResult(result)
	s.byID[result.EvaluationID] = clone
	s.byCandidate[result.CandidateID] = append(s.byCandidate[result.CandidateID], clone)
	return nil
}

// Get returns one snapshot by id.
func (s *InMemoryStore) Get(_ context.Context, evaluation id.EvaluationID) (*models.ScoreResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.byID[evaluation]
	if !ok {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "evaluation %s not found", evaluation)
	}
	return cloneResult(result), nil
}

// ListByCandidate returns a candidate's snapshots, newest first.
func (s *InMemoryStore) ListByCandidate(_ context.Context, candidate id.CandidateID) ([]*models.ScoreResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.byCandidate[candidate]
	out := make([]*models.ScoreResult, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		out = append(out, cloneResult(history[i]))
	}
	return out, nil
}

func cloneResult(r *models.ScoreResult) *models.ScoreResult {
	clone := *r
	clone.Pillars = append([]models.PillarScore(nil), r.Pillars...)
	clone.Blockers = append([]models.Blocker(nil), r.Blockers...)
	clone.Suggestions = append([]id.RoleKey(nil), r.Suggestions...)
	return &clone
}
