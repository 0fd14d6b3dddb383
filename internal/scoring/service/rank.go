package service

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"crewfit/internal/scoring/models"
	"crewfit/internal/scoring/weights"
	id "crewfit/pkg/domain"
	dErrors "crewfit/pkg/domain-errors"
)

// RankRequest scores a candidate pool against one deployment and returns
// the ordered shortlist.
type RankRequest struct {
	Candidates     []*models.Candidate
	VesselID       id.VesselID
	VesselType     string
	Rank           id.RoleKey
	CompanyID      id.CompanyID
	WeightOverride weights.Map
	// TopK truncates the ranking. Zero returns everything.
	TopK int
}

// Rank evaluates the pool in bounded parallel and orders it by final score
// descending. A candidate whose evaluation fails is logged and excluded;
// one bad record never sinks the batch.
func (s *Service) Rank(ctx context.Context, req RankRequest) ([]models.RankedCandidate, error) {
	if len(req.Candidates) == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "candidate pool is empty")
	}
	if req.VesselID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "vessel id is required")
	}

	results := make([]*models.ScoreResult, len(req.Candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.rankConcurrency)
	for i, candidate := range req.Candidates {
		g.Go(func() error {
			if candidate == nil {
				if s.metrics != nil {
					s.metrics.IncrementBatchSkipped()
				}
				return nil
			}
			result, err := s.Evaluate(gctx, EvaluateRequest{
				Candidate:      candidate,
				VesselID:       req.VesselID,
				VesselType:     req.VesselType,
				Rank:           req.Rank,
				CompanyID:      req.CompanyID,
				WeightOverride: req.WeightOverride,
			})
			if err != nil {
				s.logger.WarnContext(gctx, "candidate excluded from ranking",
					"candidate_id", candidate.ID, "vessel_id", req.VesselID, "error", err)
				if s.metrics != nil {
					s.metrics.IncrementBatchSkipped()
				}
				return nil
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	scored := make([]*models.ScoreResult, 0, len(results))
	for _, result := range results {
		if result != nil {
			scored = append(scored, result)
		}
	}
	if len(scored) == 0 {
		return nil, dErrors.New(dErrors.CodeInternal, "no candidate in the pool could be scored")
	}

	// Deterministic order: score descending, candidate id as tiebreak.
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].FinalScore != scored[j].FinalScore {
			return scored[i].FinalScore > scored[j].FinalScore
		}
		return scored[i].CandidateID.String() < scored[j].CandidateID.String()
	})

	if req.TopK > 0 && req.TopK < len(scored) {
		scored = scored[:req.TopK]
	}

	ranked := make([]models.RankedCandidate, len(scored))
	for i, result := range scored {
		ranked[i] = models.RankedCandidate{Position: i + 1, Result: result}
	}
	return ranked, nil
}
