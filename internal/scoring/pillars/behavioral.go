package pillars

import (
	"context"
	"sort"

	"crewfit/internal/scoring/models"
	id "crewfit/pkg/domain"
)

// belowThresholdPenalty is subtracted per behavioral dimension that falls
// under its profile threshold.
const belowThresholdPenalty = 0.10

// neutralBehavioral is the documented score when no behavioral profile
// exists for the candidate.
const neutralBehavioral = 0.5

// SynergyResolver abstracts the v1/v2 synergy implementations behind a
// common contract. It returns a base compatibility score in [0,1] and the
// version tag used, so evidence records which regime produced the number.
type SynergyResolver interface {
	BaseSynergy(ctx context.Context, candidate *models.Candidate, vessel id.VesselID) (score float64, version string, err error)
}

// BehavioralScorer delegates to the synergy resolver and then penalizes
// dimensions that miss their profile-specific thresholds.
type BehavioralScorer struct {
	Resolver SynergyResolver
}

// BehavioralResult is the synergy pillar output.
type BehavioralResult struct {
	Score    float64
	Evidence models.BehavioralEvidence
}

// Score computes the behavioral pillar. Resolver failures and missing trait
// profiles degrade to the neutral score rather than failing the evaluation.
func (s BehavioralScorer) Score(ctx context.Context, candidate *models.Candidate, vessel id.VesselID, thresholds map[string]float64) (BehavioralResult, error) {
	evidence := models.BehavioralEvidence{}

	if len(candidate.Traits) == 0 {
		evidence.MissingProfile = true
		evidence.BaseScore = neutralBehavioral
		return BehavioralResult{Score: neutralBehavioral, Evidence: evidence}, nil
	}

	base, version, err := s.Resolver.BaseSynergy(ctx, candidate, vessel)
	if err != nil {
		return BehavioralResult{}, err
	}
	evidence.SynergyVersion = version
	evidence.BaseScore = base

	var below []string
	for dim, threshold := range thresholds {
		score, ok := candidate.Traits.Get(dim)
		if !ok {
			continue
		}
		if score < threshold {
			below = append(below, dim)
		}
	}
	sort.Strings(below)
	evidence.BelowThreshold = below
	evidence.AppliedPenalty = belowThresholdPenalty * float64(len(below))

	return BehavioralResult{
		Score:    clamp01(base - evidence.AppliedPenalty),
		Evidence: evidence,
	}, nil
}
