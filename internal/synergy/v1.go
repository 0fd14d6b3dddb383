package synergy

import (
	"context"
	"math"

	"crewfit/internal/scoring/models"
	id "crewfit/pkg/domain"
	dErrors "crewfit/pkg/domain-errors"
)

// V1Engine is the first-generation synergy computation: a plain
// dimension-delta comparison between the candidate and the crew average.
// It predates the four-pillar engine and is kept behind the resolver until
// configuration retires it.
type V1Engine struct {
	contexts ContextSource
}

// NewV1Engine builds the dimension-delta engine.
func NewV1Engine(contexts ContextSource) (*V1Engine, error) {
	if contexts == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "crew context source is required")
	}
	return &V1Engine{contexts: contexts}, nil
}

// Evaluate returns a [0,1] compatibility score: 1 minus the mean absolute
// delta between the candidate's dimensions and the crew averages. An empty
// crew or trait vector is neutral.
func (e *V1Engine) Evaluate(ctx context.Context, candidate *models.Candidate, vessel id.VesselID) (float64, error) {
	crewCtx, err := e.contexts.Get(ctx, vessel)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load crew context")
	}

	if len(candidate.Traits) == 0 || len(crewCtx.Crew) == 0 {
		return 0.5, nil
	}

	deltaSum, count := 0.0, 0
	for dim, candidateScore := range candidate.Traits {
		crewSum, crewCount := 0.0, 0
		for _, member := range crewCtx.Crew {
			if v, ok := member.Dimensions[dim]; ok {
				crewSum += float64(v) / 100
				crewCount++
			}
		}
		if crewCount == 0 {
			continue
		}
		crewAvg := crewSum / float64(crewCount)
		deltaSum += math.Abs(candidateScore - crewAvg)
		count++
	}
	if count == 0 {
		return 0.5, nil
	}
	return 1 - deltaSum/float64(count), nil
}
