package synergy

import (
	"context"

	"crewfit/internal/scoring/profile"
	id "crewfit/pkg/domain"
)

// EvidenceService is the external vessel-type evidence collaborator. It is
// keyed by candidate and canonical vessel-type code and returns a 0-100
// suitability score derived from fleet-wide deployment evidence.
type EvidenceService interface {
	VesselTypeFit(ctx context.Context, candidate id.CandidateID, vesselType id.VesselTypeKey) (float64, error)
}

// ScoreVesselFit maps the free-text vessel type to its canonical code and
// consults the evidence service. Unmapped types and service failures
// degrade to neutral: uncertainty never inflates the pillar.
func ScoreVesselFit(ctx context.Context, svc EvidenceService, candidate id.CandidateID, rawVesselType string) (float64, []string) {
	key, ok := profile.CanonicalVesselType(rawVesselType)
	if !ok {
		return 50, []string{"vessel type unmapped: neutral fit"}
	}
	if svc == nil {
		return 50, []string{"no evidence service configured: neutral fit"}
	}
	score, err := svc.VesselTypeFit(ctx, candidate, key)
	if err != nil {
		return 50, []string{"evidence service unavailable: neutral fit"}
	}
	return clamp100(score), nil
}
