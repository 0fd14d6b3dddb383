package service

import (
	"crewfit/internal/scoring/profile"
	"crewfit/internal/scoring/weights"
	id "crewfit/pkg/domain"
)

// Scoring regimes. The regime is recorded on every result so consumers can
// tell which rulebook produced a score.
const (
	RegimeLegacy  = "legacy"
	RegimeProfile = "profile"
)

// legacyExperienceRequirement is the generic sea-time expectation applied
// when no requirement profile exists for the vessel type.
var legacyExperienceRequirement = profile.ExperienceRequirement{
	VesselTypeMonths: 12,
	TotalMonths:      24,
}

// pillarPlan is everything a single evaluation feeds the pillar scorers:
// which requirements apply, which thresholds bind, and how the four pillar
// scores are weighted.
type pillarPlan struct {
	regime     string
	weights    weights.Map
	certs      []profile.CertificateRequirement
	experience profile.ExperienceRequirement
	thresholds map[string]float64

	// legacyCompliance switches the compliance pillar from requirement
	// matching to grading the candidate's held certificates.
	legacyCompliance bool
}

// strategy turns one evaluation request into a pillar plan. Two
// implementations exist: the legacy fixed-pillar regime and the
// profile-aware regime driven by a resolved requirement profile.
type strategy interface {
	plan(rank id.RoleKey, company id.CompanyID, override weights.Map) pillarPlan
}

// legacyStrategy scores without vessel-type requirements. Weights follow
// the learned-weight precedence chain and bottom out at the fixed defaults.
type legacyStrategy struct {
	weights *weights.Resolver
}

func (s legacyStrategy) plan(rank id.RoleKey, company id.CompanyID, override weights.Map) pillarPlan {
	return pillarPlan{
		regime:           RegimeLegacy,
		weights:          s.weights.Resolve(rank, company, override),
		experience:       legacyExperienceRequirement,
		legacyCompliance: true,
	}
}

// profileStrategy scores against a resolved requirement profile. The
// profile's weights are authoritative; a caller override still wins when
// it normalizes cleanly.
type profileStrategy struct {
	profile *profile.RequirementProfile
}

func (s profileStrategy) plan(_ id.RoleKey, _ id.CompanyID, override weights.Map) pillarPlan {
	w := s.profile.Weights
	if normalized, ok := override.Normalize(); ok {
		w = normalized
	}
	return pillarPlan{
		regime:     RegimeProfile,
		weights:    w,
		certs:      s.profile.Certificates,
		experience: s.profile.Experience,
		thresholds: s.profile.BehaviorThresholds,
	}
}
