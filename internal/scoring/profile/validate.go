package profile

import (
	"math"

	dErrors "crewfit/pkg/domain-errors"
)

const (
	// weightSumTolerance is the permitted drift around 1.0 for pillar weights.
	weightSumTolerance = 0.01
	// maxReasonKeyLength bounds blocker reason keys for downstream display.
	maxReasonKeyLength = 100
)

// Validate enforces the profile invariants before a profile may drive
// scoring. Invalid profiles are rejected; the caller falls back to legacy
// weights rather than scoring against a malformed requirement set.
func Validate(p *RequirementProfile) error {
	if p == nil {
		return dErrors.New(dErrors.CodeValidation, "requirement profile is nil")
	}

	sum := 0.0
	for pillar, w := range p.Weights {
		if w < 0 || w > 1 {
			return dErrors.Newf(dErrors.CodeValidation, "weight for pillar %q out of [0,1]: %f", pillar, w)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > weightSumTolerance {
		return dErrors.Newf(dErrors.CodeValidation, "pillar weights sum to %.4f, must be 1.0±%.2f", sum, weightSumTolerance)
	}

	for _, cert := range p.Certificates {
		if cert.Type == "" {
			return dErrors.New(dErrors.CodeValidation, "certificate requirement missing type")
		}
		if cert.MinValidityMonths < 0 {
			return dErrors.Newf(dErrors.CodeValidation, "certificate %q has negative min validity", cert.Type)
		}
		if cert.HardBlock {
			if !cert.Mandatory {
				return dErrors.Newf(dErrors.CodeValidation, "certificate %q is hard_block but not mandatory", cert.Type)
			}
			if cert.ReasonKey == "" {
				return dErrors.Newf(dErrors.CodeValidation, "certificate %q is hard_block without a reason key", cert.Type)
			}
		}
		if len(cert.ReasonKey) > maxReasonKeyLength {
			return dErrors.Newf(dErrors.CodeValidation, "certificate %q reason key exceeds %d chars", cert.Type, maxReasonKeyLength)
		}
	}

	if p.Experience.VesselTypeMonths < 0 || p.Experience.TotalMonths < 0 {
		return dErrors.New(dErrors.CodeValidation, "experience minimums must be non-negative")
	}

	for dim, threshold := range p.BehaviorThresholds {
		if threshold < 0 || threshold > 1 {
			return dErrors.Newf(dErrors.CodeValidation, "behavior threshold for %q out of [0,1]: %f", dim, threshold)
		}
	}
	return nil
}
