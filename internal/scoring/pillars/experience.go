package pillars

import (
	"crewfit/internal/scoring/models"
	"crewfit/internal/scoring/profile"
)

const (
	vesselTypeExperienceWeight = 0.6
	totalExperienceWeight      = 0.4
	// neutralExperience is the documented score for candidates with no
	// recorded history: unknown sea time never scores as failing.
	neutralExperience = 0.5
)

// ExperienceScorer measures sea-time depth against a profile's minimums.
type ExperienceScorer struct{}

// ExperienceResult is the competency pillar output.
type ExperienceResult struct {
	Score    float64
	Evidence models.ExperienceEvidence
}

// Score combines vessel-type-specific months and total months, each capped
// at the requirement. SeaTimeLog months are used when contract history is
// absent; with neither, the score is neutral.
func (s ExperienceScorer) Score(candidate *models.Candidate, req profile.ExperienceRequirement, rawVesselType string, seaTimeMonths int) ExperienceResult {
	evidence := models.ExperienceEvidence{
		RequiredType:  req.VesselTypeMonths,
		RequiredTotal: req.TotalMonths,
	}

	var typeMonths, totalMonths int
	switch {
	case len(candidate.Contracts) > 0:
		typeMonths = candidate.MonthsOnVesselType(rawVesselType)
		totalMonths = candidate.TotalMonths()
		evidence.Source = "contracts"
	case seaTimeMonths > 0:
		// Sea-time logs carry no vessel-type breakdown.
		totalMonths = seaTimeMonths
		evidence.Source = "sea_time_log"
	default:
		evidence.Source = "none"
		evidence.VesselTypeMonths = 0
		evidence.TotalMonths = 0
		return ExperienceResult{Score: neutralExperience, Evidence: evidence}
	}

	evidence.VesselTypeMonths = typeMonths
	evidence.TotalMonths = totalMonths

	score := vesselTypeExperienceWeight*ratio(typeMonths, req.VesselTypeMonths) +
		totalExperienceWeight*ratio(totalMonths, req.TotalMonths)
	return ExperienceResult{Score: clamp01(score), Evidence: evidence}
}

// ratio caps fulfillment at 1.0; a zero requirement is trivially satisfied.
func ratio(have, required int) float64 {
	if required <= 0 {
		return 1.0
	}
	r := float64(have) / float64(required)
	if r > 1 {
		return 1
	}
	return r
}
