package pillars

import (
	"time"

	"crewfit/internal/scoring/models"
)

const (
	soonAvailableGraceDays = 15
	contractEndingSoonDays = 30

	scoreAvailable          = 1.0
	scoreSoonAvailable      = 0.9
	scoreSoonAvailableFloor = 0.5
	scoreContractEndingSoon = 0.5
	scoreOnContract         = 0.2
	scoreUnknown            = 0.3
)

// AvailabilityScorer converts deployment state into a pillar score.
type AvailabilityScorer struct{}

// AvailabilityResult is the availability pillar output.
type AvailabilityResult struct {
	Score    float64
	Evidence models.AvailabilityEvidence
}

// Score maps the availability state at the given instant:
//
//	available                     → 1.0
//	soon_available, ≤15 days out  → 0.9
//	soon_available, further out   → linear decay from 0.9 toward 0.5
//	on_contract, end ≤30 days     → 0.5
//	on_contract otherwise         → 0.2
//	unknown                       → 0.3
func (s AvailabilityScorer) Score(availability models.Availability, now time.Time) AvailabilityResult {
	evidence := models.AvailabilityEvidence{State: availability.State}

	switch availability.State {
	case models.AvailabilityAvailable:
		return AvailabilityResult{Score: scoreAvailable, Evidence: evidence}

	case models.AvailabilitySoonAvailable:
		if availability.ContractEnd == nil {
			// Declared soon-available without an estimate: treat as just
			// inside the grace window.
			return AvailabilityResult{Score: scoreSoonAvailable, Evidence: evidence}
		}
		evidence.ContractEndKnown = true
		days := daysUntil(now, *availability.ContractEnd)
		evidence.DaysToAvailable = days
		if days <= soonAvailableGraceDays {
			return AvailabilityResult{Score: scoreSoonAvailable, Evidence: evidence}
		}
		// Decay 0.9 → 0.5 over the following 90 days.
		decay := (scoreSoonAvailable - scoreSoonAvailableFloor) * float64(days-soonAvailableGraceDays) / 90.0
		score := scoreSoonAvailable - decay
		if score < scoreSoonAvailableFloor {
			score = scoreSoonAvailableFloor
		}
		return AvailabilityResult{Score: score, Evidence: evidence}

	case models.AvailabilityOnContract:
		if availability.ContractEnd != nil {
			evidence.ContractEndKnown = true
			days := daysUntil(now, *availability.ContractEnd)
			evidence.DaysToAvailable = days
			if days <= contractEndingSoonDays {
				return AvailabilityResult{Score: scoreContractEndingSoon, Evidence: evidence}
			}
		}
		return AvailabilityResult{Score: scoreOnContract, Evidence: evidence}

	default:
		return AvailabilityResult{Score: scoreUnknown, Evidence: evidence}
	}
}

func daysUntil(now, t time.Time) int {
	d := int(t.Sub(now).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}
