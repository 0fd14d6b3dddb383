package synergy

import (
	"fmt"
	"math"
	"sort"

	"crewfit/internal/scoring/models"
)

// BalanceConfig tunes the team-balance dispersion scoring.
type BalanceConfig struct {
	// IdealMin/IdealMax bound the standard-deviation band (0-100 scale)
	// that scores full marks.
	IdealMin float64
	IdealMax float64
	// GapFillBonus is added per dimension where the candidate lifts a
	// crew-wide weakness.
	GapFillBonus float64
	// SaturationPenalty is subtracted per dimension the candidate
	// over-concentrates.
	SaturationPenalty float64
}

// DefaultBalanceConfig returns the tuned dispersion band and adjustments.
func DefaultBalanceConfig() BalanceConfig {
	return BalanceConfig{
		IdealMin:          8,
		IdealMax:          25,
		GapFillBonus:      5,
		SaturationPenalty: 5,
	}
}

const (
	// crewGapCeiling: a crew average below this marks a dimension gap.
	crewGapCeiling = 40.0
	// crewSaturationFloor: a crew average above this marks saturation.
	crewSaturationFloor = 80.0
	// strongCandidateFloor/ceiling decide whether the candidate fills a
	// gap or piles onto a saturated dimension.
	strongCandidateFloor = 70.0
)

// ScoreTeamBalance computes the dispersion of each shared competency
// dimension across current crew plus the candidate. Dispersion inside the
// ideal band scores 100; too-uniform teams (groupthink risk) and
// too-polarized teams (cohesion risk) are penalized proportionally.
// Gap-fill bonuses and saturation penalties adjust the result per
// dimension before clamping to [0,100].
func ScoreTeamBalance(cfg BalanceConfig, crew []CrewMember, candidate models.TraitVector) (float64, []string) {
	if len(crew) == 0 {
		// No crew on board yet: nothing to balance against.
		return 50, []string{"no crew context: neutral balance"}
	}

	dims := sharedDimensions(crew, candidate)
	if len(dims) == 0 {
		return 50, []string{"no shared dimensions: neutral balance"}
	}

	var total float64
	var notes []string
	for _, dim := range dims {
		values := make([]float64, 0, len(crew)+1)
		crewSum := 0.0
		for _, member := range crew {
			if v, ok := member.Dimensions[dim]; ok {
				values = append(values, float64(v))
				crewSum += float64(v)
			}
		}
		crewAvg := 50.0
		if len(values) > 0 {
			crewAvg = crewSum / float64(len(values))
		}

		candidateScore, hasCandidate := candidate.Get(dim)
		candidate100 := candidateScore * 100
		if hasCandidate {
			values = append(values, candidate100)
		}

		sd := stddev(values)
		score := dispersionScore(cfg, sd)

		if hasCandidate {
			if crewAvg < crewGapCeiling && candidate100 >= strongCandidateFloor {
				score += cfg.GapFillBonus
				notes = append(notes, fmt.Sprintf("%s: fills crew gap (avg %.0f)", dim, crewAvg))
			}
			if crewAvg > crewSaturationFloor && candidate100 >= crewSaturationFloor {
				score -= cfg.SaturationPenalty
				notes = append(notes, fmt.Sprintf("%s: over-concentrates (avg %.0f)", dim, crewAvg))
			}
		}
		total += clamp100(score)
	}
	return clamp100(total / float64(len(dims))), notes
}

// dispersionScore maps a standard deviation onto 0-100: full marks inside
// the ideal band, linear falloff outside it.
func dispersionScore(cfg BalanceConfig, sd float64) float64 {
	switch {
	case sd >= cfg.IdealMin && sd <= cfg.IdealMax:
		return 100
	case sd < cfg.IdealMin:
		// Too uniform. sd=0 is maximal groupthink risk.
		return 60 + 40*(sd/cfg.IdealMin)
	default:
		// Too polarized. Falloff over the band width past IdealMax.
		over := sd - cfg.IdealMax
		score := 100 - over*(40/cfg.IdealMax)
		if score < 20 {
			return 20
		}
		return score
	}
}

func sharedDimensions(crew []CrewMember, candidate models.TraitVector) []string {
	seen := map[string]bool{}
	for _, member := range crew {
		for dim := range member.Dimensions {
			seen[dim] = true
		}
	}
	for dim := range candidate {
		seen[dim] = true
	}
	dims := make([]string, 0, len(seen))
	for dim := range seen {
		dims = append(dims, dim)
	}
	sort.Strings(dims)
	return dims
}

func stddev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}

func clamp100(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
