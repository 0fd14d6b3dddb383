package synergy

import (
	"fmt"
	"sort"

	"crewfit/internal/scoring/models"
)

// minOutcomeSamples is the evidence floor below which an outcome-derived
// style is ignored in favor of trait inference.
const minOutcomeSamples = 5

// stylePreferences maps each command style to the dimensions it rewards in
// crew members.
var stylePreferences = map[CommandStyle][]string{
	StyleAuthoritative: {models.DimDiscipline, models.DimStressTolerance, models.DimSafetyAwareness},
	StyleCollaborative: {models.DimTeamwork, models.DimCommunication, models.DimAdaptability},
	StyleAdaptive:      {models.DimAdaptability, models.DimCommunication, models.DimStressTolerance},
	StyleBalanced:      {models.DimTeamwork, models.DimDiscipline, models.DimCommunication},
}

// InferCommandStyle determines the captain's style. The outcome-derived
// profile wins when evidence-sufficient; otherwise the captain's own
// behavioral dimensions decide, and an absent profile falls back to
// balanced.
func InferCommandStyle(captain *CaptainProfile) CommandStyle {
	if captain == nil {
		return StyleBalanced
	}
	if captain.OutcomeStyle != "" && captain.OutcomeSamples >= minOutcomeSamples {
		return captain.OutcomeStyle
	}
	return styleFromTraits(captain.Traits)
}

func styleFromTraits(traits models.TraitVector) CommandStyle {
	if len(traits) == 0 {
		return StyleBalanced
	}
	leadership, _ := traits.Get(models.DimLeadership)
	communication, _ := traits.Get(models.DimCommunication)
	teamwork, _ := traits.Get(models.DimTeamwork)
	adaptability, _ := traits.Get(models.DimAdaptability)

	switch {
	case leadership >= 0.7 && communication < 0.5:
		return StyleAuthoritative
	case communication >= 0.7 && teamwork >= 0.6:
		return StyleCollaborative
	case adaptability >= 0.7:
		return StyleAdaptive
	default:
		return StyleBalanced
	}
}

// captainFitBands grade a candidate dimension against the style's
// preferences. Contribution is graduated, not binary, so a near-miss still
// earns most of the band below.
func captainFitBand(score float64) float64 {
	switch {
	case score >= 0.80:
		return 100
	case score >= 0.60:
		return 75
	case score >= 0.40:
		return 50
	default:
		return 25
	}
}

// ScoreCaptainFit scores the candidate against the inferred command style,
// averaging graduated band contributions over the style's preferred
// dimensions. Missing dimensions contribute the neutral band.
func ScoreCaptainFit(candidate models.TraitVector, style CommandStyle) (float64, []string) {
	preferred := stylePreferences[style]
	if len(preferred) == 0 {
		preferred = stylePreferences[StyleBalanced]
	}

	dims := append([]string(nil), preferred...)
	sort.Strings(dims)

	total := 0.0
	var notes []string
	for _, dim := range dims {
		score, ok := candidate.Get(dim)
		if !ok {
			total += 50
			notes = append(notes, fmt.Sprintf("%s: unmeasured", dim))
			continue
		}
		band := captainFitBand(score)
		total += band
		notes = append(notes, fmt.Sprintf("%s: %.2f → band %.0f", dim, score, band))
	}
	return total / float64(len(dims)), notes
}
