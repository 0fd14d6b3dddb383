package pillars

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"crewfit/internal/scoring/models"
	"crewfit/internal/scoring/profile"
)

func TestExperienceScorer(t *testing.T) {
	scorer := ExperienceScorer{}
	req := profile.ExperienceRequirement{VesselTypeMonths: 12, TotalMonths: 24}

	t.Run("full requirement on both axes scores one", func(t *testing.T) {
		candidate := &models.Candidate{Contracts: []models.ContractRecord{
			{VesselType: "crude tanker", Months: 18},
			{VesselType: "bulk carrier", Months: 12},
		}}
		result := scorer.Score(candidate, req, "crude tanker", 0)
		assert.InDelta(t, 1.0, result.Score, 1e-9)
		assert.Equal(t, "contracts", result.Evidence.Source)
		assert.Equal(t, 18, result.Evidence.VesselTypeMonths)
		assert.Equal(t, 30, result.Evidence.TotalMonths)
	})

	t.Run("partial vessel-type experience scores proportionally", func(t *testing.T) {
		candidate := &models.Candidate{Contracts: []models.ContractRecord{
			{VesselType: "crude tanker", Months: 6},
		}}
		result := scorer.Score(candidate, req, "crude tanker", 0)
		assert.InDelta(t, 0.6*0.5+0.4*0.25, result.Score, 1e-9)
	})

	t.Run("sea-time log fallback has no type breakdown", func(t *testing.T) {
		result := scorer.Score(&models.Candidate{}, req, "crude tanker", 24)
		assert.InDelta(t, 0.4, result.Score, 1e-9)
		assert.Equal(t, "sea_time_log", result.Evidence.Source)
	})

	t.Run("no history is neutral, never failing", func(t *testing.T) {
		result := scorer.Score(&models.Candidate{}, req, "crude tanker", 0)
		assert.Equal(t, 0.5, result.Score)
		assert.Equal(t, "none", result.Evidence.Source)
	})

	t.Run("zero requirements are trivially satisfied", func(t *testing.T) {
		candidate := &models.Candidate{Contracts: []models.ContractRecord{
			{VesselType: "yacht", Months: 1},
		}}
		result := scorer.Score(candidate, profile.ExperienceRequirement{}, "yacht", 0)
		assert.InDelta(t, 1.0, result.Score, 1e-9)
	})
}
