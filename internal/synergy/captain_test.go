package synergy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"crewfit/internal/scoring/models"
)

func TestInferCommandStyle(t *testing.T) {
	t.Run("outcome-derived style wins with enough evidence", func(t *testing.T) {
		captain := &CaptainProfile{
			OutcomeStyle:   StyleCollaborative,
			OutcomeSamples: 8,
			Traits:         models.TraitVector{models.DimLeadership: 0.9, models.DimCommunication: 0.2},
		}
		assert.Equal(t, StyleCollaborative, InferCommandStyle(captain))
	})

	t.Run("thin outcome evidence falls back to traits", func(t *testing.T) {
		captain := &CaptainProfile{
			OutcomeStyle:   StyleCollaborative,
			OutcomeSamples: 2,
			Traits:         models.TraitVector{models.DimLeadership: 0.9, models.DimCommunication: 0.2},
		}
		assert.Equal(t, StyleAuthoritative, InferCommandStyle(captain))
	})

	t.Run("trait inference covers each style", func(t *testing.T) {
		cases := []struct {
			name   string
			traits models.TraitVector
			want   CommandStyle
		}{
			{"authoritative", models.TraitVector{models.DimLeadership: 0.8, models.DimCommunication: 0.3}, StyleAuthoritative},
			{"collaborative", models.TraitVector{models.DimCommunication: 0.8, models.DimTeamwork: 0.7}, StyleCollaborative},
			{"adaptive", models.TraitVector{models.DimAdaptability: 0.8}, StyleAdaptive},
			{"balanced", models.TraitVector{models.DimDiscipline: 0.5}, StyleBalanced},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				assert.Equal(t, tc.want, InferCommandStyle(&CaptainProfile{Traits: tc.traits}))
			})
		}
	})

	t.Run("no captain is balanced", func(t *testing.T) {
		assert.Equal(t, StyleBalanced, InferCommandStyle(nil))
		assert.Equal(t, StyleBalanced, InferCommandStyle(&CaptainProfile{}))
	})
}

func TestScoreCaptainFit(t *testing.T) {
	t.Run("graduated bands reward strong preferred dimensions", func(t *testing.T) {
		candidate := models.TraitVector{
			models.DimDiscipline:      0.85, // band 100
			models.DimStressTolerance: 0.65, // band 75
			models.DimSafetyAwareness: 0.45, // band 50
		}
		score, notes := ScoreCaptainFit(candidate, StyleAuthoritative)
		assert.InDelta(t, 75.0, score, 1e-9)
		assert.Len(t, notes, 3)
	})

	t.Run("unmeasured dimensions contribute the neutral band", func(t *testing.T) {
		score, _ := ScoreCaptainFit(models.TraitVector{}, StyleCollaborative)
		assert.InDelta(t, 50.0, score, 1e-9)
	})

	t.Run("weak dimensions bottom out at the lowest band", func(t *testing.T) {
		candidate := models.TraitVector{
			models.DimTeamwork:      0.1,
			models.DimCommunication: 0.1,
			models.DimAdaptability:  0.1,
		}
		score, _ := ScoreCaptainFit(candidate, StyleCollaborative)
		assert.InDelta(t, 25.0, score, 1e-9)
	})
}
