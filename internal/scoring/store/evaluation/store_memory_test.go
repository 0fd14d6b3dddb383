package evaluation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crewfit/internal/scoring/models"
	id "crewfit/pkg/domain"
	dErrors "crewfit/pkg/domain-errors"
)

func snapshot(candidate id.CandidateID, score float64, at time.Time) *models.ScoreResult {
	return &models.ScoreResult{
		EvaluationID: id.NewEvaluationID(),
		CandidateID:  candidate,
		VesselID:     id.VesselID(uuid.New()),
		Rank:         id.RoleAbleSeaman,
		Regime:       "legacy",
		FinalScore:   score,
		Label:        models.LabelForScore(score),
		Pillars: []models.PillarScore{
			{Pillar: models.PillarAvailability, Score: 1.0, Weight: 0.4},
		},
		MismatchLevel: "none",
		EvaluatedAt:   at,
	}
}

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	candidate := id.CandidateID(uuid.New())

	t.Run("round-trips a snapshot by id", func(t *testing.T) {
		store := NewInMemoryStore()
		stored := snapshot(candidate, 0.82, now)
		require.NoError(t, store.Append(ctx, stored))

		got, err := store.Get(ctx, stored.EvaluationID)
		require.NoError(t, err)
		assert.Equal(t, stored.FinalScore, got.FinalScore)
		assert.Equal(t, stored.Label, got.Label)
	})

	t.Run("re-appending the same evaluation is a conflict", func(t *testing.T) {
		store := NewInMemoryStore()
		stored := snapshot(candidate, 0.82, now)
		require.NoError(t, store.Append(ctx, stored))

		err := store.Append(ctx, stored)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("unknown evaluation is not found", func(t *testing.T) {
		store := NewInMemoryStore()
		_, err := store.Get(ctx, id.NewEvaluationID())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("candidate history comes back newest first", func(t *testing.T) {
		store := NewInMemoryStore()
		require.NoError(t, store.Append(ctx, snapshot(candidate, 0.60, now.AddDate(0, 0, -2))))
		require.NoError(t, store.Append(ctx, snapshot(candidate, 0.75, now)))

		history, err := store.ListByCandidate(ctx, candidate)
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.Equal(t, 0.75, history[0].FinalScore)
		assert.Equal(t, 0.60, history[1].FinalScore)
	})

	t.Run("snapshots are immutable through returned copies", func(t *testing.T) {
		store := NewInMemoryStore()
		stored := snapshot(candidate, 0.82, now)
		require.NoError(t, store.Append(ctx, stored))

		got, err := store.Get(ctx, stored.EvaluationID)
		require.NoError(t, err)
		got.FinalScore = 0.01
		got.Pillars[0].Score = 0.0

		again, err := store.Get(ctx, stored.EvaluationID)
		require.NoError(t, err)
		assert.Equal(t, 0.82, again.FinalScore)
		assert.Equal(t, 1.0, again.Pillars[0].Score)
	})
}
