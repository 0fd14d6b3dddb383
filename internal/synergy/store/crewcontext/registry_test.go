package crewcontext_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crewfit/internal/synergy"
	"crewfit/internal/synergy/store/crewcontext"
	id "crewfit/pkg/domain"
	dErrors "crewfit/pkg/domain-errors"
)

func TestInMemoryRegistry(t *testing.T) {
	ctx := context.Background()
	vessel := id.VesselID(uuid.New())

	t.Run("upsert then load round-trips", func(t *testing.T) {
		registry := crewcontext.NewInMemoryRegistry()
		require.NoError(t, registry.Upsert(ctx, &synergy.CrewContext{
			VesselID:   vessel,
			VesselType: "crude_tanker",
			Crew: []synergy.CrewMember{
				{CandidateID: id.CandidateID(uuid.New()), Rank: id.RoleBosun, Dimensions: map[string]int{"teamwork": 70}},
			},
		}))

		got, err := registry.Load(ctx, vessel)
		require.NoError(t, err)
		assert.Equal(t, "crude_tanker", got.VesselType)
		require.Len(t, got.Crew, 1)
		assert.False(t, got.FetchedAt.IsZero())
	})

	t.Run("upsert replaces the previous context", func(t *testing.T) {
		registry := crewcontext.NewInMemoryRegistry()
		require.NoError(t, registry.Upsert(ctx, &synergy.CrewContext{VesselID: vessel, VesselType: "feeder"}))
		require.NoError(t, registry.Upsert(ctx, &synergy.CrewContext{VesselID: vessel, VesselType: "crude_tanker"}))

		got, err := registry.Load(ctx, vessel)
		require.NoError(t, err)
		assert.Equal(t, "crude_tanker", got.VesselType)
	})

	t.Run("unknown vessel is not found", func(t *testing.T) {
		registry := crewcontext.NewInMemoryRegistry()
		_, err := registry.Load(ctx, id.VesselID(uuid.New()))
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	t.Run("rejects contexts without a vessel id", func(t *testing.T) {
		registry := crewcontext.NewInMemoryRegistry()
		err := registry.Upsert(ctx, &synergy.CrewContext{VesselType: "feeder"})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("mutating a loaded copy does not touch the stored context", func(t *testing.T) {
		registry := crewcontext.NewInMemoryRegistry()
		require.NoError(t, registry.Upsert(ctx, &synergy.CrewContext{
			VesselID: vessel,
			Crew:     []synergy.CrewMember{{CandidateID: id.CandidateID(uuid.New()), Dimensions: map[string]int{"discipline": 60}}},
		}))

		got, err := registry.Load(ctx, vessel)
		require.NoError(t, err)
		got.Crew[0].Dimensions["discipline"] = 1

		again, err := registry.Load(ctx, vessel)
		require.NoError(t, err)
		assert.Equal(t, 60, again.Crew[0].Dimensions["discipline"])
	})
}
