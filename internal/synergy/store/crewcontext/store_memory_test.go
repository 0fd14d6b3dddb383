package crewcontext

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crewfit/internal/synergy"
	id "crewfit/pkg/domain"
)

func TestInMemoryCache(t *testing.T) {
	ctx := context.Background()
	vessel := id.VesselID(uuid.New())

	t.Run("loads once within the TTL", func(t *testing.T) {
		loads := 0
		cache := New(300*time.Second, func(context.Context, id.VesselID) (*synergy.CrewContext, error) {
			loads++
			return &synergy.CrewContext{VesselID: vessel}, nil
		})

		for range 5 {
			got, err := cache.Get(ctx, vessel)
			require.NoError(t, err)
			assert.Equal(t, vessel, got.VesselID)
		}
		assert.Equal(t, 1, loads)
	})

	t.Run("reloads after expiry", func(t *testing.T) {
		now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		loads := 0
		cache := New(300*time.Second, func(context.Context, id.VesselID) (*synergy.CrewContext, error) {
			loads++
			return &synergy.CrewContext{VesselID: vessel}, nil
		}).WithClock(func() time.Time { return now })

		_, err := cache.Get(ctx, vessel)
		require.NoError(t, err)

		now = now.Add(301 * time.Second)
		_, err = cache.Get(ctx, vessel)
		require.NoError(t, err)
		assert.Equal(t, 2, loads)
	})

	t.Run("loader errors pass through without caching", func(t *testing.T) {
		boom := errors.New("crew store down")
		failures := 0
		cache := New(time.Minute, func(context.Context, id.VesselID) (*synergy.CrewContext, error) {
			failures++
			return nil, boom
		})

		_, err := cache.Get(ctx, vessel)
		assert.ErrorIs(t, err, boom)
		_, err = cache.Get(ctx, vessel)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 2, failures)
	})

	t.Run("invalidate forces a reload", func(t *testing.T) {
		loads := 0
		cache := New(time.Hour, func(context.Context, id.VesselID) (*synergy.CrewContext, error) {
			loads++
			return &synergy.CrewContext{VesselID: vessel}, nil
		})

		_, _ = cache.Get(ctx, vessel)
		_ = cache.Invalidate(ctx, vessel)
		_, _ = cache.Get(ctx, vessel)
		assert.Equal(t, 2, loads)
	})

	t.Run("concurrent reads race safely to populate", func(t *testing.T) {
		cache := New(time.Minute, func(context.Context, id.VesselID) (*synergy.CrewContext, error) {
			return &synergy.CrewContext{VesselID: vessel}, nil
		})

		done := make(chan error, 16)
		for range 16 {
			go func() {
				_, err := cache.Get(ctx, vessel)
				done <- err
			}()
		}
		for range 16 {
			require.NoError(t, <-done)
		}
	})
}
