//go:build integration

package crewcontext_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"crewfit/internal/synergy"
	"crewfit/internal/synergy/store/crewcontext"
	id "crewfit/pkg/domain"
	"crewfit/pkg/testutil/containers"
)

type RedisCacheSuite struct {
	suite.Suite
	redis    *containers.RedisContainer
	registry *crewcontext.InMemoryRegistry
	loads    int
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
	s.registry = crewcontext.NewInMemoryRegistry()
	s.loads = 0
}

func (s *RedisCacheSuite) countingLoader() crewcontext.Loader {
	return func(ctx context.Context, vessel id.VesselID) (*synergy.CrewContext, error) {
		s.loads++
		return s.registry.Load(ctx, vessel)
	}
}

func (s *RedisCacheSuite) TestCacheServesWithoutReloading() {
	ctx := context.Background()
	vessel := id.VesselID(uuid.New())
	s.Require().NoError(s.registry.Upsert(ctx, &synergy.CrewContext{
		VesselID:   vessel,
		VesselType: "crude_tanker",
		Crew: []synergy.CrewMember{
			{CandidateID: id.CandidateID(uuid.New()), Rank: id.RoleBosun, Dimensions: map[string]int{"teamwork": 70}},
		},
	}))

	cache := crewcontext.NewRedis(s.redis.Client, time.Minute, s.countingLoader())

	first, err := cache.Get(ctx, vessel)
	s.Require().NoError(err)
	s.Equal("crude_tanker", first.VesselType)
	s.Require().Len(first.Crew, 1)

	second, err := cache.Get(ctx, vessel)
	s.Require().NoError(err)
	s.Equal(first.VesselID, second.VesselID)
	s.Equal(1, s.loads)
}

func (s *RedisCacheSuite) TestInvalidateForcesReload() {
	ctx := context.Background()
	vessel := id.VesselID(uuid.New())
	s.Require().NoError(s.registry.Upsert(ctx, &synergy.CrewContext{VesselID: vessel, VesselType: "feeder"}))

	cache := crewcontext.NewRedis(s.redis.Client, time.Minute, s.countingLoader())

	_, err := cache.Get(ctx, vessel)
	s.Require().NoError(err)

	s.Require().NoError(s.registry.Upsert(ctx, &synergy.CrewContext{VesselID: vessel, VesselType: "crude_tanker"}))
	s.Require().NoError(cache.Invalidate(ctx, vessel))

	fresh, err := cache.Get(ctx, vessel)
	s.Require().NoError(err)
	s.Equal("crude_tanker", fresh.VesselType)
	s.Equal(2, s.loads)
}

func (s *RedisCacheSuite) TestLoaderFailuresPropagate() {
	ctx := context.Background()
	cache := crewcontext.NewRedis(s.redis.Client, time.Minute, s.countingLoader())

	_, err := cache.Get(ctx, id.VesselID(uuid.New()))
	s.Require().Error(err)
}
