package learning_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"crewfit/internal/learning"
	"crewfit/internal/learning/store/weightset"
	"crewfit/internal/outcome"
	"crewfit/internal/outcome/store/outcomes"
	"crewfit/internal/scoring/models"
	"crewfit/internal/scoring/weights"
	id "crewfit/pkg/domain"
)

var trainNow = time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC)

type LearningSuite struct {
	suite.Suite
	outcomes *outcomes.InMemoryStore
	sets     *weightset.InMemoryStore
	svc      *learning.Service
	company  id.CompanyID
}

func TestLearningSuite(t *testing.T) {
	suite.Run(t, new(LearningSuite))
}

func (s *LearningSuite) SetupTest() {
	s.outcomes = outcomes.NewInMemoryStore().WithClock(func() time.Time { return trainNow })
	s.sets = weightset.NewInMemoryStore()
	s.company = id.CompanyID(uuid.New())

	svc, err := learning.New(s.outcomes, s.sets,
		learning.WithClock(func() time.Time { return trainNow }))
	s.Require().NoError(err)
	s.svc = svc
}

func (s *LearningSuite) seed(role id.RoleKey, outcomeType outcome.Type, severity, count int) {
	ctx := context.Background()
	for i := 0; i < count; i++ {
		err := s.outcomes.Append(ctx, &outcome.Outcome{
			CandidateID: id.CandidateID(uuid.New()),
			VesselID:    id.VesselID(uuid.New()),
			CompanyID:   s.company,
			Rank:        role,
			Type:        outcomeType,
			Severity:    severity,
			OccurredAt:  trainNow.AddDate(0, 0, -(i + 1)),
		})
		s.Require().NoError(err)
	}
}

func (s *LearningSuite) TestTrain() {
	ctx := context.Background()

	s.Run("conflict-heavy outcomes raise the synergy weight", func() {
		s.SetupTest()
		s.seed(id.RoleAbleSeaman, outcome.TypeConflictReported, 80, 12)
		s.seed(id.RoleAbleSeaman, outcome.TypeRetentionSuccess, 0, 28)

		run, err := s.svc.Train(ctx, learning.TrainRequest{
			Scope: learning.ScopeGlobal,
			Roles: []id.RoleKey{id.RoleAbleSeaman},
		})
		s.Require().NoError(err)
		s.Equal(1, run.SetsWritten)
		s.Equal(40, run.OutcomesSeen)

		record, err := s.sets.LatestSet(ctx, learning.ScopeGlobal, id.CompanyID{}, id.RoleAbleSeaman)
		s.Require().NoError(err)
		s.Require().NotNil(record)

		s.Equal(1, record.Version)
		s.Equal(40, record.SampleSize)
		s.NotEmpty(record.Rationale)
		s.Greater(record.Weights[models.PillarSynergy], weights.Default()[models.PillarSynergy])
		s.InDelta(1.0, record.Weights.Sum(), 1e-9)
	})

	s.Run("every delta is capped at the maximum step", func() {
		s.SetupTest()
		s.seed(id.RoleMotorman, outcome.TypeSafetyIncident, 100, 40)

		_, err := s.svc.Train(ctx, learning.TrainRequest{
			Scope: learning.ScopeGlobal,
			Roles: []id.RoleKey{id.RoleMotorman},
		})
		s.Require().NoError(err)

		record, err := s.sets.LatestSet(ctx, learning.ScopeGlobal, id.CompanyID{}, id.RoleMotorman)
		s.Require().NoError(err)
		s.Require().NotNil(record)
		s.InDelta(0.05, record.Deltas[models.PillarCompliance], 1e-9)
	})

	s.Run("a thin sample is skipped cleanly", func() {
		s.SetupTest()
		s.seed(id.RoleCook, outcome.TypeEarlyTermination, 90, 5)

		run, err := s.svc.Train(ctx, learning.TrainRequest{
			Scope: learning.ScopeGlobal,
			Roles: []id.RoleKey{id.RoleCook},
		})
		s.Require().NoError(err)
		s.Zero(run.SetsWritten)
		s.Contains(run.SkippedRoles, id.RoleCook.String())

		record, err := s.sets.LatestSet(ctx, learning.ScopeGlobal, id.CompanyID{}, id.RoleCook)
		s.Require().NoError(err)
		s.Nil(record)
	})

	s.Run("an all-positive sample writes nothing", func() {
		s.SetupTest()
		s.seed(id.RoleSteward, outcome.TypePerformanceHigh, 0, 35)

		run, err := s.svc.Train(ctx, learning.TrainRequest{
			Scope: learning.ScopeGlobal,
			Roles: []id.RoleKey{id.RoleSteward},
		})
		s.Require().NoError(err)
		s.Zero(run.SetsWritten)
		s.Empty(run.SkippedRoles)
	})

	s.Run("repeat runs append increasing versions", func() {
		s.SetupTest()
		s.seed(id.RoleBosun, outcome.TypeConflictReported, 70, 35)

		for range 2 {
			_, err := s.svc.Train(ctx, learning.TrainRequest{
				Scope: learning.ScopeGlobal,
				Roles: []id.RoleKey{id.RoleBosun},
			})
			s.Require().NoError(err)
		}

		record, err := s.sets.LatestSet(ctx, learning.ScopeGlobal, id.CompanyID{}, id.RoleBosun)
		s.Require().NoError(err)
		s.Require().NotNil(record)
		s.Equal(2, record.Version)
	})

	s.Run("company scope trains only that company's outcomes", func() {
		s.SetupTest()
		s.seed(id.RoleAbleSeaman, outcome.TypeEarlyTermination, 80, 35)

		other := id.CompanyID(uuid.New())
		run, err := s.svc.Train(ctx, learning.TrainRequest{
			Scope:   learning.ScopeCompany,
			Company: other,
			Roles:   []id.RoleKey{id.RoleAbleSeaman},
		})
		s.Require().NoError(err)
		s.Zero(run.OutcomesSeen)

		run, err = s.svc.Train(ctx, learning.TrainRequest{
			Scope:   learning.ScopeCompany,
			Company: s.company,
			Roles:   []id.RoleKey{id.RoleAbleSeaman},
		})
		s.Require().NoError(err)
		s.Equal(35, run.OutcomesSeen)
		s.Equal(1, run.SetsWritten)
	})

	s.Run("scope and company must agree", func() {
		s.SetupTest()
		_, err := s.svc.Train(ctx, learning.TrainRequest{Scope: learning.ScopeCompany})
		s.Error(err)

		_, err = s.svc.Train(ctx, learning.TrainRequest{Scope: learning.ScopeGlobal, Company: s.company})
		s.Error(err)

		_, err = s.svc.Train(ctx, learning.TrainRequest{Scope: learning.Scope("regional")})
		s.Error(err)
	})

	s.Run("every run leaves an audit record", func() {
		s.SetupTest()
		s.seed(id.RoleAbleSeaman, outcome.TypeRetentionSuccess, 0, 35)

		_, err := s.svc.Train(ctx, learning.TrainRequest{
			Scope: learning.ScopeGlobal,
			Roles: []id.RoleKey{id.RoleAbleSeaman},
		})
		s.Require().NoError(err)

		runs := s.sets.Runs()
		s.Require().Len(runs, 1)
		s.False(runs[0].ID.IsNil())
		s.Equal(trainNow, runs[0].StartedAt)
	})
}

// TestLearnedWeightsReachTheResolver closes the loop: a trained global set
// must win over the static default during weight resolution.
func TestLearnedWeightsReachTheResolver(t *testing.T) {
	ctx := context.Background()
	outcomeStore := outcomes.NewInMemoryStore()
	setStore := weightset.NewInMemoryStore()

	svc, err := learning.New(outcomeStore, setStore)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 35; i++ {
		err := outcomeStore.Append(ctx, &outcome.Outcome{
			CandidateID: id.CandidateID(uuid.New()),
			Rank:        id.RoleChiefEngineer,
			Type:        outcome.TypeSafetyIncident,
			Severity:    90,
			OccurredAt:  time.Now().AddDate(0, 0, -i-1),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	if _, err := svc.Train(ctx, learning.TrainRequest{
		Scope: learning.ScopeGlobal,
		Roles: []id.RoleKey{id.RoleChiefEngineer},
	}); err != nil {
		t.Fatal(err)
	}

	resolved := weights.NewResolver(setStore).Resolve(id.RoleChiefEngineer, id.CompanyID{}, nil)
	if resolved[models.PillarCompliance] <= weights.Default()[models.PillarCompliance] {
		t.Fatalf("expected learned compliance weight above the default, got %f", resolved[models.PillarCompliance])
	}
}
