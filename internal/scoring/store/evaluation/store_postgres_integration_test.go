//go:build integration

package evaluation_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"crewfit/internal/scoring/models"
	"crewfit/internal/scoring/store/evaluation"
	id "crewfit/pkg/domain"
	dErrors "crewfit/pkg/domain-errors"
	"crewfit/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *evaluation.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = evaluation.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.Truncate(context.Background(), "evaluations"))
}

func (s *PostgresStoreSuite) result(candidate id.CandidateID, score float64, at time.Time) *models.ScoreResult {
	return &models.ScoreResult{
		EvaluationID: id.NewEvaluationID(),
		CandidateID:  candidate,
		VesselID:     id.VesselID(uuid.New()),
		Rank:         id.RoleAbleSeaman,
		Regime:       "profile",
		FinalScore:   score,
		Label:        models.LabelForScore(score),
		Pillars: []models.PillarScore{
			{Pillar: models.PillarCompliance, Score: 1.0, Weight: 0.20},
			{Pillar: models.PillarSynergy, Score: 0.8, Weight: 0.30},
		},
		MismatchLevel: "none",
		EvaluatedAt:   at,
	}
}

func (s *PostgresStoreSuite) TestAppendAndGet() {
	ctx := context.Background()
	candidate := id.CandidateID(uuid.New())
	stored := s.result(candidate, 0.82, time.Now().UTC().Truncate(time.Millisecond))

	s.Require().NoError(s.store.Append(ctx, stored))

	got, err := s.store.Get(ctx, stored.EvaluationID)
	s.Require().NoError(err)
	s.Equal(stored.EvaluationID, got.EvaluationID)
	s.Equal(stored.FinalScore, got.FinalScore)
	s.Equal(stored.Label, got.Label)
	s.Len(got.Pillars, 2)
}

func (s *PostgresStoreSuite) TestDuplicateAppendConflicts() {
	ctx := context.Background()
	stored := s.result(id.CandidateID(uuid.New()), 0.70, time.Now().UTC())

	s.Require().NoError(s.store.Append(ctx, stored))

	err := s.store.Append(ctx, stored)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))
}

func (s *PostgresStoreSuite) TestGetUnknownIsNotFound() {
	_, err := s.store.Get(context.Background(), id.NewEvaluationID())
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *PostgresStoreSuite) TestListByCandidateNewestFirst() {
	ctx := context.Background()
	candidate := id.CandidateID(uuid.New())
	base := time.Now().UTC().Truncate(time.Millisecond)

	older := s.result(candidate, 0.60, base.Add(-time.Hour))
	newer := s.result(candidate, 0.75, base)
	s.Require().NoError(s.store.Append(ctx, older))
	s.Require().NoError(s.store.Append(ctx, newer))
	s.Require().NoError(s.store.Append(ctx, s.result(id.CandidateID(uuid.New()), 0.50, base)))

	history, err := s.store.ListByCandidate(ctx, candidate)
	s.Require().NoError(err)
	s.Require().Len(history, 2)
	s.Equal(0.75, history[0].FinalScore)
	s.Equal(0.60, history[1].FinalScore)
}
