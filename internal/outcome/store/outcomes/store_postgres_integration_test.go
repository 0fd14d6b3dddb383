//go:build integration

package outcomes_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"crewfit/internal/outcome"
	"crewfit/internal/outcome/store/outcomes"
	id "crewfit/pkg/domain"
	"crewfit/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *outcomes.PostgresStore
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = outcomes.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.Truncate(context.Background(), "outcomes"))
}

func (s *PostgresStoreSuite) record(rank id.RoleKey, company id.CompanyID, kind outcome.Type, occurred time.Time) *outcome.Outcome {
	return &outcome.Outcome{
		CandidateID: id.CandidateID(uuid.New()),
		VesselID:    id.VesselID(uuid.New()),
		CompanyID:   company,
		Rank:        rank,
		Type:        kind,
		Severity:    40,
		OccurredAt:  occurred,
		RecordedAt:  occurred,
	}
}

func (s *PostgresStoreSuite) TestAppendAssignsIdentity() {
	ctx := context.Background()
	record := s.record(id.RoleAbleSeaman, id.CompanyID(uuid.New()), outcome.TypeConflictReported, time.Now().UTC())

	s.Require().NoError(s.store.Append(ctx, record))
	s.False(record.ID.IsNil())

	listed, err := s.store.List(ctx, outcome.Filter{})
	s.Require().NoError(err)
	s.Require().Len(listed, 1)
	s.Equal(record.CandidateID, listed[0].CandidateID)
	s.Nil(listed[0].CaptainID)
	s.True(listed[0].EvaluationID.IsNil())
}

func (s *PostgresStoreSuite) TestOptionalLinksRoundTrip() {
	ctx := context.Background()
	captain := id.CandidateID(uuid.New())
	record := s.record(id.RoleCook, id.CompanyID(uuid.New()), outcome.TypeSafetyIncident, time.Now().UTC())
	record.EvaluationID = id.NewEvaluationID()
	record.CaptainID = &captain

	s.Require().NoError(s.store.Append(ctx, record))

	listed, err := s.store.List(ctx, outcome.Filter{})
	s.Require().NoError(err)
	s.Require().Len(listed, 1)
	s.Equal(record.EvaluationID, listed[0].EvaluationID)
	s.Require().NotNil(listed[0].CaptainID)
	s.Equal(captain, *listed[0].CaptainID)
}

func (s *PostgresStoreSuite) TestListFilters() {
	ctx := context.Background()
	company := id.CompanyID(uuid.New())
	now := time.Now().UTC().Truncate(time.Millisecond)

	s.Require().NoError(s.store.Append(ctx, s.record(id.RoleAbleSeaman, company, outcome.TypeConflictReported, now.Add(-48*time.Hour))))
	s.Require().NoError(s.store.Append(ctx, s.record(id.RoleAbleSeaman, company, outcome.TypeRetentionSuccess, now)))
	s.Require().NoError(s.store.Append(ctx, s.record(id.RoleCook, company, outcome.TypeEarlyTermination, now)))
	s.Require().NoError(s.store.Append(ctx, s.record(id.RoleAbleSeaman, id.CompanyID(uuid.New()), outcome.TypeConflictReported, now)))

	byRole, err := s.store.List(ctx, outcome.Filter{Role: id.RoleCook})
	s.Require().NoError(err)
	s.Len(byRole, 1)

	byCompany, err := s.store.List(ctx, outcome.Filter{Company: company})
	s.Require().NoError(err)
	s.Len(byCompany, 3)

	recent, err := s.store.List(ctx, outcome.Filter{Company: company, Since: now.Add(-time.Hour)})
	s.Require().NoError(err)
	s.Len(recent, 2)
}

func (s *PostgresStoreSuite) TestListOrdersByOccurrence() {
	ctx := context.Background()
	company := id.CompanyID(uuid.New())
	now := time.Now().UTC().Truncate(time.Millisecond)

	s.Require().NoError(s.store.Append(ctx, s.record(id.RoleAbleSeaman, company, outcome.TypeRetentionSuccess, now)))
	s.Require().NoError(s.store.Append(ctx, s.record(id.RoleAbleSeaman, company, outcome.TypeConflictReported, now.Add(-time.Hour))))

	listed, err := s.store.List(ctx, outcome.Filter{})
	s.Require().NoError(err)
	s.Require().Len(listed, 2)
	s.Equal(outcome.TypeConflictReported, listed[0].Type)
	s.Equal(outcome.TypeRetentionSuccess, listed[1].Type)
}
