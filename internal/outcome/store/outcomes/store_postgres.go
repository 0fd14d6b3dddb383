package outcomes

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"crewfit/internal/outcome"
	id "crewfit/pkg/domain"
	dErrors "crewfit/pkg/domain-errors"
)

// PostgresStore persists the outcome log in PostgreSQL. The table carries
// no UPDATE path; appends are the only write.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed outcome store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const insertOutcome = `
INSERT INTO outcomes (
	id, candidate_id, vessel_id, company_id, evaluation_id,
	rank, outcome_type, severity, captain_id, note, occurred_at, recorded_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

func (s *PostgresStore) Append(ctx context.Context, o *outcome.Outcome) error {
	if o == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "outcome is required")
	}
	if err := o.Validate(); err != nil {
		return err
	}
	if o.ID.IsNil() {
		o.ID = id.NewOutcomeID()
	}

	var captain any
	if o.CaptainID != nil {
		captain = uuid.UUID(*o.CaptainID)
	}
	var evaluation any
	if !o.EvaluationID.IsNil() {
		evaluation = uuid.UUID(o.EvaluationID)
	}

	_, err := s.db.ExecContext(ctx, insertOutcome,
		uuid.UUID(o.ID), uuid.UUID(o.CandidateID), uuid.UUID(o.VesselID), uuid.UUID(o.CompanyID),
		evaluation, o.Rank.String(), string(o.Type), o.Severity, captain, o.Note,
		o.OccurredAt, o.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("append outcome: %w", err)
	}
	return nil
}

const selectOutcomes = `
SELECT id, candidate_id, vessel_id, company_id, evaluation_id,
	rank, outcome_type, severity, captain_id, note, occurred_at, recorded_at
FROM outcomes
WHERE ($1 = '' OR rank = $1)
	AND ($2::uuid IS NULL OR company_id = $2)
	AND ($3::timestamptz IS NULL OR occurred_at >= $3)
ORDER BY occurred_at ASC`

func (s *PostgresStore) List(ctx context.Context, filter outcome.Filter) ([]*outcome.Outcome, error) {
	var company any
	if !filter.Company.IsNil() {
		company = uuid.UUID(filter.Company)
	}
	var since any
	if !filter.Since.IsZero() {
		since = filter.Since
	}

	rows, err := s.db.QueryContext(ctx, selectOutcomes, filter.Role.String(), company, since)
	if err != nil {
		return nil, fmt.Errorf("list outcomes: %w", err)
	}
	defer rows.Close()

	var out []*outcome.Outcome
	for rows.Next() {
		record, err := scanOutcome(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list outcomes: %w", err)
	}
	return out, nil
}

func scanOutcome(rows *sql.Rows) (*outcome.Outcome, error) {
	var (
		o                  outcome.Outcome
		oid, cand, ves, co uuid.UUID
		eval, captain      uuid.NullUUID
		rank, outcomeType  string
	)
	err := rows.Scan(&oid, &cand, &ves, &co, &eval, &rank, &outcomeType,
		&o.Severity, &captain, &o.Note, &o.OccurredAt, &o.RecordedAt)
	if err != nil {
		return nil, fmt.Errorf("scan outcome: %w", err)
	}
	o.ID = id.OutcomeID(oid)
	o.CandidateID = id.CandidateID(cand)
	o.VesselID = id.VesselID(ves)
	o.CompanyID = id.CompanyID(co)
	if eval.Valid {
		o.EvaluationID = id.EvaluationID(eval.UUID)
	}
	o.Rank = id.RoleKey(rank)
	o.Type = outcome.Type(outcomeType)
	if captain.Valid {
		captainID := id.CandidateID(captain.UUID)
		o.CaptainID = &captainID
	}
	return &o, nil
}
