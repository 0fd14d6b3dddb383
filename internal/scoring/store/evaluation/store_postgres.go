package evaluation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"crewfit/internal/scoring/models"
	id "crewfit/pkg/domain"
	dErrors "crewfit/pkg/domain-errors"
)

// PostgresStore persists evaluation snapshots in PostgreSQL. Identity and
// ranking fields are columns for querying; the full result, evidence
// included, rides along as JSONB.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed snapshot store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const insertEvaluation = `
INSERT INTO evaluations (
	id, candidate_id, vessel_id, rank, regime, final_score, label,
	mismatch_level, payload, evaluated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

func (s *PostgresStore) Append(ctx context.Context, result *models.ScoreResult) error {
	if result == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "score result is required")
	}
	if result.EvaluationID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "score result requires an evaluation id")
	}
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal evaluation payload: %w", err)
	}

	_, err = s.db.ExecContext(ctx, insertEvaluation,
		uuid.UUID(result.EvaluationID), uuid.UUID(result.CandidateID), uuid.UUID(result.VesselID),
		result.Rank.String(), result.Regime, result.FinalScore, string(result.Label),
		result.MismatchLevel, payload, result.EvaluatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return dErrors.Newf(dErrors.CodeConflict, "evaluation %s already recorded", result.EvaluationID)
		}
		return fmt.Errorf("append evaluation: %w", err)
	}
	return nil
}

const selectEvaluation = `
SELECT payload FROM evaluations WHERE id = $1`

func (s *PostgresStore) Get(ctx context.Context, evaluation id.EvaluationID) (*models.ScoreResult, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, selectEvaluation, uuid.UUID(evaluation)).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "evaluation %s not found", evaluation)
	}
	if err != nil {
		return nil, fmt.Errorf("load evaluation: %w", err)
	}
	return unmarshalResult(payload)
}

const selectByCandidate = `
SELECT payload FROM evaluations WHERE candidate_id = $1 ORDER BY evaluated_at DESC`

func (s *PostgresStore) ListByCandidate(ctx context.Context, candidate id.CandidateID) ([]*models.ScoreResult, error) {
	rows, err := s.db.QueryContext(ctx, selectByCandidate, uuid.UUID(candidate))
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	defer rows.Close()

	var out []*models.ScoreResult
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		result, err := unmarshalResult(payload)
		if err != nil {
			return nil, err
		}
		out = append(out, result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	return out, nil
}

func unmarshalResult(payload []byte) (*models.ScoreResult, error) {
	var result models.ScoreResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("unmarshal evaluation payload: %w", err)
	}
	return &result, nil
}
