package weightset

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"crewfit/internal/learning"
	"crewfit/internal/scoring/weights"
	id "crewfit/pkg/domain"
	dErrors "crewfit/pkg/domain-errors"
)

// PostgresStore persists weight-set history and training runs in
// PostgreSQL. Weight and delta maps are stored as JSONB; the unique index
// on (scope, company_id, role, version) enforces append-only versioning at
// the database level.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed weight-set store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const insertWeightSet = `
INSERT INTO weight_sets (
	scope, company_id, role, version, weights, deltas, rationale,
	sample_size, run_id, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

func (s *PostgresStore) AppendSet(ctx context.Context, record *learning.WeightSetRecord) error {
	if record == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "weight set record is required")
	}
	weightsJSON, err := json.Marshal(record.Weights)
	if err != nil {
		return fmt.Errorf("marshal weights: %w", err)
	}
	deltasJSON, err := json.Marshal(record.Deltas)
	if err != nil {
		return fmt.Errorf("marshal deltas: %w", err)
	}

	_, err = s.db.ExecContext(ctx, insertWeightSet,
		string(record.Scope), companyValue(record.Company), record.Role.String(),
		record.Version, weightsJSON, deltasJSON, pq.Array(record.Rationale),
		record.SampleSize, uuid.UUID(record.RunID), record.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return dErrors.Wrap(err, dErrors.CodeConflict, "weight set version already exists")
		}
		return fmt.Errorf("append weight set: %w", err)
	}
	return nil
}

const selectLatestSet = `
SELECT scope, company_id, role, version, weights, deltas, rationale,
	sample_size, run_id, created_at
FROM weight_sets
WHERE scope = $1 AND company_id IS NOT DISTINCT FROM $2 AND role = $3
ORDER BY version DESC
LIMIT 1`

func (s *PostgresStore) LatestSet(ctx context.Context, scope learning.Scope, company id.CompanyID, role id.RoleKey) (*learning.WeightSetRecord, error) {
	row := s.db.QueryRowContext(ctx, selectLatestSet, string(scope), companyValue(company), role.String())

	var (
		record      learning.WeightSetRecord
		scopeRaw    string
		companyRaw  uuid.NullUUID
		roleRaw     string
		weightsJSON []byte
		deltasJSON  []byte
		rationale   pq.StringArray
		runID       uuid.UUID
	)
	err := row.Scan(&scopeRaw, &companyRaw, &roleRaw, &record.Version,
		&weightsJSON, &deltasJSON, &rationale, &record.SampleSize, &runID, &record.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load latest weight set: %w", err)
	}

	record.Scope = learning.Scope(scopeRaw)
	if companyRaw.Valid {
		record.Company = id.CompanyID(companyRaw.UUID)
	}
	record.Role = id.RoleKey(roleRaw)
	record.Rationale = rationale
	record.RunID = id.TrainingRunID(runID)
	if err := json.Unmarshal(weightsJSON, &record.Weights); err != nil {
		return nil, fmt.Errorf("unmarshal weights: %w", err)
	}
	if err := json.Unmarshal(deltasJSON, &record.Deltas); err != nil {
		return nil, fmt.Errorf("unmarshal deltas: %w", err)
	}
	return &record, nil
}

const insertTrainingRun = `
INSERT INTO training_runs (
	id, scope, company_id, outcomes_seen, sets_written, skipped_roles,
	started_at, completed_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func (s *PostgresStore) AppendRun(ctx context.Context, run *learning.TrainingRun) error {
	if run == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "training run is required")
	}
	_, err := s.db.ExecContext(ctx, insertTrainingRun,
		uuid.UUID(run.ID), string(run.Scope), companyValue(run.Company),
		run.OutcomesSeen, run.SetsWritten, pq.Array(run.SkippedRoles),
		run.StartedAt, run.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("append training run: %w", err)
	}
	return nil
}

// CompanyWeights implements weights.Source over the company scope.
func (s *PostgresStore) CompanyWeights(company id.CompanyID, role id.RoleKey) weights.Map {
	record, err := s.LatestSet(context.Background(), learning.ScopeCompany, company, role)
	if err != nil || record == nil {
		return nil
	}
	return record.Weights
}

// GlobalWeights implements weights.Source over the global scope.
func (s *PostgresStore) GlobalWeights(role id.RoleKey) weights.Map {
	record, err := s.LatestSet(context.Background(), learning.ScopeGlobal, id.CompanyID{}, role)
	if err != nil || record == nil {
		return nil
	}
	return record.Weights
}

func companyValue(company id.CompanyID) any {
	if company.IsNil() {
		return nil
	}
	return uuid.UUID(company)
}
