// Package learning closes the loop from observed deployment outcomes back
// to the pillar weights used in scoring. Training runs read the outcome
// log, nudge weights by small capped steps, and append versioned weight
// sets; nothing is ever rewritten in place, so every historical score stays
// explainable against the weight set that produced it.
package learning

import (
	"time"

	"crewfit/internal/scoring/weights"
	id "crewfit/pkg/domain"
)

// Scope separates global learned sets from company-scoped ones.
type Scope string

const (
	ScopeGlobal  Scope = "global"
	ScopeCompany Scope = "company"
)

// IsValid checks the scope is a supported enum value.
func (s Scope) IsValid() bool {
	return s == ScopeGlobal || s == ScopeCompany
}

// WeightSetRecord is one appended, versioned weight set for a role within
// a scope. Version numbers are per scope/company/role and strictly
// increasing.
type WeightSetRecord struct {
	Scope   Scope        `json:"scope"`
	Company id.CompanyID `json:"company_id,omitempty"`
	Role    id.RoleKey   `json:"role"`
	Version int          `json:"version"`
	Weights weights.Map  `json:"weights"`

	// Deltas are the per-pillar adjustments applied to the previous set,
	// before renormalization. Kept for the audit trail.
	Deltas map[string]float64 `json:"deltas"`
	// Rationale lists the outcome signals that justified each adjustment.
	Rationale []string `json:"rationale"`

	SampleSize int              `json:"sample_size"`
	RunID      id.TrainingRunID `json:"run_id"`
	CreatedAt  time.Time        `json:"created_at"`
}

// TrainingRun is the audit record for one learning pass.
type TrainingRun struct {
	ID           id.TrainingRunID `json:"id"`
	Scope        Scope            `json:"scope"`
	Company      id.CompanyID     `json:"company_id,omitempty"`
	OutcomesSeen int              `json:"outcomes_seen"`
	SetsWritten  int              `json:"sets_written"`
	// SkippedRoles names roles left untouched for lack of sample size.
	SkippedRoles []string  `json:"skipped_roles,omitempty"`
	StartedAt    time.Time `json:"started_at"`
	CompletedAt  time.Time `json:"completed_at"`
}
