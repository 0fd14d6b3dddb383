// Package outcome records what actually happened after a deployment. The
// records are the training signal for the weight-learning loop and are
// append-only: history is never edited, only extended.
package outcome

import (
	"context"
	"time"

	id "crewfit/pkg/domain"
	dErrors "crewfit/pkg/domain-errors"
)

// Type classifies a post-deployment outcome event.
type Type string

const (
	TypeEarlyTermination Type = "early_termination"
	TypeConflictReported Type = "conflict_reported"
	TypeSafetyIncident   Type = "safety_incident"
	TypePerformanceHigh  Type = "performance_high"
	TypeRetentionSuccess Type = "retention_success"
)

// IsValid checks the type is a supported enum value.
func (t Type) IsValid() bool {
	switch t {
	case TypeEarlyTermination, TypeConflictReported, TypeSafetyIncident,
		TypePerformanceHigh, TypeRetentionSuccess:
		return true
	}
	return false
}

// Negative reports whether the outcome signals a failed placement.
func (t Type) Negative() bool {
	switch t {
	case TypeEarlyTermination, TypeConflictReported, TypeSafetyIncident:
		return true
	}
	return false
}

// Outcome is one observed post-deployment event tied to a candidate and,
// when known, to the evaluation that recommended the placement.
type Outcome struct {
	ID          id.OutcomeID   `json:"id"`
	CandidateID id.CandidateID `json:"candidate_id"`
	VesselID    id.VesselID    `json:"vessel_id"`
	CompanyID   id.CompanyID   `json:"company_id"`
	// EvaluationID links back to the scoring snapshot when the placement
	// came through the engine. Nil for externally sourced placements.
	EvaluationID id.EvaluationID `json:"evaluation_id,omitempty"`
	Rank         id.RoleKey      `json:"rank"`
	Type         Type            `json:"type"`
	// Severity grades the event 0-100. Zero means unreported.
	Severity int `json:"severity"`
	// CaptainID, when set, attributes the outcome to service under a
	// specific captain. Feeds outcome-derived command-style inference.
	CaptainID  *id.CandidateID `json:"captain_id,omitempty"`
	Note       string          `json:"note,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// Validate checks the record is well-formed before it is appended.
func (o *Outcome) Validate() error {
	if o.CandidateID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "outcome requires a candidate id")
	}
	if !o.Type.IsValid() {
		return dErrors.Newf(dErrors.CodeValidation, "unknown outcome type %q", o.Type)
	}
	if o.Severity < 0 || o.Severity > 100 {
		return dErrors.Newf(dErrors.CodeValidation, "severity %d outside 0-100", o.Severity)
	}
	if o.OccurredAt.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "outcome requires an occurrence time")
	}
	return nil
}

// Filter narrows outcome listings. Zero-valued fields match everything.
type Filter struct {
	Role    id.RoleKey
	Company id.CompanyID
	Since   time.Time
}

// Matches reports whether an outcome passes the filter.
func (f Filter) Matches(o *Outcome) bool {
	if f.Role != "" && o.Rank != f.Role {
		return false
	}
	if !f.Company.IsNil() && o.CompanyID != f.Company {
		return false
	}
	if !f.Since.IsZero() && o.OccurredAt.Before(f.Since) {
		return false
	}
	return true
}

// Store is the append-only outcome log.
type Store interface {
	Append(ctx context.Context, o *Outcome) error
	List(ctx context.Context, filter Filter) ([]*Outcome, error)
}
