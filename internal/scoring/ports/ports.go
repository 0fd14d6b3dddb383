// Package ports defines shared interfaces for the scoring module.
// Interfaces are placed here when consumed by multiple services to avoid
// duplication.
package ports

import (
	"context"

	"crewfit/internal/rolefit"
	"crewfit/internal/scoring/models"
	"crewfit/internal/scoring/profile"
	id "crewfit/pkg/domain"
)

// ProfileResolver resolves the effective requirement profile for a vessel
// type and company, or nil when legacy scoring applies.
type ProfileResolver interface {
	Resolve(ctx context.Context, rawVesselType string, company id.CompanyID) (*profile.RequirementProfile, error)
}

// RoleFitEngine annotates a candidate's behavioral fit to the applied role.
type RoleFitEngine interface {
	Evaluate(appliedRole id.RoleKey, traits models.TraitVector) (*rolefit.Result, error)
}

// SeaTimeSource supplies total logged sea-time months when contract
// history is absent.
type SeaTimeSource interface {
	TotalMonths(ctx context.Context, candidate id.CandidateID) (int, error)
}

// EvaluationStore persists immutable evaluation snapshots. Append-only:
// snapshots are never updated in place.
type EvaluationStore interface {
	Append(ctx context.Context, result *models.ScoreResult) error
}
