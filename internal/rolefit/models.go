// Package rolefit detects when a candidate's behavioral profile diverges
// from the role they applied for. The engine only annotates: it never
// alters the applied role, and any role suggestion stays inside the applied
// role's department.
package rolefit

import (
	id "crewfit/pkg/domain"
)

// Relevance grades how much a behavioral dimension matters for a role.
type Relevance string

const (
	RelevanceCritical Relevance = "critical"
	RelevanceHigh     Relevance = "high"
	RelevanceModerate Relevance = "moderate"
	RelevanceLow      Relevance = "low"
)

// Weight returns the scoring weight for a relevance grade.
func (r Relevance) Weight() float64 {
	switch r {
	case RelevanceCritical:
		return 1.0
	case RelevanceHigh:
		return 0.75
	case RelevanceModerate:
		return 0.5
	case RelevanceLow:
		return 0.25
	}
	return 0
}

// DNAProfile is the expected behavioral shape of one role, versioned.
// Every active role has at most one profile per version.
type DNAProfile struct {
	Role    id.RoleKey `json:"role"`
	Version int        `json:"version"`
	// Dimensions maps behavioral dimension name → relevance for this role.
	Dimensions map[string]Relevance `json:"dimensions"`
	// Weighting coefficients carried for planning surfaces; the fit
	// computation itself uses per-dimension relevance.
	TechnicalWeight  float64 `json:"technical_weight"`
	BehavioralWeight float64 `json:"behavioral_weight"`
	LeadershipWeight float64 `json:"leadership_weight"`
	SafetyWeight     float64 `json:"safety_weight"`
}

// MismatchLevel is the severity of role/profile divergence.
type MismatchLevel string

const (
	MismatchNone   MismatchLevel = "none"
	MismatchWeak   MismatchLevel = "weak"
	MismatchStrong MismatchLevel = "strong"
)

// Flag records one triggered mismatch signal for explainability.
type Flag struct {
	Dimension string    `json:"dimension"`
	Relevance Relevance `json:"relevance"`
	Score     float64   `json:"score"`
	Threshold float64   `json:"threshold"`
}

// Result is the engine's annotation for one candidate/role pairing.
type Result struct {
	AppliedRole       id.RoleKey    `json:"applied_role"`
	AppliedDepartment id.Department `json:"applied_department"`
	FitScore          float64       `json:"fit_score"`
	MismatchLevel     MismatchLevel `json:"mismatch_level"`
	// InferredRole is the best-fitting role across all known DNA profiles.
	// Only set when it differs from the applied role.
	InferredRole       id.RoleKey    `json:"inferred_role_key,omitempty"`
	InferredDepartment id.Department `json:"inferred_department,omitempty"`
	CrossDepartment    bool          `json:"cross_department"`
	ScoreGap           float64       `json:"score_gap"`
	Flags              []Flag        `json:"flags,omitempty"`
	// Suggestions are adjacent roles in the applied role's department.
	Suggestions []id.RoleKey `json:"suggestions,omitempty"`
}
