// Package synergy computes vessel-level compatibility: captain-style fit,
// team balance, vessel-type fit, and operational risk, combined into a
// 0-100 composite. Two generations coexist behind one resolver: the v1
// dimension-delta comparison and the v2 four-pillar engine; configuration
// picks which one feeds the behavioral pillar.
package synergy

import (
	"time"

	"crewfit/internal/scoring/models"
	id "crewfit/pkg/domain"
)

// CommandStyle is the inferred leadership style of a vessel's captain.
type CommandStyle string

const (
	StyleAuthoritative CommandStyle = "authoritative"
	StyleCollaborative CommandStyle = "collaborative"
	StyleAdaptive      CommandStyle = "adaptive"
	StyleBalanced      CommandStyle = "balanced"
)

// CaptainProfile describes the captain commanding a vessel. OutcomeStyle is
// derived from recorded deployment outcomes and is preferred over trait
// inference once enough evidence has accumulated.
type CaptainProfile struct {
	CandidateID  id.CandidateID     `json:"candidate_id"`
	Traits       models.TraitVector `json:"traits"`
	OutcomeStyle CommandStyle       `json:"outcome_style,omitempty"`
	// OutcomeSamples counts the outcome records behind OutcomeStyle.
	OutcomeSamples int `json:"outcome_samples"`
}

// CrewMember is one current crew member's behavioral snapshot. Dimension
// scores are on the provider stores' native 0-100 scale.
type CrewMember struct {
	CandidateID id.CandidateID `json:"candidate_id"`
	Rank        id.RoleKey     `json:"rank"`
	Dimensions  map[string]int `json:"dimensions"`
}

// CrewContext is the cached per-vessel view the engine scores against.
type CrewContext struct {
	VesselID   id.VesselID     `json:"vessel_id"`
	VesselType string          `json:"vessel_type"`
	Captain    *CaptainProfile `json:"captain,omitempty"`
	Crew       []CrewMember    `json:"crew"`
	FetchedAt  time.Time       `json:"fetched_at"`
}

// PillarBreakdown is one synergy pillar's 0-100 score with its evidence.
type PillarBreakdown struct {
	Pillar string   `json:"pillar"`
	Score  float64  `json:"score"`
	Weight float64  `json:"weight"`
	Notes  []string `json:"notes,omitempty"`
}

// Synergy pillar names.
const (
	PillarCaptainFit      = "captain_fit"
	PillarTeamBalance     = "team_balance"
	PillarVesselFit       = "vessel_fit"
	PillarOperationalRisk = "operational_risk"
)

// Result is the v2 engine's composite output on the 0-100 scale.
type Result struct {
	CandidateID id.CandidateID    `json:"candidate_id"`
	VesselID    id.VesselID       `json:"vessel_id"`
	Composite   float64           `json:"composite"`
	Label       models.FitLabel   `json:"label"`
	Pillars     []PillarBreakdown `json:"pillars"`
	Style       CommandStyle      `json:"captain_style,omitempty"`
	EvaluatedAt time.Time         `json:"evaluated_at"`
}
