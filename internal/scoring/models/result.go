package models

import (
	"time"

	id "crewfit/pkg/domain"
)

// FitLabel is the banded verdict attached to a final score.
type FitLabel string

const (
	LabelStrongMatch   FitLabel = "strong_match"
	LabelGoodMatch     FitLabel = "good_match"
	LabelModerateMatch FitLabel = "moderate_match"
	LabelWeakMatch     FitLabel = "weak_match"
	LabelPoorMatch     FitLabel = "poor_match"
	LabelBlocked       FitLabel = "blocked"
	LabelRoleMismatch  FitLabel = "role_mismatch"
	// LabelNeedsReview marks hard domain violations (e.g. a role outside
	// any known department) that must reach a human, not an exception.
	LabelNeedsReview FitLabel = "needs_review"
)

// LabelForScore bands a [0,1] composite into a fit label. Override labels
// (blocked, role_mismatch) are applied by the orchestrator, never here.
func LabelForScore(score float64) FitLabel {
	switch {
	case score >= 0.80:
		return LabelStrongMatch
	case score >= 0.65:
		return LabelGoodMatch
	case score >= 0.45:
		return LabelModerateMatch
	case score >= 0.30:
		return LabelWeakMatch
	default:
		return LabelPoorMatch
	}
}

// Pillar names shared by weight sets, scorers, and the learning loop.
const (
	PillarCompliance   = "compliance"
	PillarCompetency   = "competency"
	PillarSynergy      = "synergy"
	PillarAvailability = "availability"
)

// Pillars lists the pillar names in canonical order.
func Pillars() []string {
	return []string{PillarCompliance, PillarCompetency, PillarSynergy, PillarAvailability}
}

// CertificateFinding classifies one required certificate against holdings.
type CertificateFinding string

const (
	CertMatched      CertificateFinding = "matched"
	CertExpiringSoon CertificateFinding = "expiring_soon"
	CertExpired      CertificateFinding = "expired"
	CertMissing      CertificateFinding = "missing"
)

// CertificateEvidence records how one requirement was classified.
type CertificateEvidence struct {
	Type      string             `json:"type"`
	Finding   CertificateFinding `json:"finding"`
	Mandatory bool               `json:"mandatory"`
	HardBlock bool               `json:"hard_block"`
	ReasonKey string             `json:"reason_key,omitempty"`
}

// ExperienceEvidence records the sea-time inputs behind the competency score.
type ExperienceEvidence struct {
	VesselTypeMonths int    `json:"vessel_type_months"`
	TotalMonths      int    `json:"total_months"`
	RequiredType     int    `json:"required_type_months"`
	RequiredTotal    int    `json:"required_total_months"`
	Source           string `json:"source"` // "contracts", "sea_time_log", or "none"
}

// BehavioralEvidence records threshold breaches behind the synergy score.
type BehavioralEvidence struct {
	SynergyVersion string   `json:"synergy_version"`
	BaseScore      float64  `json:"base_score"`
	BelowThreshold []string `json:"below_threshold,omitempty"`
	MissingProfile bool     `json:"missing_profile"`
	AppliedPenalty float64  `json:"applied_penalty"`
}

// AvailabilityEvidence records the availability inputs used.
type AvailabilityEvidence struct {
	State            AvailabilityState `json:"state"`
	DaysToAvailable  int               `json:"days_to_available,omitempty"`
	ContractEndKnown bool              `json:"contract_end_known"`
}

// PillarScore is one pillar's bounded score plus its evidence payload.
type PillarScore struct {
	Pillar   string  `json:"pillar"`
	Score    float64 `json:"score"`
	Weight   float64 `json:"weight"`
	Evidence any     `json:"evidence,omitempty"`
}

// Blocker is a triggered hard-block with its reason key.
type Blocker struct {
	CertificateType string             `json:"certificate_type"`
	Finding         CertificateFinding `json:"finding"`
	ReasonKey       string             `json:"reason_key"`
}

// ScoreResult is the outcome of one candidate evaluation. It is the shape
// persisted as an evaluation snapshot and returned to planning surfaces.
type ScoreResult struct {
	EvaluationID  id.EvaluationID `json:"evaluation_id"`
	CandidateID   id.CandidateID  `json:"candidate_id"`
	VesselID      id.VesselID     `json:"vessel_id"`
	Rank          id.RoleKey      `json:"rank"`
	Regime        string          `json:"regime"` // "legacy" or "profile"
	FinalScore    float64         `json:"final_score"`
	Label         FitLabel        `json:"label"`
	Pillars       []PillarScore   `json:"pillars"`
	Blockers      []Blocker       `json:"blockers,omitempty"`
	MismatchLevel string          `json:"mismatch_level"`
	InferredRole  id.RoleKey      `json:"inferred_role_key,omitempty"`
	Suggestions   []id.RoleKey    `json:"suggested_roles,omitempty"`
	EvaluatedAt   time.Time       `json:"evaluated_at"`
}

// RankedCandidate pairs a result with its position in a batch ranking.
type RankedCandidate struct {
	Position int          `json:"position"`
	Result   *ScoreResult `json:"result"`
}
