package synergy

import (
	"fmt"
	"time"

	"crewfit/internal/scoring/models"
)

// RiskConfig tunes the operational-risk deductions. Each deduction is
// independently capped so no single signal can zero the pillar.
type RiskConfig struct {
	// CertExpiryWindow flags certificates lapsing inside this window.
	CertExpiryWindow time.Duration
	// Per-certificate deduction and its cap.
	CertPenalty    float64
	CertPenaltyCap float64
	// UnresolvedContractPenalty applies when availability is on_contract
	// with no known end date.
	UnresolvedContractPenalty float64
	// ConflictThreshold triggers the conflict deduction (candidate's
	// conflict_risk dimension, [0,1] scale).
	ConflictThreshold float64
	ConflictPenalty   float64
	// EarlyTerminationThreshold is the ratio of early-ended contracts
	// above which the history deduction applies.
	EarlyTerminationThreshold float64
	EarlyTerminationPenalty   float64
	// StabilityThreshold triggers the stability deduction (stability
	// dimension, [0,1] scale).
	StabilityThreshold float64
	StabilityPenalty   float64
}

// DefaultRiskConfig returns the tuned deduction schedule.
func DefaultRiskConfig() RiskConfig {
	return RiskConfig{
		CertExpiryWindow:          90 * 24 * time.Hour,
		CertPenalty:               5,
		CertPenaltyCap:            15,
		UnresolvedContractPenalty: 10,
		ConflictThreshold:         0.7,
		ConflictPenalty:           15,
		EarlyTerminationThreshold: 0.3,
		EarlyTerminationPenalty:   20,
		StabilityThreshold:        0.4,
		StabilityPenalty:          10,
	}
}

// ScoreOperationalRisk starts at 100 and subtracts fixed, independently
// capped deductions for known deployment-risk signals.
func ScoreOperationalRisk(cfg RiskConfig, candidate *models.Candidate, now time.Time) (float64, []string) {
	score := 100.0
	var notes []string

	certPenalty := 0.0
	for _, cert := range candidate.Certificates {
		if cert.Status == models.CertificateRejected {
			continue
		}
		if cert.ExpiresWithin(now, cfg.CertExpiryWindow) {
			certPenalty += cfg.CertPenalty
		}
	}
	if certPenalty > cfg.CertPenaltyCap {
		certPenalty = cfg.CertPenaltyCap
	}
	if certPenalty > 0 {
		score -= certPenalty
		notes = append(notes, fmt.Sprintf("certificates expiring within window: -%.0f", certPenalty))
	}

	if candidate.Availability.State == models.AvailabilityOnContract && candidate.Availability.ContractEnd == nil {
		score -= cfg.UnresolvedContractPenalty
		notes = append(notes, fmt.Sprintf("unresolved contract end: -%.0f", cfg.UnresolvedContractPenalty))
	}

	if conflict, ok := candidate.Traits.Get(models.DimConflictRisk); ok && conflict >= cfg.ConflictThreshold {
		score -= cfg.ConflictPenalty
		notes = append(notes, fmt.Sprintf("elevated conflict risk (%.2f): -%.0f", conflict, cfg.ConflictPenalty))
	}

	if ratio := candidate.EarlyTerminationRatio(); ratio > cfg.EarlyTerminationThreshold {
		score -= cfg.EarlyTerminationPenalty
		notes = append(notes, fmt.Sprintf("early termination ratio %.2f: -%.0f", ratio, cfg.EarlyTerminationPenalty))
	}

	if stability, ok := candidate.Traits.Get(models.DimStability); ok && stability < cfg.StabilityThreshold {
		score -= cfg.StabilityPenalty
		notes = append(notes, fmt.Sprintf("low stability index (%.2f): -%.0f", stability, cfg.StabilityPenalty))
	}

	return clamp100(score), notes
}
