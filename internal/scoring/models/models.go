// Package models holds the scoring module's domain types. The scoring core
// treats all of them as read-only inputs; mutation happens in the CRUD
// surfaces that own candidate data.
package models

import (
	"time"

	id "crewfit/pkg/domain"
)

// CertificateStatus is the verification state of a held certificate.
type CertificateStatus string

const (
	CertificateVerified   CertificateStatus = "verified"
	CertificateUnverified CertificateStatus = "unverified"
	CertificateRejected   CertificateStatus = "rejected"
)

// Certificate is one credential held by a candidate.
type Certificate struct {
	Type     string            `json:"type"`
	IssuedAt time.Time         `json:"issued_at"`
	Expires  time.Time         `json:"expires"`
	Status   CertificateStatus `json:"status"`
}

// ExpiresWithin reports whether the certificate expires inside the window
// starting at now. Already-expired certificates return false.
func (c Certificate) ExpiresWithin(now time.Time, window time.Duration) bool {
	if !c.Expires.After(now) {
		return false
	}
	return c.Expires.Before(now.Add(window))
}

// Expired reports whether the certificate has lapsed at the given instant.
func (c Certificate) Expired(now time.Time) bool {
	return !c.Expires.After(now)
}

// ContractRecord is one completed or running sea-time engagement.
type ContractRecord struct {
	VesselID        id.VesselID `json:"vessel_id"`
	VesselType      string      `json:"vessel_type"`
	Rank            id.RoleKey  `json:"rank"`
	StartedAt       time.Time   `json:"started_at"`
	EndedAt         *time.Time  `json:"ended_at,omitempty"`
	Months          int         `json:"months"`
	EndedEarly      bool        `json:"ended_early"`
	TerminationNote string      `json:"termination_note,omitempty"`
}

// AvailabilityState describes whether a candidate can take a deployment.
type AvailabilityState string

const (
	AvailabilityAvailable     AvailabilityState = "available"
	AvailabilitySoonAvailable AvailabilityState = "soon_available"
	AvailabilityOnContract    AvailabilityState = "on_contract"
	AvailabilityUnknown       AvailabilityState = "unknown"
)

// IsValid checks if the state is one of the supported enum values.
func (s AvailabilityState) IsValid() bool {
	switch s {
	case AvailabilityAvailable, AvailabilitySoonAvailable, AvailabilityOnContract, AvailabilityUnknown:
		return true
	}
	return false
}

// Availability is the candidate's current deployment state plus an optional
// estimate of when the current contract ends.
type Availability struct {
	State       AvailabilityState `json:"state"`
	ContractEnd *time.Time        `json:"contract_end,omitempty"`
}

// Canonical behavioral dimensions. Stores may carry more; scorers only
// interpret dimensions they know thresholds for.
const (
	DimDiscipline      = "discipline"
	DimTeamwork        = "teamwork"
	DimStressTolerance = "stress_tolerance"
	DimLeadership      = "leadership"
	DimAdaptability    = "adaptability"
	DimCommunication   = "communication"
	DimSafetyAwareness = "safety_awareness"
	DimConflictRisk    = "conflict_risk"
	DimStability       = "stability"
)

// TraitVector maps behavioral dimension names to scores in [0,1].
// Provider stores persist 0-100 integers; Normalize converts on ingestion.
type TraitVector map[string]float64

// NormalizeTraits converts a 0-100 dimension map into a [0,1] TraitVector.
func NormalizeTraits(raw map[string]int) TraitVector {
	if len(raw) == 0 {
		return nil
	}
	tv := make(TraitVector, len(raw))
	for dim, v := range raw {
		switch {
		case v < 0:
			tv[dim] = 0
		case v > 100:
			tv[dim] = 1
		default:
			tv[dim] = float64(v) / 100
		}
	}
	return tv
}

// Get returns the dimension score and whether it is present.
func (t TraitVector) Get(dim string) (float64, bool) {
	v, ok := t[dim]
	return v, ok
}

// Candidate is the scoring view of a crew member: identity, declared rank,
// and the signals the pillar scorers consume.
type Candidate struct {
	ID           id.CandidateID   `json:"id"`
	Name         string           `json:"name"`
	Rank         id.RoleKey       `json:"rank"`
	Certificates []Certificate    `json:"certificates"`
	Contracts    []ContractRecord `json:"contracts"`
	Traits       TraitVector      `json:"traits"`
	Availability Availability     `json:"availability"`
}

// MonthsOnVesselType sums contract months on a given vessel type.
func (c Candidate) MonthsOnVesselType(vesselType string) int {
	total := 0
	for _, contract := range c.Contracts {
		if contract.VesselType == vesselType {
			total += contract.Months
		}
	}
	return total
}

// TotalMonths sums contract months across all vessel types.
func (c Candidate) TotalMonths() int {
	total := 0
	for _, contract := range c.Contracts {
		total += contract.Months
	}
	return total
}

// EarlyTerminationRatio is the share of past contracts that ended early.
// Returns 0 when there is no history.
func (c Candidate) EarlyTerminationRatio() float64 {
	if len(c.Contracts) == 0 {
		return 0
	}
	early := 0
	for _, contract := range c.Contracts {
		if contract.EndedEarly {
			early++
		}
	}
	return float64(early) / float64(len(c.Contracts))
}
