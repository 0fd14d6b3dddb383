package handler

import (
	"time"

	"crewfit/internal/scoring/models"
	"crewfit/internal/scoring/service"
	"crewfit/internal/scoring/weights"
	id "crewfit/pkg/domain"
	dErrors "crewfit/pkg/domain-errors"
)

// CandidatePayload is the wire form of a scoring candidate. Trait scores
// arrive as the provider-native 0-100 integers and are normalized here.
type CandidatePayload struct {
	ID           string               `json:"id"`
	Name         string               `json:"name"`
	Rank         string               `json:"rank"`
	Certificates []CertificatePayload `json:"certificates"`
	Contracts    []ContractPayload    `json:"contracts"`
	Traits       map[string]int       `json:"traits"`
	Availability AvailabilityPayload  `json:"availability"`
}

// CertificatePayload is one held credential.
type CertificatePayload struct {
	Type     string    `json:"type"`
	IssuedAt time.Time `json:"issued_at"`
	Expires  time.Time `json:"expires"`
	Status   string    `json:"status"`
}

// ContractPayload is one sea-time engagement.
type ContractPayload struct {
	VesselID        string     `json:"vessel_id,omitempty"`
	VesselType      string     `json:"vessel_type"`
	Rank            string     `json:"rank"`
	StartedAt       time.Time  `json:"started_at"`
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	Months          int        `json:"months"`
	EndedEarly      bool       `json:"ended_early"`
	TerminationNote string     `json:"termination_note,omitempty"`
}

// AvailabilityPayload is the candidate's deployment state.
type AvailabilityPayload struct {
	State       string     `json:"state"`
	ContractEnd *time.Time `json:"contract_end,omitempty"`
}

// ToModel validates the payload and builds the scoring candidate.
func (p *CandidatePayload) ToModel() (*models.Candidate, error) {
	candidateID, err := id.ParseCandidateID(p.ID)
	if err != nil {
		return nil, err
	}
	rank, err := id.ParseRoleKey(p.Rank)
	if err != nil {
		return nil, err
	}
	state := models.AvailabilityState(p.Availability.State)
	if p.Availability.State == "" {
		state = models.AvailabilityUnknown
	}
	if !state.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeValidation, "unknown availability state %q", p.Availability.State)
	}

	candidate := &models.Candidate{
		ID:     candidateID,
		Name:   p.Name,
		Rank:   rank,
		Traits: models.NormalizeTraits(p.Traits),
		Availability: models.Availability{
			State:       state,
			ContractEnd: p.Availability.ContractEnd,
		},
	}

	for _, cert := range p.Certificates {
		status := models.CertificateStatus(cert.Status)
		if cert.Status == "" {
			status = models.CertificateUnverified
		}
		candidate.Certificates = append(candidate.Certificates, models.Certificate{
			Type:     cert.Type,
			IssuedAt: cert.IssuedAt,
			Expires:  cert.Expires,
			Status:   status,
		})
	}

	for _, contract := range p.Contracts {
		record := models.ContractRecord{
			VesselType:      contract.VesselType,
			StartedAt:       contract.StartedAt,
			EndedAt:         contract.EndedAt,
			Months:          contract.Months,
			EndedEarly:      contract.EndedEarly,
			TerminationNote: contract.TerminationNote,
		}
		if contract.VesselID != "" {
			vessel, err := id.ParseVesselID(contract.VesselID)
			if err != nil {
				return nil, err
			}
			record.VesselID = vessel
		}
		if contract.Rank != "" {
			contractRank, err := id.ParseRoleKey(contract.Rank)
			if err != nil {
				return nil, err
			}
			record.Rank = contractRank
		}
		candidate.Contracts = append(candidate.Contracts, record)
	}
	return candidate, nil
}

// EvaluatePayload is the wire form of one evaluation request.
type EvaluatePayload struct {
	Candidate  CandidatePayload   `json:"candidate"`
	VesselID   string             `json:"vessel_id"`
	VesselType string             `json:"vessel_type"`
	Rank       string             `json:"rank,omitempty"`
	CompanyID  string             `json:"company_id,omitempty"`
	Weights    map[string]float64 `json:"weights,omitempty"`
}

// ToRequest validates the payload and builds the service request.
func (p *EvaluatePayload) ToRequest() (service.EvaluateRequest, error) {
	var req service.EvaluateRequest

	candidate, err := p.Candidate.ToModel()
	if err != nil {
		return req, err
	}
	vessel, err := id.ParseVesselID(p.VesselID)
	if err != nil {
		return req, err
	}

	req = service.EvaluateRequest{
		Candidate:  candidate,
		VesselID:   vessel,
		VesselType: p.VesselType,
	}
	if p.Rank != "" {
		rank, err := id.ParseRoleKey(p.Rank)
		if err != nil {
			return req, err
		}
		req.Rank = rank
	}
	if p.CompanyID != "" {
		company, err := id.ParseCompanyID(p.CompanyID)
		if err != nil {
			return req, err
		}
		req.CompanyID = company
	}
	if len(p.Weights) > 0 {
		req.WeightOverride = weights.Map(p.Weights)
	}
	return req, nil
}

// RankPayload is the wire form of one batch-ranking request.
type RankPayload struct {
	Candidates []CandidatePayload `json:"candidates"`
	VesselID   string             `json:"vessel_id"`
	VesselType string             `json:"vessel_type"`
	Rank       string             `json:"rank,omitempty"`
	CompanyID  string             `json:"company_id,omitempty"`
	Weights    map[string]float64 `json:"weights,omitempty"`
	TopK       int                `json:"top_k,omitempty"`
}

// ToRequest validates the payload and builds the service request.
func (p *RankPayload) ToRequest() (service.RankRequest, error) {
	var req service.RankRequest

	vessel, err := id.ParseVesselID(p.VesselID)
	if err != nil {
		return req, err
	}
	req = service.RankRequest{
		VesselID:   vessel,
		VesselType: p.VesselType,
		TopK:       p.TopK,
	}
	if p.Rank != "" {
		rank, err := id.ParseRoleKey(p.Rank)
		if err != nil {
			return req, err
		}
		req.Rank = rank
	}
	if p.CompanyID != "" {
		company, err := id.ParseCompanyID(p.CompanyID)
		if err != nil {
			return req, err
		}
		req.CompanyID = company
	}
	if len(p.Weights) > 0 {
		req.WeightOverride = weights.Map(p.Weights)
	}
	for _, payload := range p.Candidates {
		candidate, err := payload.ToModel()
		if err != nil {
			return req, err
		}
		req.Candidates = append(req.Candidates, candidate)
	}
	return req, nil
}
