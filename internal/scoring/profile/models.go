// Package profile resolves the requirement profile for a vessel type:
// vessel-type template plus optional sparse company override, merged and
// validated before any scoring run may use it.
package profile

import (
	"crewfit/internal/scoring/weights"
	id "crewfit/pkg/domain"
)

// TemplateStatus is the publication state of a requirement template.
type TemplateStatus string

const (
	TemplateDraft     TemplateStatus = "draft"
	TemplatePublished TemplateStatus = "published"
)

// CertificateRequirement is one required certificate in a profile.
type CertificateRequirement struct {
	Type              string `json:"type"`
	MinValidityMonths int    `json:"min_validity_months"`
	Mandatory         bool   `json:"mandatory"`
	HardBlock         bool   `json:"hard_block"`
	ReasonKey         string `json:"reason_key,omitempty"`
}

// ExperienceRequirement sets the sea-time minimums for a profile.
type ExperienceRequirement struct {
	VesselTypeMonths int      `json:"vessel_type_months"`
	TotalMonths      int      `json:"total_months"`
	PreferredTypes   []string `json:"preferred_types,omitempty"`
}

// RequirementProfile is the fully merged, validated requirement set used by
// profile-aware scoring.
type RequirementProfile struct {
	VesselType   id.VesselTypeKey         `json:"vessel_type"`
	Certificates []CertificateRequirement `json:"certificates"`
	Experience   ExperienceRequirement    `json:"experience"`
	// BehaviorThresholds maps dimension name → minimum [0,1] score.
	BehaviorThresholds map[string]float64 `json:"behavior_thresholds"`
	Weights            weights.Map        `json:"weights"`
}

// Template is a stored, versioned requirement profile for a vessel type.
// Only published templates are eligible for resolution.
type Template struct {
	VesselType id.VesselTypeKey   `json:"vessel_type"`
	Version    int                `json:"version"`
	Status     TemplateStatus     `json:"status"`
	Profile    RequirementProfile `json:"profile"`
}

// Override is a sparse company patch over a template. Nil/empty fields are
// left untouched by the merge; certificate entries are merged by type and
// never drop template-required certificates.
type Override struct {
	CompanyID    id.CompanyID             `json:"company_id"`
	VesselType   id.VesselTypeKey         `json:"vessel_type"`
	Certificates []CertificateRequirement `json:"certificates,omitempty"`
	Experience   *ExperienceRequirement   `json:"experience,omitempty"`
	// BehaviorThresholds and Weights merge key-by-key onto the template.
	BehaviorThresholds map[string]float64 `json:"behavior_thresholds,omitempty"`
	Weights            weights.Map        `json:"weights,omitempty"`
}
