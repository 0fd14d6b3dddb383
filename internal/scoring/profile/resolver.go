package profile

import (
	"context"
	"log/slog"

	id "crewfit/pkg/domain"
	dErrors "crewfit/pkg/domain-errors"
)

// TemplateStore loads published requirement templates and company overrides.
// Implementations are thin I/O; all merge logic lives in the resolver.
type TemplateStore interface {
	// ActiveTemplate returns the highest-version published template for a
	// vessel type, or nil when none exists.
	ActiveTemplate(ctx context.Context, vesselType id.VesselTypeKey) (*Template, error)

	// CompanyOverride returns the company's patch for a vessel type, or nil.
	CompanyOverride(ctx context.Context, company id.CompanyID, vesselType id.VesselTypeKey) (*Override, error)
}

// Resolver produces the effective requirement profile for a vessel type and
// company. Resolution never mutates stored templates; every call merges onto
// copies.
type Resolver struct {
	store  TemplateStore
	logger *slog.Logger
}

func NewResolver(store TemplateStore, logger *slog.Logger) *Resolver {
	return &Resolver{store: store, logger: logger}
}

// Resolve maps the raw vessel type to a canonical key and merges the active
// template with the company override. Returns (nil, nil) when the type is
// unmapped or no published template exists; the caller then uses legacy
// scoring. Profiles that fail validation are rejected, not repaired.
func (r *Resolver) Resolve(ctx context.Context, rawVesselType string, company id.CompanyID) (*RequirementProfile, error) {
	key, ok := CanonicalVesselType(rawVesselType)
	if !ok {
		return nil, nil
	}

	tmpl, err := r.store.ActiveTemplate(ctx, key)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load requirement template")
	}
	if tmpl == nil {
		return nil, nil
	}

	merged := cloneProfile(tmpl.Profile)
	merged.VesselType = key

	if !company.IsNil() {
		override, err := r.store.CompanyOverride(ctx, company, key)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load company override")
		}
		if override != nil {
			merged = mergeOverride(merged, override)
		}
	}

	if normalized, ok := merged.Weights.Normalize(); ok {
		merged.Weights = normalized
	}

	if err := Validate(&merged); err != nil {
		if r.logger != nil {
			r.logger.WarnContext(ctx, "rejecting invalid requirement profile",
				"vessel_type", key, "company_id", company, "error", err)
		}
		return nil, err
	}
	return &merged, nil
}

func cloneProfile(p RequirementProfile) RequirementProfile {
	out := p
	out.Certificates = append([]CertificateRequirement(nil), p.Certificates...)
	out.Experience.PreferredTypes = append([]string(nil), p.Experience.PreferredTypes...)
	out.BehaviorThresholds = make(map[string]float64, len(p.BehaviorThresholds))
	for k, v := range p.BehaviorThresholds {
		out.BehaviorThresholds[k] = v
	}
	out.Weights = p.Weights.Clone()
	return out
}

// mergeOverride applies a sparse company patch. Certificate lists merge by
// certificate type: an override entry replaces the template entry of the
// same type and new types are appended, so template-required certificates
// are never silently dropped. Scalar blocks are override-wins; weight and
// threshold maps merge key-by-key.
func mergeOverride(base RequirementProfile, override *Override) RequirementProfile {
	if len(override.Certificates) > 0 {
		byType := make(map[string]int, len(base.Certificates))
		for i, cert := range base.Certificates {
			byType[cert.Type] = i
		}
		for _, cert := range override.Certificates {
			if i, ok := byType[cert.Type]; ok {
				base.Certificates[i] = cert
			} else {
				base.Certificates = append(base.Certificates, cert)
			}
		}
	}

	if override.Experience != nil {
		base.Experience = *override.Experience
		base.Experience.PreferredTypes = append([]string(nil), override.Experience.PreferredTypes...)
	}

	for dim, threshold := range override.BehaviorThresholds {
		base.BehaviorThresholds[dim] = threshold
	}
	for pillar, w := range override.Weights {
		base.Weights[pillar] = w
	}
	return base
}
