package template

import (
	"context"
	"sync"

	"crewfit/internal/scoring/profile"
	id "crewfit/pkg/domain"
)

// InMemoryTemplateStore holds requirement templates and company overrides.
// The config surface that owns templates writes through Put*; the scoring
// core only reads.
type InMemoryTemplateStore struct {
	mu        sync.RWMutex
	templates map[id.VesselTypeKey][]*profile.Template
	overrides map[overrideKey]*profile.Override
}

type overrideKey struct {
	company    id.CompanyID
	vesselType id.VesselTypeKey
}

func New() *InMemoryTemplateStore {
	return &InMemoryTemplateStore{
		templates: make(map[id.VesselTypeKey][]*profile.Template),
		overrides: make(map[overrideKey]*profile.Override),
	}
}

// PutTemplate registers a template version.
func (s *InMemoryTemplateStore) PutTemplate(tmpl *profile.Template) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.templates[tmpl.VesselType] = append(s.templates[tmpl.VesselType], tmpl)
}

// PutOverride registers a company override, replacing any previous one.
func (s *InMemoryTemplateStore) PutOverride(override *profile.Override) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides[overrideKey{override.CompanyID, override.VesselType}] = override
}

// ActiveTemplate returns the highest-version published template, or nil.
func (s *InMemoryTemplateStore) ActiveTemplate(_ context.Context, vesselType id.VesselTypeKey) (*profile.Template, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var active *profile.Template
	for _, tmpl := range s.templates[vesselType] {
		if tmpl.Status != profile.TemplatePublished {
			continue
		}
		if active == nil || tmpl.Version > active.Version {
			active = tmpl
		}
	}
	return active, nil
}

// CompanyOverride returns the company's patch for a vessel type, or nil.
func (s *InMemoryTemplateStore) CompanyOverride(_ context.Context, company id.CompanyID, vesselType id.VesselTypeKey) (*profile.Override, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.overrides[overrideKey{company, vesselType}], nil
}
