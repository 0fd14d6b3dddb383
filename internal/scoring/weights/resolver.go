package weights

import (
	id "crewfit/pkg/domain"
)

// Source supplies learned weight sets by scope. The learning loop's store
// implements this; tests substitute a fixture map.
type Source interface {
	// CompanyWeights returns the company-scoped learned set for a role, or
	// nil when none has been trained.
	CompanyWeights(company id.CompanyID, role id.RoleKey) Map

	// GlobalWeights returns the globally learned set for a role, or nil.
	GlobalWeights(role id.RoleKey) Map
}

// Resolver picks the active weight set for one evaluation. It is a pure
// lookup: no caching, no mutation of the source's maps.
type Resolver struct {
	source Source
}

// NewResolver builds a resolver over a learned-weight source. A nil source
// resolves straight to the static default.
func NewResolver(source Source) *Resolver {
	return &Resolver{source: source}
}

// Resolve returns the normalized weight set for a role, following
// precedence: caller override → company learned → global learned → default.
// Sets that normalize to zero are skipped rather than used.
func (r *Resolver) Resolve(role id.RoleKey, company id.CompanyID, override Map) Map {
	for _, candidate := range r.chain(role, company, override) {
		if len(candidate) == 0 {
			continue
		}
		if normalized, ok := candidate.Normalize(); ok {
			return normalized
		}
	}
	normalized, _ := Default().Normalize()
	return normalized
}

func (r *Resolver) chain(role id.RoleKey, company id.CompanyID, override Map) []Map {
	chain := []Map{override}
	if r.source != nil {
		if !company.IsNil() {
			chain = append(chain, r.source.CompanyWeights(company, role))
		}
		chain = append(chain, r.source.GlobalWeights(role))
	}
	return chain
}
