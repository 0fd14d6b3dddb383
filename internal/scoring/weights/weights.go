// Package weights resolves the active pillar-weight set for a role and
// tenant. Resolution precedence is caller override → company-scoped learned
// set → global learned set → static default, and every resolved set is
// renormalized so downstream composition can assume a sum of 1.0.
package weights

import (
	"math"

	"crewfit/internal/scoring/models"
)

// Map is a pillar-name → weight mapping.
type Map map[string]float64

// Sum returns the total of all weights.
func (m Map) Sum() float64 {
	total := 0.0
	for _, w := range m {
		total += w
	}
	return total
}

// Clone returns a shallow copy so resolution never mutates stored sets.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Normalize clamps negatives to zero and rescales to sum 1.0. A zero-sum
// map cannot be rescaled; ok is false and callers fall back to defaults.
func (m Map) Normalize() (Map, bool) {
	out := make(Map, len(m))
	for k, v := range m {
		if v < 0 {
			v = 0
		}
		out[k] = v
	}
	sum := out.Sum()
	if sum <= 0 {
		return nil, false
	}
	for k, v := range out {
		out[k] = v / sum
	}
	return out, true
}

// Validate checks the set covers the canonical pillars with values in [0,1]
// summing to 1.0 within tolerance.
func (m Map) Validate(tolerance float64) bool {
	for _, pillar := range models.Pillars() {
		v, ok := m[pillar]
		if !ok || v < 0 || v > 1 {
			return false
		}
	}
	return math.Abs(m.Sum()-1.0) <= tolerance
}

// Default returns the static fallback weight set. This is also the legacy
// scoring regime's fixed distribution.
func Default() Map {
	return Map{
		models.PillarAvailability: 0.40,
		models.PillarCompetency:   0.25,
		models.PillarSynergy:      0.20,
		models.PillarCompliance:   0.15,
	}
}
