package synergy

import (
	"context"

	"crewfit/internal/scoring/models"
	id "crewfit/pkg/domain"
)

// Version selects which synergy generation feeds the behavioral pillar.
type Version string

const (
	VersionV1 Version = "v1"
	VersionV2 Version = "v2"
)

// Resolver implements the scoring pillars' SynergyResolver contract,
// dispatching to v1 or v2 per configuration. Both generations stay wired;
// retiring v1 is a config change, not a code change.
type Resolver struct {
	version Version
	v1      *V1Engine
	v2      *Engine
}

// NewResolver builds the version dispatcher. An unrecognized version falls
// back to v2.
func NewResolver(version Version, v1 *V1Engine, v2 *Engine) *Resolver {
	if version != VersionV1 {
		version = VersionV2
	}
	return &Resolver{version: version, v1: v1, v2: v2}
}

// BaseSynergy returns the [0,1] base compatibility score plus the version
// tag that produced it.
func (r *Resolver) BaseSynergy(ctx context.Context, candidate *models.Candidate, vessel id.VesselID) (float64, string, error) {
	if r.version == VersionV1 && r.v1 != nil {
		score, err := r.v1.Evaluate(ctx, candidate, vessel)
		return score, string(VersionV1), err
	}
	result, err := r.v2.Evaluate(ctx, candidate, vessel)
	if err != nil {
		return 0, string(VersionV2), err
	}
	return result.Composite / 100, string(VersionV2), nil
}
