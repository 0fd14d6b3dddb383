package rolefit

import (
	"sort"

	"crewfit/internal/scoring/models"
	id "crewfit/pkg/domain"
	dErrors "crewfit/pkg/domain-errors"
)

// Config carries the tunable mismatch-severity cutoffs.
type Config struct {
	// CrossDepartmentGap is the fit-score margin by which a foreign
	// department's best role must beat the applied role before the gap
	// counts as cross-department evidence.
	CrossDepartmentGap float64
	// StrongFloor: a fit score below this is strong mismatch on its own.
	StrongFloor float64
	// WeakFloor: a fit score below this is at least weak mismatch.
	WeakFloor float64
	// StrongFlagCount: this many triggered flags escalate to strong.
	StrongFlagCount int
	// CriticalFailures: this many failed critical dimensions escalate to
	// strong.
	CriticalFailures int
	// RelevanceThresholds maps relevance grade → minimum dimension score.
	RelevanceThresholds map[Relevance]float64
}

// DefaultConfig returns the tuned severity cutoffs.
func DefaultConfig() Config {
	return Config{
		CrossDepartmentGap: 0.15,
		StrongFloor:        0.35,
		WeakFloor:          0.55,
		StrongFlagCount:    3,
		CriticalFailures:   2,
		RelevanceThresholds: map[Relevance]float64{
			RelevanceCritical: 0.60,
			RelevanceHigh:     0.50,
			RelevanceModerate: 0.40,
			RelevanceLow:      0.25,
		},
	}
}

// Engine scores behavioral fit against role DNA and classifies mismatch.
type Engine struct {
	cfg Config
	dna map[id.RoleKey]DNAProfile
}

// NewEngine builds an engine over a DNA library. A nil library uses the
// builtin defaults.
func NewEngine(cfg Config, dna map[id.RoleKey]DNAProfile) *Engine {
	if dna == nil {
		dna = DefaultDNA()
	}
	return &Engine{cfg: cfg, dna: dna}
}

// Evaluate annotates a candidate's trait vector against the applied role.
// An applied role outside the known department taxonomy is a hard domain
// violation and returns an invariant error; the orchestrator surfaces it as
// a needs-review state rather than a score.
func (e *Engine) Evaluate(appliedRole id.RoleKey, traits models.TraitVector) (*Result, error) {
	dept, ok := id.DepartmentOf(appliedRole)
	if !ok {
		return nil, dErrors.Newf(dErrors.CodeInvariantViolation, "role %q belongs to no known department", appliedRole)
	}
	dna, ok := e.dna[appliedRole]
	if !ok {
		return nil, dErrors.Newf(dErrors.CodeInvariantViolation, "no DNA profile for role %q", appliedRole)
	}

	fit, flags := e.fitAgainst(dna, traits)
	result := &Result{
		AppliedRole:       appliedRole,
		AppliedDepartment: dept,
		FitScore:          fit,
		Flags:             flags,
	}

	bestRole, bestFit := e.bestRole(traits)
	if bestRole != appliedRole && !bestRole.IsNil() {
		result.InferredRole = bestRole
		result.InferredDepartment, _ = id.DepartmentOf(bestRole)
		result.ScoreGap = bestFit - fit
		result.CrossDepartment = result.InferredDepartment != dept &&
			result.ScoreGap > e.cfg.CrossDepartmentGap
	}

	result.MismatchLevel = e.classify(result)

	if result.MismatchLevel != MismatchNone {
		result.Suggestions = e.suggestions(appliedRole, dept)
	}
	return result, nil
}

// fitAgainst computes the relevance-weighted behavioral fit in [0,1].
// A dimension under its relevance threshold contributes proportionally to
// how close it is to the threshold instead of being zeroed out.
func (e *Engine) fitAgainst(dna DNAProfile, traits models.TraitVector) (float64, []Flag) {
	var weighted, totalWeight float64
	var flags []Flag

	dims := make([]string, 0, len(dna.Dimensions))
	for dim := range dna.Dimensions {
		dims = append(dims, dim)
	}
	sort.Strings(dims)

	for _, dim := range dims {
		relevance := dna.Dimensions[dim]
		weight := relevance.Weight()
		totalWeight += weight

		score, ok := traits.Get(dim)
		if !ok {
			// Unmeasured dimensions contribute neutrally.
			weighted += weight * 0.5
			continue
		}

		threshold := e.cfg.RelevanceThresholds[relevance]
		contribution := score
		if threshold > 0 && score < threshold {
			contribution = score * (score / threshold)
			flags = append(flags, Flag{
				Dimension: dim,
				Relevance: relevance,
				Score:     score,
				Threshold: threshold,
			})
		}
		weighted += weight * contribution
	}

	if totalWeight == 0 {
		return 0.5, nil
	}
	return weighted / totalWeight, flags
}

// bestRole scans every known DNA profile for the best-fitting role.
func (e *Engine) bestRole(traits models.TraitVector) (id.RoleKey, float64) {
	var bestRole id.RoleKey
	bestFit := -1.0

	roles := make([]id.RoleKey, 0, len(e.dna))
	for role := range e.dna {
		roles = append(roles, role)
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })

	for _, role := range roles {
		fit, _ := e.fitAgainst(e.dna[role], traits)
		if fit > bestFit {
			bestRole, bestFit = role, fit
		}
	}
	return bestRole, bestFit
}

func (e *Engine) classify(r *Result) MismatchLevel {
	criticalFails := 0
	for _, flag := range r.Flags {
		if flag.Relevance == RelevanceCritical {
			criticalFails++
		}
	}

	switch {
	case r.CrossDepartment,
		len(r.Flags) >= e.cfg.StrongFlagCount,
		criticalFails >= e.cfg.CriticalFailures,
		r.FitScore < e.cfg.StrongFloor:
		return MismatchStrong
	case len(r.Flags) > 0, r.FitScore < e.cfg.WeakFloor:
		return MismatchWeak
	default:
		return MismatchNone
	}
}

// suggestions walks the same-department adjacency graph and applies a
// second department filter on top of AdjacentRoles' own check.
func (e *Engine) suggestions(role id.RoleKey, dept id.Department) []id.RoleKey {
	var out []id.RoleKey
	for _, adjacent := range AdjacentRoles(role) {
		if adjacentDept, ok := id.DepartmentOf(adjacent); ok && adjacentDept == dept {
			out = append(out, adjacent)
		}
	}
	return out
}
