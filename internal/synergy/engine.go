package synergy

import (
	"context"
	"log/slog"
	"time"

	"crewfit/internal/scoring/models"
	id "crewfit/pkg/domain"
	dErrors "crewfit/pkg/domain-errors"
)

// Weights are the configurable pillar weights for the v2 composite.
type Weights struct {
	CaptainFit      float64
	TeamBalance     float64
	VesselFit       float64
	OperationalRisk float64
}

// DefaultWeights returns the tuned pillar distribution.
func DefaultWeights() Weights {
	return Weights{
		CaptainFit:      0.30,
		TeamBalance:     0.30,
		VesselFit:       0.20,
		OperationalRisk: 0.20,
	}
}

func (w Weights) sum() float64 {
	return w.CaptainFit + w.TeamBalance + w.VesselFit + w.OperationalRisk
}

// ContextSource provides the (cached) crew context for a vessel.
type ContextSource interface {
	Get(ctx context.Context, vessel id.VesselID) (*CrewContext, error)
}

// Engine is the v2 four-pillar vessel synergy computation.
type Engine struct {
	contexts ContextSource
	evidence EvidenceService
	weights  Weights
	balance  BalanceConfig
	risk     RiskConfig
	logger   *slog.Logger
	now      func() time.Time
}

// Option configures the engine.
type Option func(*Engine)

func WithWeights(w Weights) Option {
	return func(e *Engine) {
		e.weights = w
	}
}

func WithBalanceConfig(cfg BalanceConfig) Option {
	return func(e *Engine) {
		e.balance = cfg
	}
}

func WithRiskConfig(cfg RiskConfig) Option {
	return func(e *Engine) {
		e.risk = cfg
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine builds the v2 engine. The context source is required; the
// evidence service is optional and degrades to neutral vessel fit.
func NewEngine(contexts ContextSource, evidence EvidenceService, opts ...Option) (*Engine, error) {
	if contexts == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "crew context source is required")
	}
	e := &Engine{
		contexts: contexts,
		evidence: evidence,
		weights:  DefaultWeights(),
		balance:  DefaultBalanceConfig(),
		risk:     DefaultRiskConfig(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.weights.sum() <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "synergy pillar weights sum to zero")
	}
	return e, nil
}

// Evaluate computes the four pillars against the vessel's crew context and
// combines them into a 0-100 composite. Pillar failures are not possible by
// construction; a context-source failure is the only error path.
func (e *Engine) Evaluate(ctx context.Context, candidate *models.Candidate, vessel id.VesselID) (*Result, error) {
	crewCtx, err := e.contexts.Get(ctx, vessel)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load crew context")
	}

	now := e.now()
	style := InferCommandStyle(crewCtx.Captain)

	captainScore, captainNotes := ScoreCaptainFit(candidate.Traits, style)
	balanceScore, balanceNotes := ScoreTeamBalance(e.balance, crewCtx.Crew, candidate.Traits)
	vesselScore, vesselNotes := ScoreVesselFit(ctx, e.evidence, candidate.ID, crewCtx.VesselType)
	riskScore, riskNotes := ScoreOperationalRisk(e.risk, candidate, now)

	pillars := []PillarBreakdown{
		{Pillar: PillarCaptainFit, Score: captainScore, Weight: e.weights.CaptainFit, Notes: captainNotes},
		{Pillar: PillarTeamBalance, Score: balanceScore, Weight: e.weights.TeamBalance, Notes: balanceNotes},
		{Pillar: PillarVesselFit, Score: vesselScore, Weight: e.weights.VesselFit, Notes: vesselNotes},
		{Pillar: PillarOperationalRisk, Score: riskScore, Weight: e.weights.OperationalRisk, Notes: riskNotes},
	}

	weightSum := e.weights.sum()
	composite := 0.0
	for _, p := range pillars {
		composite += p.Score * p.Weight
	}
	composite = clamp100(composite / weightSum)

	result := &Result{
		CandidateID: candidate.ID,
		VesselID:    vessel,
		Composite:   composite,
		Label:       models.LabelForScore(composite / 100),
		Pillars:     pillars,
		Style:       style,
		EvaluatedAt: now,
	}

	if e.logger != nil {
		e.logger.DebugContext(ctx, "synergy evaluated",
			"candidate_id", candidate.ID,
			"vessel_id", vessel,
			"composite", composite,
			"style", style,
		)
	}
	return result, nil
}
