// Package service orchestrates candidate evaluations: it resolves the
// scoring regime, runs the four pillar scorers, applies override labels,
// and persists immutable evaluation snapshots.
package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"crewfit/internal/rolefit"
	"crewfit/internal/scoring/metrics"
	"crewfit/internal/scoring/models"
	"crewfit/internal/scoring/pillars"
	"crewfit/internal/scoring/ports"
	"crewfit/internal/scoring/weights"
	id "crewfit/pkg/domain"
	dErrors "crewfit/pkg/domain-errors"
)

// blockedScoreCap is the ceiling applied to a final score when any
// hard-block deficiency triggered. The capped number keeps blocked
// candidates sortable inside ranked lists without letting them compete.
const blockedScoreCap = 0.20

// EvaluateRequest carries one candidate-to-deployment evaluation.
type EvaluateRequest struct {
	Candidate  *models.Candidate
	VesselID   id.VesselID
	VesselType string
	// Rank is the role the candidate is considered for. Empty falls back
	// to the candidate's declared rank.
	Rank      id.RoleKey
	CompanyID id.CompanyID
	// WeightOverride, when set, takes precedence over learned and profile
	// weights for this evaluation only.
	WeightOverride weights.Map
}

// Service is the fit-scoring orchestrator.
type Service struct {
	profiles ports.ProfileResolver
	weights  *weights.Resolver
	roleFit  ports.RoleFitEngine
	seaTime  ports.SeaTimeSource
	evals    ports.EvaluationStore

	certScorer  pillars.CertificateScorer
	expScorer   pillars.ExperienceScorer
	availScorer pillars.AvailabilityScorer
	behavScorer pillars.BehavioralScorer

	metrics *metrics.Metrics
	logger  *slog.Logger
	tracer  trace.Tracer
	now     func() time.Time

	rankConcurrency int
}

// Option configures the service.
type Option func(*Service)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithSeaTimeSource sets the fallback sea-time source consulted when a
// candidate has no contract history.
func WithSeaTimeSource(src ports.SeaTimeSource) Option {
	return func(s *Service) {
		s.seaTime = src
	}
}

// WithEvaluationStore sets the snapshot store. Without one, results are
// returned but not persisted.
func WithEvaluationStore(store ports.EvaluationStore) Option {
	return func(s *Service) {
		s.evals = store
	}
}

// WithCertificateExpiryWarning sets the expiring-soon window used when a
// requirement carries no minimum validity.
func WithCertificateExpiryWarning(window time.Duration) Option {
	return func(s *Service) {
		s.certScorer.ExpiryWarning = window
	}
}

// WithRankConcurrency bounds parallel scoring during batch ranking.
func WithRankConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.rankConcurrency = n
		}
	}
}

// WithClock overrides the time source. Tests only.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New builds the orchestrator. The profile resolver, weight resolver, role
// fit engine, and synergy resolver are required collaborators.
func New(
	profiles ports.ProfileResolver,
	weightResolver *weights.Resolver,
	roleFit ports.RoleFitEngine,
	synergy pillars.SynergyResolver,
	opts ...Option,
) (*Service, error) {
	if profiles == nil || weightResolver == nil || roleFit == nil || synergy == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "scoring service requires profile resolver, weight resolver, role fit engine, and synergy resolver")
	}
	s := &Service{
		profiles:        profiles,
		weights:         weightResolver,
		roleFit:         roleFit,
		behavScorer:     pillars.BehavioralScorer{Resolver: synergy},
		certScorer:      pillars.CertificateScorer{ExpiryWarning: 90 * 24 * time.Hour},
		logger:          slog.Default(),
		tracer:          otel.Tracer("crewfit/scoring"),
		now:             time.Now,
		rankConcurrency: 8,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Evaluate scores one candidate against one vessel deployment. Pillar
// degradations (missing traits, unreachable synergy backend) never fail the
// evaluation; only invalid input does. Hard domain violations come back as
// a needs_review result, not an error.
func (s *Service) Evaluate(ctx context.Context, req EvaluateRequest) (*models.ScoreResult, error) {
	start := s.now()
	ctx, span := s.tracer.Start(ctx, "scoring.Evaluate")
	defer span.End()

	if req.Candidate == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "candidate is required")
	}
	if req.VesselID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "vessel id is required")
	}
	rank := req.Rank
	if rank == "" {
		rank = req.Candidate.Rank
	}

	plan := s.resolvePlan(ctx, req, rank)
	span.SetAttributes(
		attribute.String("scoring.regime", plan.regime),
		attribute.String("scoring.rank", rank.String()),
	)

	roleFit, err := s.roleFit.Evaluate(rank, req.Candidate.Traits)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return s.finish(ctx, span, start, s.needsReview(req, rank, plan.regime, err))
		}
		s.logger.WarnContext(ctx, "role fit annotation failed, continuing without mismatch data",
			"candidate_id", req.Candidate.ID, "rank", rank, "error", err)
	}

	result := &models.ScoreResult{
		EvaluationID: id.NewEvaluationID(),
		CandidateID:  req.Candidate.ID,
		VesselID:     req.VesselID,
		Rank:         rank,
		Regime:       plan.regime,
		EvaluatedAt:  start,
	}

	blockers := s.runPillars(ctx, req, plan, result)

	final := 0.0
	for _, pillar := range result.Pillars {
		final += pillar.Weight * pillar.Score
	}
	result.FinalScore = clamp01(final)
	result.Label = models.LabelForScore(result.FinalScore)

	if len(blockers) > 0 {
		result.Blockers = blockers
		if result.FinalScore > blockedScoreCap {
			result.FinalScore = blockedScoreCap
		}
		result.Label = models.LabelBlocked
	}

	s.applyRoleFit(result, roleFit)

	return s.finish(ctx, span, start, result)
}

// resolvePlan picks the scoring strategy. Any profile resolution failure,
// including a profile that failed validation, falls back to the legacy
// regime with a logged warning.
func (s *Service) resolvePlan(ctx context.Context, req EvaluateRequest, rank id.RoleKey) pillarPlan {
	prof, err := s.profiles.Resolve(ctx, req.VesselType, req.CompanyID)
	if err != nil {
		s.logger.WarnContext(ctx, "profile resolution failed, falling back to legacy scoring",
			"vessel_type", req.VesselType, "company_id", req.CompanyID, "error", err)
		prof = nil
	}

	var strat strategy
	if prof != nil {
		strat = profileStrategy{profile: prof}
	} else {
		strat = legacyStrategy{weights: s.weights}
	}
	return strat.plan(rank, req.CompanyID, req.WeightOverride)
}

// runPillars executes the four pillar scorers and appends their scores and
// evidence to the result. Returns any triggered hard blockers.
func (s *Service) runPillars(ctx context.Context, req EvaluateRequest, plan pillarPlan, result *models.ScoreResult) []models.Blocker {
	now := result.EvaluatedAt

	var certRes pillars.CertificateResult
	if plan.legacyCompliance {
		certRes = s.certScorer.ScoreHeld(req.Candidate, now)
	} else {
		certRes = s.certScorer.Score(req.Candidate, plan.certs, now)
	}

	seaTimeMonths := 0
	if len(req.Candidate.Contracts) == 0 && s.seaTime != nil {
		months, err := s.seaTime.TotalMonths(ctx, req.Candidate.ID)
		if err != nil {
			s.logger.WarnContext(ctx, "sea-time lookup failed, scoring without logged months",
				"candidate_id", req.Candidate.ID, "error", err)
		} else {
			seaTimeMonths = months
		}
	}
	expRes := s.expScorer.Score(req.Candidate, plan.experience, req.VesselType, seaTimeMonths)

	behavRes, err := s.behavScorer.Score(ctx, req.Candidate, req.VesselID, plan.thresholds)
	if err != nil {
		// Synergy backend unreachable: degrade this pillar, not the whole
		// evaluation.
		s.logger.WarnContext(ctx, "synergy scoring unavailable, using neutral behavioral score",
			"candidate_id", req.Candidate.ID, "vessel_id", req.VesselID, "error", err)
		behavRes = pillars.BehavioralResult{
			Score:    0.5,
			Evidence: models.BehavioralEvidence{SynergyVersion: "unavailable", BaseScore: 0.5},
		}
	}

	availRes := s.availScorer.Score(req.Candidate.Availability, now)

	result.Pillars = []models.PillarScore{
		{Pillar: models.PillarCompliance, Score: certRes.Score, Weight: plan.weights[models.PillarCompliance], Evidence: certRes.Evidence},
		{Pillar: models.PillarCompetency, Score: expRes.Score, Weight: plan.weights[models.PillarCompetency], Evidence: expRes.Evidence},
		{Pillar: models.PillarSynergy, Score: behavRes.Score, Weight: plan.weights[models.PillarSynergy], Evidence: behavRes.Evidence},
		{Pillar: models.PillarAvailability, Score: availRes.Score, Weight: plan.weights[models.PillarAvailability], Evidence: availRes.Evidence},
	}
	return certRes.HardBlocked
}

// applyRoleFit annotates mismatch data. A strong mismatch relabels the
// result unless a hard block already did; blocked always wins.
func (s *Service) applyRoleFit(result *models.ScoreResult, fit *rolefit.Result) {
	if fit == nil {
		result.MismatchLevel = "none"
		return
	}
	result.MismatchLevel = string(fit.MismatchLevel)
	result.InferredRole = fit.InferredRole

	// Suggestions never leave the applied role's department. The engine
	// filters twice already; this keeps the invariant local to the result
	// we ship.
	for _, suggestion := range fit.Suggestions {
		if dept, ok := id.DepartmentOf(suggestion); ok && dept == fit.AppliedDepartment {
			result.Suggestions = append(result.Suggestions, suggestion)
		}
	}

	if fit.MismatchLevel == rolefit.MismatchStrong && result.Label != models.LabelBlocked {
		result.Label = models.LabelRoleMismatch
	}
	if s.metrics != nil {
		s.metrics.IncrementMismatch(result.MismatchLevel)
	}
}

// needsReview builds the snapshot for a hard domain violation.
func (s *Service) needsReview(req EvaluateRequest, rank id.RoleKey, regime string, cause error) *models.ScoreResult {
	s.logger.Warn("evaluation routed to manual review",
		"candidate_id", req.Candidate.ID, "rank", rank, "error", cause)
	return &models.ScoreResult{
		EvaluationID:  id.NewEvaluationID(),
		CandidateID:   req.Candidate.ID,
		VesselID:      req.VesselID,
		Rank:          rank,
		Regime:        regime,
		Label:         models.LabelNeedsReview,
		MismatchLevel: "none",
		EvaluatedAt:   s.now(),
	}
}

// finish persists the snapshot and records telemetry. Persistence failures
// are logged, never surfaced: a computed score is still a valid answer.
func (s *Service) finish(ctx context.Context, span trace.Span, start time.Time, result *models.ScoreResult) (*models.ScoreResult, error) {
	if s.evals != nil {
		if err := s.evals.Append(ctx, result); err != nil {
			s.logger.ErrorContext(ctx, "failed to persist evaluation snapshot",
				"evaluation_id", result.EvaluationID, "error", err)
		}
	}
	span.SetAttributes(
		attribute.String("scoring.label", string(result.Label)),
		attribute.Float64("scoring.final_score", result.FinalScore),
	)
	if s.metrics != nil {
		s.metrics.IncrementEvaluation(result.Regime, string(result.Label))
		s.metrics.ObserveEvaluateLatency(s.now().Sub(start))
	}
	return result, nil
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
