package learning

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"crewfit/internal/learning/metrics"
	"crewfit/internal/outcome"
	"crewfit/internal/scoring/models"
	"crewfit/internal/scoring/weights"
	id "crewfit/pkg/domain"
	dErrors "crewfit/pkg/domain-errors"
)

// Config carries the training tunables.
type Config struct {
	// MinSampleSize is the outcome count below which a role is skipped.
	MinSampleSize int
	// MaxStep caps the absolute per-pillar adjustment in one run.
	MaxStep float64
	// Window bounds how far back outcomes are read.
	Window time.Duration
	// ReferenceRate is the negative-outcome rate at which an adjustment
	// reaches the full MaxStep.
	ReferenceRate float64
}

// DefaultConfig returns the tuned training parameters.
func DefaultConfig() Config {
	return Config{
		MinSampleSize: 30,
		MaxStep:       0.05,
		Window:        365 * 24 * time.Hour,
		ReferenceRate: 0.25,
	}
}

// WeightSetStore persists versioned weight sets and training runs.
type WeightSetStore interface {
	// AppendSet stores a new weight set version.
	AppendSet(ctx context.Context, record *WeightSetRecord) error
	// LatestSet returns the newest set for a scope/company/role, or nil.
	LatestSet(ctx context.Context, scope Scope, company id.CompanyID, role id.RoleKey) (*WeightSetRecord, error)
	// AppendRun stores the audit record for one training pass.
	AppendRun(ctx context.Context, run *TrainingRun) error
}

// negativeSignalPillar maps each negative outcome type to the pillar whose
// weight should grow when that failure mode dominates. A placement that
// blew up on conflict says the behavioral fit mattered more than the
// weights admitted; a safety incident says the same about compliance.
var negativeSignalPillar = map[outcome.Type]string{
	outcome.TypeConflictReported: models.PillarSynergy,
	outcome.TypeSafetyIncident:   models.PillarCompliance,
	outcome.TypeEarlyTermination: models.PillarAvailability,
}

// Service runs training passes over the outcome log.
type Service struct {
	outcomes outcome.Store
	sets     WeightSetStore
	cfg      Config
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time

	// scopeLocks serializes training per scope key so two concurrent runs
	// can never interleave version numbers.
	mu         sync.Mutex
	scopeLocks map[string]*sync.Mutex
}

// Option configures the service.
type Option func(*Service)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithConfig overrides the training tunables.
func WithConfig(cfg Config) Option {
	return func(s *Service) {
		s.cfg = cfg
	}
}

// WithMetrics enables prometheus observation of training runs.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithClock overrides the time source. Tests only.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// New builds the training service.
func New(outcomes outcome.Store, sets WeightSetStore, opts ...Option) (*Service, error) {
	if outcomes == nil || sets == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "learning service requires outcome and weight-set stores")
	}
	s := &Service{
		outcomes:   outcomes,
		sets:       sets,
		cfg:        DefaultConfig(),
		logger:     slog.Default(),
		now:        time.Now,
		scopeLocks: make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// TrainRequest selects the scope and roles of one training pass.
type TrainRequest struct {
	Scope   Scope
	Company id.CompanyID
	// Roles limits the pass. Empty trains every known role.
	Roles []id.RoleKey
}

// Train runs one learning pass and appends the audit record. Roles without
// enough outcomes are skipped cleanly, not adjusted on noise.
func (s *Service) Train(ctx context.Context, req TrainRequest) (*TrainingRun, error) {
	if !req.Scope.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeInvalidInput, "unknown training scope %q", req.Scope)
	}
	if req.Scope == ScopeCompany && req.Company.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "company scope requires a company id")
	}
	if req.Scope == ScopeGlobal && !req.Company.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "global scope cannot name a company")
	}

	lock := s.scopeLock(req.Scope, req.Company)
	lock.Lock()
	defer lock.Unlock()

	roles := req.Roles
	if len(roles) == 0 {
		roles = id.Roles()
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })

	run := &TrainingRun{
		ID:        id.NewTrainingRunID(),
		Scope:     req.Scope,
		Company:   req.Company,
		StartedAt: s.now(),
	}
	since := run.StartedAt.Add(-s.cfg.Window)

	for _, role := range roles {
		filter := outcome.Filter{Role: role, Since: since}
		if req.Scope == ScopeCompany {
			filter.Company = req.Company
		}
		records, err := s.outcomes.List(ctx, filter)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read outcome log")
		}
		run.OutcomesSeen += len(records)

		if len(records) < s.cfg.MinSampleSize {
			run.SkippedRoles = append(run.SkippedRoles, role.String())
			continue
		}

		if err := s.trainRole(ctx, req, role, records, run); err != nil {
			return nil, err
		}
	}

	run.CompletedAt = s.now()
	if err := s.sets.AppendRun(ctx, run); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record training run")
	}
	s.metrics.ObserveRun(string(run.Scope), run.SetsWritten, len(run.SkippedRoles), run.CompletedAt.Sub(run.StartedAt))
	s.logger.InfoContext(ctx, "training run completed",
		"run_id", run.ID, "scope", run.Scope, "outcomes_seen", run.OutcomesSeen,
		"sets_written", run.SetsWritten, "skipped_roles", len(run.SkippedRoles))
	return run, nil
}

// trainRole computes capped deltas for one role and appends the new set.
func (s *Service) trainRole(ctx context.Context, req TrainRequest, role id.RoleKey, records []*outcome.Outcome, run *TrainingRun) error {
	deltas, rationale := s.deltasFrom(records)
	if len(deltas) == 0 {
		// A healthy sample reinforces the current set; nothing to write.
		return nil
	}

	previous, err := s.sets.LatestSet(ctx, req.Scope, req.Company, role)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load previous weight set")
	}

	base := weights.Default()
	version := 1
	if previous != nil {
		base = previous.Weights.Clone()
		version = previous.Version + 1
	}

	for pillar, delta := range deltas {
		base[pillar] += delta
	}
	normalized, ok := base.Normalize()
	if !ok {
		return dErrors.New(dErrors.CodeInvariantViolation, "adjusted weight set normalized to zero")
	}

	record := &WeightSetRecord{
		Scope:      req.Scope,
		Company:    req.Company,
		Role:       role,
		Version:    version,
		Weights:    normalized,
		Deltas:     deltas,
		Rationale:  rationale,
		SampleSize: len(records),
		RunID:      run.ID,
		CreatedAt:  s.now(),
	}
	if err := s.sets.AppendSet(ctx, record); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to append weight set")
	}
	run.SetsWritten++
	return nil
}

// deltasFrom turns the outcome distribution into capped per-pillar
// adjustments. Severity grades each event's contribution; unreported
// severity counts at half weight.
func (s *Service) deltasFrom(records []*outcome.Outcome) (map[string]float64, []string) {
	signal := make(map[outcome.Type]float64)
	for _, record := range records {
		if !record.Type.Negative() {
			continue
		}
		contribution := 0.5
		if record.Severity > 0 {
			contribution = float64(record.Severity) / 100
		}
		signal[record.Type] += contribution
	}

	deltas := make(map[string]float64)
	var rationale []string

	types := make([]outcome.Type, 0, len(signal))
	for t := range signal {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

	for _, t := range types {
		rate := signal[t] / float64(len(records))
		if rate <= 0 {
			continue
		}
		step := s.cfg.MaxStep * (rate / s.cfg.ReferenceRate)
		if step > s.cfg.MaxStep {
			step = s.cfg.MaxStep
		}
		pillar := negativeSignalPillar[t]
		deltas[pillar] += step
		if deltas[pillar] > s.cfg.MaxStep {
			deltas[pillar] = s.cfg.MaxStep
		}
		rationale = append(rationale,
			fmt.Sprintf("%s rate %.3f raised %s by %.4f", t, rate, pillar, step))
	}
	return deltas, rationale
}

func (s *Service) scopeLock(scope Scope, company id.CompanyID) *sync.Mutex {
	key := string(scope)
	if !company.IsNil() {
		key += ":" + company.String()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.scopeLocks[key]; !ok {
		s.scopeLocks[key] = &sync.Mutex{}
	}
	return s.scopeLocks[key]
}
