// Package alerting watches evaluation results for drift that needs human
// attention. The first monitor tracks the role-mismatch rate over a rolling
// window; a sustained spike usually means a DNA profile or threshold is
// misconfigured, not that the candidate pool went bad overnight.
package alerting

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"crewfit/internal/scoring/models"
)

// Config carries the mismatch monitor tunables.
type Config struct {
	// Window is the rolling observation span.
	Window time.Duration
	// Threshold is the mismatch rate that fires an alert.
	Threshold float64
	// MinSamples gates firing until the window holds enough evaluations.
	MinSamples int
	// Cooldown suppresses repeat alerts after one fires.
	Cooldown time.Duration
}

// DefaultConfig returns the tuned monitor parameters.
func DefaultConfig() Config {
	return Config{
		Window:     24 * time.Hour,
		Threshold:  0.25,
		MinSamples: 20,
		Cooldown:   time.Hour,
	}
}

// Alert describes one fired mismatch-rate alert.
type Alert struct {
	Rate    float64
	Samples int
	Window  time.Duration
	FiredAt time.Time
}

// Notifier delivers fired alerts. The default logs at warn level.
type Notifier interface {
	Notify(ctx context.Context, alert Alert)
}

type logNotifier struct {
	logger *slog.Logger
}

func (n logNotifier) Notify(ctx context.Context, alert Alert) {
	n.logger.WarnContext(ctx, "role mismatch rate above threshold",
		"rate", alert.Rate, "samples", alert.Samples, "window", alert.Window)
}

type observation struct {
	at       time.Time
	mismatch bool
}

// MismatchMonitor tracks the share of evaluations labeled role_mismatch
// over a rolling window.
type MismatchMonitor struct {
	cfg      Config
	notifier Notifier
	now      func() time.Time

	mu        sync.Mutex
	events    []observation
	lastFired time.Time
}

// Option configures the monitor.
type Option func(*MismatchMonitor)

// WithNotifier replaces the log notifier.
func WithNotifier(n Notifier) Option {
	return func(m *MismatchMonitor) {
		m.notifier = n
	}
}

// WithClock overrides the time source. Tests only.
func WithClock(now func() time.Time) Option {
	return func(m *MismatchMonitor) {
		m.now = now
	}
}

// NewMismatchMonitor builds the monitor.
func NewMismatchMonitor(cfg Config, logger *slog.Logger, opts ...Option) *MismatchMonitor {
	if logger == nil {
		logger = slog.Default()
	}
	m := &MismatchMonitor{
		cfg:      cfg,
		notifier: logNotifier{logger: logger},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Observe records one evaluation result and fires when the windowed
// mismatch rate crosses the threshold.
func (m *MismatchMonitor) Observe(ctx context.Context, result *models.ScoreResult) {
	if result == nil {
		return
	}
	now := m.now()

	m.mu.Lock()
	m.events = append(m.events, observation{
		at:       now,
		mismatch: result.Label == models.LabelRoleMismatch,
	})
	m.trim(now)

	samples := len(m.events)
	mismatches := 0
	for _, e := range m.events {
		if e.mismatch {
			mismatches++
		}
	}
	rate := float64(mismatches) / float64(samples)

	fire := samples >= m.cfg.MinSamples &&
		rate > m.cfg.Threshold &&
		now.Sub(m.lastFired) >= m.cfg.Cooldown
	if fire {
		m.lastFired = now
	}
	m.mu.Unlock()

	if fire {
		m.notifier.Notify(ctx, Alert{
			Rate:    rate,
			Samples: samples,
			Window:  m.cfg.Window,
			FiredAt: now,
		})
	}
}

// Rate returns the current windowed mismatch rate and sample count.
func (m *MismatchMonitor) Rate() (float64, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.trim(m.now())

	if len(m.events) == 0 {
		return 0, 0
	}
	mismatches := 0
	for _, e := range m.events {
		if e.mismatch {
			mismatches++
		}
	}
	return float64(mismatches) / float64(len(m.events)), len(m.events)
}

// trim drops observations older than the window. Callers hold the lock.
func (m *MismatchMonitor) trim(now time.Time) {
	cutoff := now.Add(-m.cfg.Window)
	kept := m.events[:0]
	for _, e := range m.events {
		if e.at.After(cutoff) {
			kept = append(kept, e)
		}
	}
	m.events = kept
}
