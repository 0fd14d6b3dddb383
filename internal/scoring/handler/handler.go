// Package handler wires scoring endpoints to the scoring service.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"crewfit/internal/scoring/models"
	"crewfit/internal/scoring/service"
	id "crewfit/pkg/domain"
	"crewfit/pkg/platform/httputil"
)

// Service is the scoring surface the handler depends on.
type Service interface {
	Evaluate(ctx context.Context, req service.EvaluateRequest) (*models.ScoreResult, error)
	Rank(ctx context.Context, req service.RankRequest) ([]models.RankedCandidate, error)
}

// SnapshotReader serves persisted evaluation snapshots.
type SnapshotReader interface {
	Get(ctx context.Context, evaluation id.EvaluationID) (*models.ScoreResult, error)
	ListByCandidate(ctx context.Context, candidate id.CandidateID) ([]*models.ScoreResult, error)
}

// Observer sees every fresh evaluation result. The mismatch monitor hangs
// off this hook.
type Observer interface {
	Observe(ctx context.Context, result *models.ScoreResult)
}

// Handler exposes the scoring HTTP surface.
type Handler struct {
	service   Service
	snapshots SnapshotReader
	observer  Observer
	logger    *slog.Logger
}

// Option configures the handler.
type Option func(*Handler)

// WithSnapshots enables the evaluation retrieval endpoints.
func WithSnapshots(snapshots SnapshotReader) Option {
	return func(h *Handler) {
		h.snapshots = snapshots
	}
}

// WithObserver registers a result observer.
func WithObserver(observer Observer) Option {
	return func(h *Handler) {
		h.observer = observer
	}
}

// New builds the scoring handler.
func New(svc Service, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		service: svc,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts scoring endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/scoring/evaluate", h.HandleEvaluate)
	r.Post("/scoring/rank", h.HandleRank)
	if h.snapshots != nil {
		r.Get("/evaluations/{evaluationID}", h.HandleGetEvaluation)
		r.Get("/candidates/{candidateID}/evaluations", h.HandleListEvaluations)
	}
}

// HandleEvaluate scores one candidate against one vessel posting.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	payload, ok := httputil.Decode[EvaluatePayload](w, r, h.logger)
	if !ok {
		return
	}

	req, err := payload.ToRequest()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.Evaluate(r.Context(), req)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "evaluation failed",
			"candidate_id", payload.Candidate.ID,
			"vessel_id", payload.VesselID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	if h.observer != nil {
		h.observer.Observe(r.Context(), result)
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleRank scores a candidate pool and returns the ordered board.
func (h *Handler) HandleRank(w http.ResponseWriter, r *http.Request) {
	payload, ok := httputil.Decode[RankPayload](w, r, h.logger)
	if !ok {
		return
	}

	req, err := payload.ToRequest()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	ranked, err := h.service.Rank(r.Context(), req)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "ranking failed",
			"vessel_id", payload.VesselID,
			"pool_size", len(payload.Candidates),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	if h.observer != nil {
		for i := range ranked {
			h.observer.Observe(r.Context(), ranked[i].Result)
		}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"ranked": ranked})
}

// HandleGetEvaluation returns one persisted evaluation snapshot.
func (h *Handler) HandleGetEvaluation(w http.ResponseWriter, r *http.Request) {
	evaluation, err := id.ParseEvaluationID(chi.URLParam(r, "evaluationID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.snapshots.Get(r.Context(), evaluation)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// HandleListEvaluations returns a candidate's evaluation history, newest
// first.
func (h *Handler) HandleListEvaluations(w http.ResponseWriter, r *http.Request) {
	candidate, err := id.ParseCandidateID(chi.URLParam(r, "candidateID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	results, err := h.snapshots.ListByCandidate(r.Context(), candidate)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"evaluations": results})
}
