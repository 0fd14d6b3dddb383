// Package handler wires the standalone synergy endpoint to the v2 engine.
// Scoring folds synergy in as one pillar; this surface exists for crewing
// officers who want the full four-pillar breakdown on its own.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	scoringhandler "crewfit/internal/scoring/handler"
	"crewfit/internal/scoring/models"
	"crewfit/internal/synergy"
	id "crewfit/pkg/domain"
	"crewfit/pkg/platform/httputil"
)

// Engine is the synergy computation the handler depends on.
type Engine interface {
	Evaluate(ctx context.Context, candidate *models.Candidate, vessel id.VesselID) (*synergy.Result, error)
}

// ContextRegistry accepts crew-context writes from the crewing system.
type ContextRegistry interface {
	Upsert(ctx context.Context, crewCtx *synergy.CrewContext) error
}

// CacheInvalidator drops a vessel's cached crew context after a write.
type CacheInvalidator interface {
	Invalidate(ctx context.Context, vessel id.VesselID) error
}

// Handler exposes the synergy HTTP surface.
type Handler struct {
	engine   Engine
	registry ContextRegistry
	cache    CacheInvalidator
	logger   *slog.Logger
}

// Option configures the handler.
type Option func(*Handler)

// WithRegistry enables the crew-context write endpoint. The invalidator
// may be nil when the cache sits in front of the registry in-process.
func WithRegistry(registry ContextRegistry, cache CacheInvalidator) Option {
	return func(h *Handler) {
		h.registry = registry
		h.cache = cache
	}
}

// New builds the synergy handler.
func New(engine Engine, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{engine: engine, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts synergy endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/synergy/evaluate", h.HandleEvaluate)
	if h.registry != nil {
		r.Put("/vessels/{vesselID}/crew-context", h.HandleUpsertContext)
	}
}

// EvaluatePayload is the wire form of one synergy request.
type EvaluatePayload struct {
	Candidate scoringhandler.CandidatePayload `json:"candidate"`
	VesselID  string                          `json:"vessel_id"`
}

// HandleEvaluate returns the full four-pillar synergy breakdown for one
// candidate against one vessel's crew context.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	payload, ok := httputil.Decode[EvaluatePayload](w, r, h.logger)
	if !ok {
		return
	}

	candidate, err := payload.Candidate.ToModel()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	vessel, err := id.ParseVesselID(payload.VesselID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.engine.Evaluate(r.Context(), candidate, vessel)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "synergy evaluation failed",
			"candidate_id", candidate.ID,
			"vessel_id", vessel,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

// ContextPayload is the wire form of one vessel's crew context.
type ContextPayload struct {
	VesselType string          `json:"vessel_type"`
	Captain    *CaptainPayload `json:"captain,omitempty"`
	Crew       []CrewPayload   `json:"crew"`
}

// CaptainPayload carries the captain's behavioral snapshot on the
// provider-native 0-100 scale.
type CaptainPayload struct {
	CandidateID string         `json:"candidate_id"`
	Traits      map[string]int `json:"traits"`
}

// CrewPayload is one current crew member.
type CrewPayload struct {
	CandidateID string         `json:"candidate_id"`
	Rank        string         `json:"rank"`
	Dimensions  map[string]int `json:"dimensions"`
}

// HandleUpsertContext replaces a vessel's crew context and drops the
// cached copy so the next evaluation sees the fresh roster.
func (h *Handler) HandleUpsertContext(w http.ResponseWriter, r *http.Request) {
	vessel, err := id.ParseVesselID(chi.URLParam(r, "vesselID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	payload, ok := httputil.Decode[ContextPayload](w, r, h.logger)
	if !ok {
		return
	}

	crewCtx := &synergy.CrewContext{
		VesselID:   vessel,
		VesselType: payload.VesselType,
	}
	if payload.Captain != nil {
		captainID, err := id.ParseCandidateID(payload.Captain.CandidateID)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		crewCtx.Captain = &synergy.CaptainProfile{
			CandidateID: captainID,
			Traits:      models.NormalizeTraits(payload.Captain.Traits),
		}
	}
	for _, member := range payload.Crew {
		memberID, err := id.ParseCandidateID(member.CandidateID)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		rank, err := id.ParseRoleKey(member.Rank)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		crewCtx.Crew = append(crewCtx.Crew, synergy.CrewMember{
			CandidateID: memberID,
			Rank:        rank,
			Dimensions:  member.Dimensions,
		})
	}

	if err := h.registry.Upsert(r.Context(), crewCtx); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to store crew context",
			"vessel_id", vessel, "error", err)
		httputil.WriteError(w, err)
		return
	}
	if h.cache != nil {
		if err := h.cache.Invalidate(r.Context(), vessel); err != nil {
			h.logger.WarnContext(r.Context(), "failed to invalidate crew context cache",
				"vessel_id", vessel, "error", err)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
