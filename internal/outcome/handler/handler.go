// Package handler exposes the REST path into the outcome log. Bulk
// ingestion runs over Kafka; this surface covers manual reports filed by
// crewing officers.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"crewfit/internal/outcome"
	id "crewfit/pkg/domain"
	dErrors "crewfit/pkg/domain-errors"
	"crewfit/pkg/platform/httputil"
)

// Handler exposes the outcome HTTP surface.
type Handler struct {
	store  outcome.Store
	logger *slog.Logger
}

// New builds the outcome handler.
func New(store outcome.Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Register mounts outcome endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/outcomes", h.HandleAppend)
	r.Get("/outcomes", h.HandleList)
}

// AppendPayload is the wire form of one manually reported outcome.
type AppendPayload struct {
	CandidateID  string    `json:"candidate_id"`
	VesselID     string    `json:"vessel_id,omitempty"`
	CompanyID    string    `json:"company_id,omitempty"`
	EvaluationID string    `json:"evaluation_id,omitempty"`
	Rank         string    `json:"rank"`
	Type         string    `json:"type"`
	Severity     int       `json:"severity"`
	CaptainID    string    `json:"captain_id,omitempty"`
	Note         string    `json:"note,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// ToOutcome validates the payload and builds the log record.
func (p *AppendPayload) ToOutcome(now time.Time) (*outcome.Outcome, error) {
	candidate, err := id.ParseCandidateID(p.CandidateID)
	if err != nil {
		return nil, err
	}
	rank, err := id.ParseRoleKey(p.Rank)
	if err != nil {
		return nil, err
	}

	record := &outcome.Outcome{
		CandidateID: candidate,
		Rank:        rank,
		Type:        outcome.Type(p.Type),
		Severity:    p.Severity,
		Note:        p.Note,
		OccurredAt:  p.OccurredAt,
	}
	if p.VesselID != "" {
		vessel, err := id.ParseVesselID(p.VesselID)
		if err != nil {
			return nil, err
		}
		record.VesselID = vessel
	}
	if p.CompanyID != "" {
		company, err := id.ParseCompanyID(p.CompanyID)
		if err != nil {
			return nil, err
		}
		record.CompanyID = company
	}
	if p.EvaluationID != "" {
		evaluation, err := id.ParseEvaluationID(p.EvaluationID)
		if err != nil {
			return nil, err
		}
		record.EvaluationID = evaluation
	}
	if p.CaptainID != "" {
		captain, err := id.ParseCandidateID(p.CaptainID)
		if err != nil {
			return nil, err
		}
		record.CaptainID = &captain
	}
	if record.OccurredAt.IsZero() {
		record.OccurredAt = now
	}
	if err := record.Validate(); err != nil {
		return nil, err
	}
	return record, nil
}

// HandleAppend files one outcome report.
func (h *Handler) HandleAppend(w http.ResponseWriter, r *http.Request) {
	payload, ok := httputil.Decode[AppendPayload](w, r, h.logger)
	if !ok {
		return
	}

	record, err := payload.ToOutcome(time.Now().UTC())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.store.Append(r.Context(), record); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to append outcome",
			"candidate_id", record.CandidateID,
			"type", record.Type,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, record)
}

// HandleList returns outcomes matching the query filter, oldest first.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	var filter outcome.Filter

	if raw := r.URL.Query().Get("role"); raw != "" {
		role, err := id.ParseRoleKey(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		filter.Role = role
	}
	if raw := r.URL.Query().Get("company_id"); raw != "" {
		company, err := id.ParseCompanyID(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		filter.Company = company
	}
	if raw := r.URL.Query().Get("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "since must be RFC 3339"))
			return
		}
		filter.Since = since
	}

	records, err := h.store.List(r.Context(), filter)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"outcomes": records})
}
