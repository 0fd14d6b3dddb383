// Package handler wires the learning endpoints to the training service.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"crewfit/internal/learning"
	id "crewfit/pkg/domain"
	dErrors "crewfit/pkg/domain-errors"
	"crewfit/pkg/platform/httputil"
)

// Service is the training surface the handler depends on.
type Service interface {
	Train(ctx context.Context, req learning.TrainRequest) (*learning.TrainingRun, error)
}

// WeightReader serves the latest learned weight sets.
type WeightReader interface {
	LatestSet(ctx context.Context, scope learning.Scope, company id.CompanyID, role id.RoleKey) (*learning.WeightSetRecord, error)
}

// Handler exposes the learning HTTP surface.
type Handler struct {
	service Service
	sets    WeightReader
	logger  *slog.Logger
}

// New builds the learning handler. The weight reader is optional; without
// it the weights endpoint is not mounted.
func New(svc Service, sets WeightReader, logger *slog.Logger) *Handler {
	return &Handler{service: svc, sets: sets, logger: logger}
}

// Register mounts learning endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/learning/train", h.HandleTrain)
	if h.sets != nil {
		r.Get("/learning/weights", h.HandleGetWeights)
	}
}

// TrainPayload is the wire form of one training request.
type TrainPayload struct {
	Scope     string   `json:"scope"`
	CompanyID string   `json:"company_id,omitempty"`
	Roles     []string `json:"roles,omitempty"`
}

// HandleTrain runs one learning pass and returns the audit record.
func (h *Handler) HandleTrain(w http.ResponseWriter, r *http.Request) {
	payload, ok := httputil.Decode[TrainPayload](w, r, h.logger)
	if !ok {
		return
	}

	req := learning.TrainRequest{Scope: learning.Scope(payload.Scope)}
	if payload.CompanyID != "" {
		company, err := id.ParseCompanyID(payload.CompanyID)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		req.Company = company
	}
	for _, raw := range payload.Roles {
		role, err := id.ParseRoleKey(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		req.Roles = append(req.Roles, role)
	}

	run, err := h.service.Train(r.Context(), req)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "training pass failed",
			"scope", payload.Scope,
			"company_id", payload.CompanyID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, run)
}

// HandleGetWeights returns the latest learned weight set for a
// scope/company/role triple.
func (h *Handler) HandleGetWeights(w http.ResponseWriter, r *http.Request) {
	scope := learning.Scope(r.URL.Query().Get("scope"))
	if !scope.IsValid() {
		httputil.WriteError(w, dErrors.Newf(dErrors.CodeInvalidInput, "unknown training scope %q", scope))
		return
	}

	var company id.CompanyID
	if raw := r.URL.Query().Get("company_id"); raw != "" {
		parsed, err := id.ParseCompanyID(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		company = parsed
	}

	role, err := id.ParseRoleKey(r.URL.Query().Get("role"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	record, err := h.sets.LatestSet(r.Context(), scope, company, role)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if record == nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "no learned weight set for this role"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, record)
}
