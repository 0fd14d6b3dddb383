// Package ingest consumes deployment-outcome events from Kafka and appends
// them to the outcome log. Crewing surfaces publish the events; this side
// only validates and stores.
package ingest

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"crewfit/internal/outcome"
	"crewfit/internal/platform/kafka/consumer"
	id "crewfit/pkg/domain"
)

// Handler decodes outcome events and appends them to the store.
type Handler struct {
	store  outcome.Store
	logger *slog.Logger
}

// NewHandler creates an outcome event handler.
func NewHandler(store outcome.Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{store: store, logger: logger}
}

// outcomePayload matches the JSON published by the crewing surfaces.
type outcomePayload struct {
	CandidateID  string `json:"candidate_id"`
	VesselID     string `json:"vessel_id"`
	CompanyID    string `json:"company_id"`
	EvaluationID string `json:"evaluation_id"`
	Rank         string `json:"rank"`
	Type         string `json:"type"`
	Severity     int    `json:"severity"`
	CaptainID    string `json:"captain_id"`
	Note         string `json:"note"`
	OccurredAt   string `json:"occurred_at"`
}

// Handle processes one outcome event. Malformed events are logged and
// dropped; a valid event that fails to store returns the error so the
// consumer records the failure.
func (h *Handler) Handle(ctx context.Context, msg *consumer.Message) error {
	var payload outcomePayload
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		h.logger.WarnContext(ctx, "dropping malformed outcome event",
			"key", string(msg.Key), "error", err)
		return nil
	}

	record, err := h.toOutcome(payload, msg.Timestamp)
	if err != nil {
		h.logger.WarnContext(ctx, "dropping invalid outcome event",
			"key", string(msg.Key), "error", err)
		return nil
	}
	return h.store.Append(ctx, record)
}

func (h *Handler) toOutcome(payload outcomePayload, fallbackTime time.Time) (*outcome.Outcome, error) {
	candidate, err := id.ParseCandidateID(payload.CandidateID)
	if err != nil {
		return nil, err
	}
	rank, err := id.ParseRoleKey(payload.Rank)
	if err != nil {
		return nil, err
	}

	record := &outcome.Outcome{
		CandidateID: candidate,
		Rank:        rank,
		Type:        outcome.Type(payload.Type),
		Severity:    payload.Severity,
		Note:        payload.Note,
	}

	if payload.VesselID != "" {
		vessel, err := id.ParseVesselID(payload.VesselID)
		if err != nil {
			return nil, err
		}
		record.VesselID = vessel
	}
	if payload.CompanyID != "" {
		company, err := id.ParseCompanyID(payload.CompanyID)
		if err != nil {
			return nil, err
		}
		record.CompanyID = company
	}
	if payload.EvaluationID != "" {
		// A bad evaluation link degrades to an unlinked outcome.
		if eval, err := id.ParseEvaluationID(payload.EvaluationID); err == nil {
			record.EvaluationID = eval
		}
	}
	if payload.CaptainID != "" {
		captain, err := id.ParseCandidateID(payload.CaptainID)
		if err != nil {
			return nil, err
		}
		record.CaptainID = &captain
	}

	record.OccurredAt = fallbackTime
	if payload.OccurredAt != "" {
		if ts, err := time.Parse(time.RFC3339Nano, payload.OccurredAt); err == nil {
			record.OccurredAt = ts
		}
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}
	return record, nil
}
