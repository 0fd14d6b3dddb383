// Package domain holds typed identifiers and enums shared across modules.
// IDs are distinct types over uuid.UUID so the compiler catches a candidate
// ID passed where a vessel ID belongs.
package domain

import (
	"github.com/google/uuid"

	dErrors "crewfit/pkg/domain-errors"
)

type (
	// CandidateID identifies a crew candidate.
	CandidateID uuid.UUID
	// VesselID identifies a vessel.
	VesselID uuid.UUID
	// CompanyID identifies a tenant company (shipowner or manager).
	CompanyID uuid.UUID
	// EvaluationID identifies one persisted scoring run.
	EvaluationID uuid.UUID
	// OutcomeID identifies one observed post-deployment outcome event.
	OutcomeID uuid.UUID
	// TrainingRunID identifies one weight-learning run.
	TrainingRunID uuid.UUID
)

func parseUUID(s, what string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s cannot be empty", what)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s is not a valid UUID", what)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.Newf(dErrors.CodeInvalidInput, "%s cannot be the nil UUID", what)
	}
	return u, nil
}

// ParseCandidateID validates and returns a CandidateID.
func ParseCandidateID(s string) (CandidateID, error) {
	u, err := parseUUID(s, "candidate_id")
	return CandidateID(u), err
}

// ParseVesselID validates and returns a VesselID.
func ParseVesselID(s string) (VesselID, error) {
	u, err := parseUUID(s, "vessel_id")
	return VesselID(u), err
}

// ParseEvaluationID validates and returns an EvaluationID.
func ParseEvaluationID(s string) (EvaluationID, error) {
	u, err := parseUUID(s, "evaluation_id")
	return EvaluationID(u), err
}

// ParseCompanyID validates and returns a CompanyID.
func ParseCompanyID(s string) (CompanyID, error) {
	u, err := parseUUID(s, "company_id")
	return CompanyID(u), err
}

func (id CandidateID) String() string   { return uuid.UUID(id).String() }
func (id VesselID) String() string      { return uuid.UUID(id).String() }
func (id CompanyID) String() string     { return uuid.UUID(id).String() }
func (id EvaluationID) String() string  { return uuid.UUID(id).String() }
func (id OutcomeID) String() string     { return uuid.UUID(id).String() }
func (id TrainingRunID) String() string { return uuid.UUID(id).String() }

func (id CandidateID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id VesselID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id CompanyID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id EvaluationID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id OutcomeID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id TrainingRunID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// Typed ids do not inherit uuid.UUID's text marshaling, so each implements
// encoding.TextMarshaler/TextUnmarshaler to keep JSON and cache payloads on
// the canonical string form. Unmarshaling accepts the nil UUID: stored
// records may legitimately carry absent links.

func (id CandidateID) MarshalText() ([]byte, error)   { return []byte(id.String()), nil }
func (id VesselID) MarshalText() ([]byte, error)      { return []byte(id.String()), nil }
func (id CompanyID) MarshalText() ([]byte, error)     { return []byte(id.String()), nil }
func (id EvaluationID) MarshalText() ([]byte, error)  { return []byte(id.String()), nil }
func (id OutcomeID) MarshalText() ([]byte, error)     { return []byte(id.String()), nil }
func (id TrainingRunID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }

func unmarshalUUID(b []byte) (uuid.UUID, error) {
	u, err := uuid.ParseBytes(b)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "malformed id")
	}
	return u, nil
}

func (id *CandidateID) UnmarshalText(b []byte) error {
	u, err := unmarshalUUID(b)
	*id = CandidateID(u)
	return err
}

func (id *VesselID) UnmarshalText(b []byte) error {
	u, err := unmarshalUUID(b)
	*id = VesselID(u)
	return err
}

func (id *CompanyID) UnmarshalText(b []byte) error {
	u, err := unmarshalUUID(b)
	*id = CompanyID(u)
	return err
}

func (id *EvaluationID) UnmarshalText(b []byte) error {
	u, err := unmarshalUUID(b)
	*id = EvaluationID(u)
	return err
}

func (id *OutcomeID) UnmarshalText(b []byte) error {
	u, err := unmarshalUUID(b)
	*id = OutcomeID(u)
	return err
}

func (id *TrainingRunID) UnmarshalText(b []byte) error {
	u, err := unmarshalUUID(b)
	*id = TrainingRunID(u)
	return err
}

// NewEvaluationID mints a fresh evaluation identifier.
func NewEvaluationID() EvaluationID { return EvaluationID(uuid.New()) }

// NewOutcomeID mints a fresh outcome identifier.
func NewOutcomeID() OutcomeID { return OutcomeID(uuid.New()) }

// NewTrainingRunID mints a fresh training-run identifier.
func NewTrainingRunID() TrainingRunID { return TrainingRunID(uuid.New()) }
