package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "crewfit/pkg/domain-errors"
)

func TestParseID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseCandidateID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseCandidateID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseVesselID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		valid := uuid.New()
		candidate, err := ParseCandidateID(valid.String())
		require.NoError(t, err)
		assert.Equal(t, valid.String(), candidate.String())
	})

	t.Run("error names the field", func(t *testing.T) {
		_, err := ParseCompanyID("nope")
		require.Error(t, err)
		assert.True(t, strings.Contains(err.Error(), "company_id"))
	})
}

func TestIDTextMarshaling(t *testing.T) {
	t.Run("marshals to the canonical string form", func(t *testing.T) {
		candidate := CandidateID(uuid.New())
		encoded, err := json.Marshal(candidate)
		require.NoError(t, err)
		assert.Equal(t, `"`+candidate.String()+`"`, string(encoded))
	})

	t.Run("round-trips through JSON", func(t *testing.T) {
		original := EvaluationID(uuid.New())
		encoded, err := json.Marshal(original)
		require.NoError(t, err)

		var decoded EvaluationID
		require.NoError(t, json.Unmarshal(encoded, &decoded))
		assert.Equal(t, original, decoded)
	})

	t.Run("unmarshal accepts the nil UUID for absent links", func(t *testing.T) {
		var decoded EvaluationID
		require.NoError(t, json.Unmarshal([]byte(`"`+uuid.Nil.String()+`"`), &decoded))
		assert.True(t, decoded.IsNil())
	})

	t.Run("unmarshal rejects malformed ids", func(t *testing.T) {
		var decoded CandidateID
		err := json.Unmarshal([]byte(`"garbage"`), &decoded)
		require.Error(t, err)
	})
}

func TestIsNil(t *testing.T) {
	assert.True(t, CandidateID{}.IsNil())
	assert.False(t, CandidateID(uuid.New()).IsNil())
	assert.True(t, TrainingRunID{}.IsNil())
	assert.False(t, NewTrainingRunID().IsNil())
}
