package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	t.Run("matches direct code", func(t *testing.T) {
		err := New(CodeValidation, "weights must sum to 1.0")
		assert.True(t, HasCode(err, CodeValidation))
		assert.False(t, HasCode(err, CodeInternal))
	})

	t.Run("matches through wrapping", func(t *testing.T) {
		cause := stderrors.New("row not found")
		err := Wrap(cause, CodeNotFound, "weight set missing")
		assert.True(t, HasCode(err, CodeNotFound))
		assert.True(t, stderrors.Is(err, cause))
	})

	t.Run("plain errors carry no code", func(t *testing.T) {
		assert.False(t, HasCode(stderrors.New("boom"), CodeInternal))
	})
}

func TestWrapNil(t *testing.T) {
	require.Nil(t, Wrap(nil, CodeInternal, "should vanish"))
}
