package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	t.Run("keeps the cause in the chain", func(t *testing.T) {
		cause := stderrors.New("disk on fire")
		err := Wrap(cause, CodeInternal, "store account")
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "store account")
		assert.Contains(t, err.Error(), "disk on fire")
	})

	t.Run("nil cause wraps to nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, CodeInternal, "never happens"))
	})
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeNotFound, CodeOf(New(CodeNotFound, "gone")))
	assert.Equal(t, CodeInternal, CodeOf(stderrors.New("plain")), "uncoded errors default to internal")

	// The outermost code wins when wrapping changes it.
	inner := New(CodeNotFound, "gone")
	outer := Wrap(inner, CodeInternal, "lookup failed")
	assert.Equal(t, CodeInternal, CodeOf(outer))
}

func TestHasCode(t *testing.T) {
	inner := New(CodeNotFound, "gone")
	outer := Wrap(inner, CodeInternal, "lookup failed")

	assert.True(t, HasCode(outer, CodeInternal))
	assert.True(t, HasCode(outer, CodeNotFound), "codes deeper in the chain are found")
	assert.False(t, HasCode(outer, CodeForbidden))
	assert.False(t, HasCode(nil, CodeInternal))
	assert.False(t, HasCode(stderrors.New("plain"), CodeInternal))
}
