package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	t.Run("matches direct error", func(t *testing.T) {
		err := New(CodeNotFound, "user not found")
		assert.True(t, HasCode(err, CodeNotFound))
		assert.False(t, HasCode(err, CodeInternal))
	})

	t.Run("matches through fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("loading profile: %w", New(CodeNotFound, "user not found"))
		assert.True(t, HasCode(err, CodeNotFound))
	})

	t.Run("plain errors carry no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
		assert.False(t, HasCode(nil, CodeInternal))
	})
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")

	t.Run("keeps cause reachable", func(t *testing.T) {
		err := Wrap(cause, CodeInternal, "failed to load balance")
		require.Error(t, err)
		assert.True(t, Is(err, cause))
		assert.True(t, HasCode(err, CodeInternal))
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, CodeInternal, "unused"))
	})
}
