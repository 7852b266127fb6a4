package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesKind(t *testing.T) {
	err := newError(KindConflict, "email taken", nil)
	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrAuth)

	wrapped := fmt.Errorf("register: %w", err)
	assert.ErrorIs(t, wrapped, ErrConflict)
	assert.Equal(t, KindConflict, KindOf(wrapped))
	assert.Equal(t, "email taken", MessageOf(wrapped))
}

func TestError_UnwrapsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := newError(KindInternal, "could not save", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "disk full")
}

func TestKindOf_Unknown(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.NotEmpty(t, MessageOf(errors.New("boom")))
}
