package domainerrors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "pepgate/pkg/domain-errors"
)

func TestCodeOf(t *testing.T) {
	err := dErrors.New(dErrors.CodeValidation, "bad input")
	assert.Equal(t, dErrors.CodeValidation, dErrors.CodeOf(err))

	wrapped := fmt.Errorf("outer: %w", err)
	assert.Equal(t, dErrors.CodeValidation, dErrors.CodeOf(wrapped))

	assert.Equal(t, dErrors.CodeInternal, dErrors.CodeOf(errors.New("plain")))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := dErrors.Wrap(dErrors.CodeInternal, "store update failed", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "store update failed: connection refused", err.Error())
}

func TestHasCode(t *testing.T) {
	err := dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
	assert.False(t, dErrors.HasCode(err, dErrors.CodeValidation))
}
