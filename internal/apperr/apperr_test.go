package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, Validation("bad").Status())
	assert.Equal(t, http.StatusNotFound, NotFound("missing").Status())
	assert.Equal(t, http.StatusForbidden, Forbidden("no").Status())
	assert.Equal(t, http.StatusTooManyRequests, RateLimited(3).Status())
	assert.Equal(t, http.StatusInternalServerError, Internal(errors.New("boom")).Status())
}

func TestAsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("complete session: %w", Forbidden("already done").WithCode("already_completed"))

	appErr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, "already_completed", appErr.ErrorCode())
	assert.True(t, IsKind(err, KindForbidden))
	assert.False(t, IsKind(errors.New("plain"), KindForbidden))
}

func TestInternalUnwraps(t *testing.T) {
	cause := errors.New("db down")
	err := Internal(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "internal_error", err.ErrorCode())
}
