package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("score", "must be between 0 and 10")

	require.EqualError(t, err, "invalid score: must be between 0 and 10")

	var verr *ValidationError
	require.ErrorAs(t, fmt.Errorf("tracking failed: %w", err), &verr)
	require.Equal(t, "score", verr.Field)
}

func TestNetworkError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &NetworkError{Message: "request failed", Cause: cause}

	require.EqualError(t, err, "network error: request failed: connection refused")
	require.ErrorIs(t, err, cause)

	var nerr *NetworkError
	require.ErrorAs(t, err, &nerr)
}

func TestNetworkError_NoCause(t *testing.T) {
	err := &NetworkError{Message: "invalid response"}

	require.EqualError(t, err, "network error: invalid response")
	require.NoError(t, err.Unwrap())
}

func TestServiceError(t *testing.T) {
	err := &ServiceError{StatusCode: 404, Message: "experiment not found"}

	require.EqualError(t, err, "service error (status 404): experiment not found")

	var serr *ServiceError
	require.ErrorAs(t, fmt.Errorf("fetch failed: %w", err), &serr)
	require.Equal(t, 404, serr.StatusCode)
}

func TestAssignmentNotFoundError(t *testing.T) {
	err := &AssignmentNotFoundError{ExperimentID: "e1", UserID: "u1"}

	require.Contains(t, err.Error(), `experiment "e1"`)
	require.Contains(t, err.Error(), "fetch a prompt first")

	var nferr *AssignmentNotFoundError
	require.ErrorAs(t, err, &nferr)
	require.Equal(t, "e1", nferr.ExperimentID)
}

// The four kinds must stay distinct under errors.As so call sites can match
// the taxonomy exhaustively.
func TestTaxonomyDistinct(t *testing.T) {
	var (
		verr  *ValidationError
		nerr  *NetworkError
		serr  *ServiceError
		nferr *AssignmentNotFoundError
	)

	err := error(&ServiceError{StatusCode: 500, Message: "boom"})

	require.False(t, errors.As(err, &verr))
	require.False(t, errors.As(err, &nerr))
	require.True(t, errors.As(err, &serr))
	require.False(t, errors.As(err, &nferr))
}
