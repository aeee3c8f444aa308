package resolve

import (
	"testing"
	"time"

	"github.com/barkhaaroraa/million-go-client/internal/cache"
	"github.com/barkhaaroraa/million-go-client/types"
	"github.com/stretchr/testify/require"
)

func newAssignment(id string) *types.Assignment {
	return &types.Assignment{AssignmentID: id, Prompt: "p", VariantID: "v1"}
}

func TestAssignmentID_ExplicitIDWins(t *testing.T) {
	c := cache.New(time.Minute)
	c.Store("e1", "u1", "", newAssignment("cached"))

	id, err := AssignmentID(c, types.TrackOptions{
		AssignmentID: "explicit",
		ExperimentID: "e1",
		UserID:       "u1",
	})

	require.NoError(t, err)
	require.Equal(t, "explicit", id)
}

func TestAssignmentID_ExactTripleBeatsFallbacks(t *testing.T) {
	c := cache.New(time.Minute)
	c.Store("e1", "u1", "", newAssignment("user-only"))
	c.Store("e1", "", "s1", newAssignment("session-only"))
	c.Store("e1", "u1", "s1", newAssignment("exact"))

	id, err := AssignmentID(c, types.TrackOptions{ExperimentID: "e1", UserID: "u1", SessionID: "s1"})

	require.NoError(t, err)
	require.Equal(t, "exact", id)
}

func TestAssignmentID_UserFallbackBeatsSession(t *testing.T) {
	c := cache.New(time.Minute)
	c.Store("e1", "u1", "", newAssignment("user-only"))
	c.Store("e1", "", "s1", newAssignment("session-only"))

	// No exact triple cached; the user-only entry must win.
	id, err := AssignmentID(c, types.TrackOptions{ExperimentID: "e1", UserID: "u1", SessionID: "s1"})

	require.NoError(t, err)
	require.Equal(t, "user-only", id)
}

func TestAssignmentID_SessionFallback(t *testing.T) {
	c := cache.New(time.Minute)
	c.Store("e1", "", "s1", newAssignment("session-only"))

	id, err := AssignmentID(c, types.TrackOptions{ExperimentID: "e1", UserID: "u1", SessionID: "s1"})

	require.NoError(t, err)
	require.Equal(t, "session-only", id)
}

func TestAssignmentID_NotFound(t *testing.T) {
	c := cache.New(time.Minute)

	tests := []struct {
		name string
		opts types.TrackOptions
	}{
		{name: "no identifiers", opts: types.TrackOptions{ExperimentID: "e1"}},
		{name: "never fetched user", opts: types.TrackOptions{ExperimentID: "e1", UserID: "u1"}},
		{name: "never fetched session", opts: types.TrackOptions{ExperimentID: "e1", SessionID: "s1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := AssignmentID(c, tt.opts)

			require.Empty(t, id)

			var nferr *types.AssignmentNotFoundError
			require.ErrorAs(t, err, &nferr)
			require.Equal(t, "e1", nferr.ExperimentID)
		})
	}
}

func TestAssignmentID_WrongExperimentScope(t *testing.T) {
	c := cache.New(time.Minute)
	c.Store("e1", "u1", "", newAssignment("a1"))

	_, err := AssignmentID(c, types.TrackOptions{ExperimentID: "e2", UserID: "u1"})

	var nferr *types.AssignmentNotFoundError
	require.ErrorAs(t, err, &nferr)
}
