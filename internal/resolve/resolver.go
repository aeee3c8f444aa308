// Package resolve recovers the assignment an outcome event should attach to
// when the caller does not thread an assignment ID through business logic.
//
// Resolution is purely local: it reads the assignment cache and never touches
// the network, so tracking an identity that was never fetched fails fast.
package resolve

import "github.com/barkhaaroraa/million-go-client/types"

// Getter is the cache read the resolver depends on.
type Getter interface {
	// Get returns the live cached assignment for the identity triple.
	Get(experimentID, userID, sessionID string) (*types.Assignment, bool)
}

// AssignmentID resolves the assignment identifier for an outcome event.
//
// Resolution order, first match wins:
//  1. The explicit opts.AssignmentID, when supplied
//  2. Exact triple (experiment, user, session)
//  3. User-only fallback (experiment, user)
//  4. Session-only fallback (experiment, session)
//
// The exact match must win over the weaker fallbacks: a single identity may
// have been resolved through different call shapes, and attaching an event to
// the wrong variant would corrupt the experiment's results.
//
// Parameters:
//   - cache: Assignment cache to consult
//   - opts: Identity of the event being tracked (ExperimentID already validated)
//
// Returns:
//   - string: The resolved assignment ID
//   - error: *types.AssignmentNotFoundError when no rule matches
func AssignmentID(cache Getter, opts types.TrackOptions) (string, error) {
	if opts.AssignmentID != "" {
		return opts.AssignmentID, nil
	}

	if opts.UserID != "" && opts.SessionID != "" {
		if a, ok := cache.Get(opts.ExperimentID, opts.UserID, opts.SessionID); ok {
			return a.AssignmentID, nil
		}
	}

	if opts.UserID != "" {
		if a, ok := cache.Get(opts.ExperimentID, opts.UserID, ""); ok {
			return a.AssignmentID, nil
		}
	}

	if opts.SessionID != "" {
		if a, ok := cache.Get(opts.ExperimentID, "", opts.SessionID); ok {
			return a.AssignmentID, nil
		}
	}

	return "", &types.AssignmentNotFoundError{
		ExperimentID: opts.ExperimentID,
		UserID:       opts.UserID,
		SessionID:    opts.SessionID,
	}
}
