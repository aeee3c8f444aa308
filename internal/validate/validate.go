// Package validate implements pure input checks executed before any cache or
// network operation, so a caller mistake never costs a network round trip.
//
// Every function returns nil or a *types.ValidationError naming the offending
// field; no function has side effects.
package validate

import (
	"fmt"
	"time"

	"github.com/barkhaaroraa/million-go-client/types"
)

// Pagination bounds for event queries.
const (
	// MaxLimit caps the events page size.
	MaxLimit = 500

	// DefaultLimit is applied when the caller leaves Limit unset.
	DefaultLimit = 50
)

// ExperimentID requires a non-empty experiment identifier.
func ExperimentID(id string) error {
	if id == "" {
		return types.NewValidationError("experimentId", "must not be empty")
	}

	return nil
}

// UserID requires a non-empty user identifier.
func UserID(id string) error {
	if id == "" {
		return types.NewValidationError("userId", "must not be empty")
	}

	return nil
}

// SessionID requires a non-empty session identifier.
func SessionID(id string) error {
	if id == "" {
		return types.NewValidationError("sessionId", "must not be empty")
	}

	return nil
}

// Outcome requires one of the two supported outcome values.
func Outcome(o types.Outcome) error {
	switch o {
	case types.OutcomeSuccess, types.OutcomeFailure:
		return nil
	default:
		return types.NewValidationError("outcome", fmt.Sprintf("must be %q or %q, got %q",
			types.OutcomeSuccess, types.OutcomeFailure, o))
	}
}

// Score requires a value in [0, 10].
func Score(field string, score float64) error {
	if score < 0 || score > 10 {
		return types.NewValidationError(field, fmt.Sprintf("must be between 0 and 10, got %v", score))
	}

	return nil
}

// Feedback requires one of the three supported feedback values.
func Feedback(f types.Feedback) error {
	switch f {
	case types.FeedbackPositive, types.FeedbackNegative, types.FeedbackNeutral:
		return nil
	default:
		return types.NewValidationError("feedback", fmt.Sprintf("must be %q, %q or %q, got %q",
			types.FeedbackPositive, types.FeedbackNegative, types.FeedbackNeutral, f))
	}
}

// Page requires an integer >= 1.
func Page(page int) error {
	if page < 1 {
		return types.NewValidationError("page", fmt.Sprintf("must be >= 1, got %d", page))
	}

	return nil
}

// Limit requires an integer in [1, MaxLimit].
func Limit(limit int) error {
	if limit < 1 || limit > MaxLimit {
		return types.NewValidationError("limit", fmt.Sprintf("must be between 1 and %d, got %d", MaxLimit, limit))
	}

	return nil
}

// Timestamp requires an ISO-8601 timestamp that carries both a time component
// and an explicit zone offset, i.e. RFC 3339. A bare date like "2026-01-02"
// is rejected because the server compares instants, not calendar days.
func Timestamp(field, value string) error {
	if _, err := time.Parse(time.RFC3339, value); err != nil {
		return types.NewValidationError(field,
			fmt.Sprintf("must be an ISO-8601 timestamp with time and zone offset (e.g. 2026-01-02T15:04:05Z), got %q", value))
	}

	return nil
}

// EventFilters checks every supplied filter field. Zero values are skipped;
// when both dates are present, StartDate must be strictly before EndDate.
func EventFilters(f types.EventFilters) error {
	if f.StartDate != "" {
		if err := Timestamp("startDate", f.StartDate); err != nil {
			return err
		}
	}
	if f.EndDate != "" {
		if err := Timestamp("endDate", f.EndDate); err != nil {
			return err
		}
	}
	if f.StartDate != "" && f.EndDate != "" {
		start, _ := time.Parse(time.RFC3339, f.StartDate)
		end, _ := time.Parse(time.RFC3339, f.EndDate)
		if !start.Before(end) {
			return types.NewValidationError("startDate", "must be strictly before endDate")
		}
	}

	if f.MinScore != nil {
		if err := Score("minScore", *f.MinScore); err != nil {
			return err
		}
	}
	if f.MaxScore != nil {
		if err := Score("maxScore", *f.MaxScore); err != nil {
			return err
		}
	}

	if f.Outcome != "" {
		if err := Outcome(f.Outcome); err != nil {
			return err
		}
	}

	if f.Page != nil {
		if err := Page(*f.Page); err != nil {
			return err
		}
	}
	if f.Limit != nil {
		if err := Limit(*f.Limit); err != nil {
			return err
		}
	}

	return nil
}
