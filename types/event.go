package types

import "time"

// Outcome is the result recorded against an assignment.
type Outcome string

// Supported outcomes.
const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// Feedback is an optional qualitative signal attached to an outcome event.
type Feedback string

// Supported feedback values.
const (
	FeedbackPositive Feedback = "positive"
	FeedbackNegative Feedback = "negative"
	FeedbackNeutral  Feedback = "neutral"
)

// TrackOptions identifies the assignment an outcome event should attach to
// and carries the optional event payload.
//
// The assignment is resolved in this order, first match wins:
//  1. AssignmentID, when supplied explicitly
//  2. The cached assignment for (ExperimentID, UserID, SessionID)
//  3. The cached assignment for (ExperimentID, UserID)
//  4. The cached assignment for (ExperimentID, SessionID)
//
// ExperimentID is always required. Tracking without an explicit AssignmentID
// is only valid after a prior fetch for the same identity within the cache TTL.
type TrackOptions struct {
	// AssignmentID attaches the event to a specific assignment, skipping
	// cache resolution entirely.
	AssignmentID string

	// ExperimentID scopes the cache lookup. Required.
	ExperimentID string

	// UserID is the user identity used in a prior GetPromptForUser call.
	UserID string

	// SessionID is the session identity used in a prior GetPromptForSession call.
	SessionID string

	// Score is an optional quality score in [0, 10].
	Score *float64

	// Feedback is an optional qualitative signal.
	Feedback Feedback
}

// TrackResult is the server's acknowledgement of a recorded outcome event.
type TrackResult struct {
	// ID is the server-assigned event ID.
	ID string `json:"id"`

	// Message is an optional server-provided note.
	Message string `json:"message,omitempty"`
}

// Event is one recorded outcome as returned by the events query.
type Event struct {
	ID           string    `json:"id"`
	AssignmentID string    `json:"assignment_id"`
	ExperimentID string    `json:"experiment_id"`
	Outcome      Outcome   `json:"outcome"`
	Score        *float64  `json:"score,omitempty"`
	Feedback     Feedback  `json:"user_feedback,omitempty"`
	UserID       string    `json:"user_id,omitempty"`
	SessionID    string    `json:"session_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// EventFilters narrows an events query. Zero values mean "not filtered".
//
// StartDate and EndDate must be ISO-8601 timestamps with an explicit time
// component and zone offset (RFC 3339), e.g. "2026-01-02T15:04:05Z".
type EventFilters struct {
	StartDate string
	EndDate   string
	UserID    string
	SessionID string

	// MinScore and MaxScore bound the event score, each in [0, 10].
	MinScore *float64
	MaxScore *float64

	// Feedback matches events whose feedback contains this substring.
	Feedback string

	// Outcome restricts results to one outcome.
	Outcome Outcome

	// Page is the 1-based result page. Defaults to 1 when nil.
	Page *int

	// Limit is the page size in [1, 500]. Defaults to 50 when nil.
	Limit *int
}

// PageMeta describes the pagination of an events query result.
type PageMeta struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// EventPage is a normalized events query result. Meta is always populated:
// when the server omits it, Total defaults to 0 and Page/Limit echo the request.
type EventPage struct {
	Events []Event  `json:"events"`
	Meta   PageMeta `json:"meta"`
}
