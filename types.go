package million

import "github.com/barkhaaroraa/million-go-client/types"

// Re-export types from the types package.
//
// This file provides a stable public API for the library's core types. It
// uses type aliases to re-export definitions from the `types` subpackage,
// which contains the actual implementations.
//
// This pattern solves the "import cycle" problem by allowing internal
// packages to depend on `types` without depending on the root `million`
// package, while still providing a convenient `million.Assignment`,
// `million.Logger`, etc. for users.
type (
	Assignment     = types.Assignment
	PromptMeta     = types.PromptMeta
	ExperimentMeta = types.ExperimentMeta
	SplitType      = types.SplitType
	Outcome        = types.Outcome
	Feedback       = types.Feedback
	TrackOptions   = types.TrackOptions
	TrackResult    = types.TrackResult
	Event          = types.Event
	EventFilters   = types.EventFilters
	EventPage      = types.EventPage
	PageMeta       = types.PageMeta
)

// Re-export the error taxonomy for errors.As matching at call sites.
type (
	ValidationError         = types.ValidationError
	NetworkError            = types.NetworkError
	ServiceError            = types.ServiceError
	AssignmentNotFoundError = types.AssignmentNotFoundError
)

// Re-export interfaces from the types package for convenience.
type (
	Logger           = types.Logger
	MetricsCollector = types.MetricsCollector
	HTTPDoer         = types.HTTPDoer
)

// Re-export enum constants from the types package.
const (
	SplitTypeUser    = types.SplitTypeUser
	SplitTypeSession = types.SplitTypeSession
	SplitTypeRandom  = types.SplitTypeRandom

	OutcomeSuccess = types.OutcomeSuccess
	OutcomeFailure = types.OutcomeFailure

	FeedbackPositive = types.FeedbackPositive
	FeedbackNegative = types.FeedbackNegative
	FeedbackNeutral  = types.FeedbackNeutral
)
