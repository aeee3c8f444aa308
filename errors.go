package million

import "errors"

// Sentinel errors returned by the Client constructor.
//
// Operation failures carry one of the four typed errors in the types package
// (ValidationError, NetworkError, ServiceError, AssignmentNotFoundError);
// these sentinels cover construction only.
var (
	// ErrInvalidConfig is returned when the configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrAPIKeyRequired is returned when the configuration lacks an API key.
	ErrAPIKeyRequired = errors.New("API key is required")
)
