package types

// SplitType determines how the server allocates a prompt variant and which
// identifier the client must supply with the request.
type SplitType string

// Supported split types.
const (
	// SplitTypeUser allocates one variant per user ID. Results are cacheable.
	SplitTypeUser SplitType = "user"

	// SplitTypeSession allocates one variant per session ID. Results are cacheable.
	SplitTypeSession SplitType = "session"

	// SplitTypeRandom allocates a fresh variant on every call. Results are
	// never cached because consistency across calls is not desired.
	SplitTypeRandom SplitType = "random"
)

// PromptMeta describes the prompt template behind an assignment.
type PromptMeta struct {
	// TemplateID identifies the prompt template the variant was rendered from.
	TemplateID string `json:"template_id"`

	// TemplateVersion is the version of the template at allocation time.
	TemplateVersion int `json:"template_version"`
}

// ExperimentMeta describes the experiment context of an assignment.
type ExperimentMeta struct {
	// ExperimentID is the experiment the assignment belongs to.
	ExperimentID string `json:"experiment_id"`

	// SplitType is the split strategy the server applied.
	SplitType SplitType `json:"split_type"`

	// Identifier is the user or session ID the split was keyed on.
	// Empty for random splits.
	Identifier string `json:"identifier,omitempty"`
}

// Assignment is the server's allocation of a prompt variant to a split identity.
//
// Assignments are immutable once received and identified by AssignmentID.
// The client caches user and session assignments for the configured TTL and
// attaches outcome events to them by ID.
type Assignment struct {
	// AssignmentID is the opaque server-issued identifier for this allocation.
	// Outcome events reference it.
	AssignmentID string `json:"assignment_id"`

	// Prompt is the rendered prompt text to use.
	Prompt string `json:"prompt"`

	// VariantID identifies the variant within the experiment.
	VariantID string `json:"variant_id"`

	// VariantName is the human-readable variant name.
	VariantName string `json:"variant_name"`

	// IsControl reports whether this variant is the experiment's control arm.
	IsControl bool `json:"is_control"`

	// PromptMeta carries template identity and version.
	PromptMeta PromptMeta `json:"prompt_meta"`

	// ExperimentMeta carries the experiment and split context.
	ExperimentMeta ExperimentMeta `json:"experiment_meta"`
}
