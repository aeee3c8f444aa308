// Package million provides a Go client for the Million prompt experiment
// service: fetch a prompt variant for a user, session, or random split, use
// the content, and later record an outcome against the correct assignment.
//
// User and session assignments are cached in memory for a configurable TTL,
// so repeated fetches for the same identity cost no network round trips and
// outcome events can be attached to the right assignment without the caller
// threading assignment IDs through business logic.
//
// # Quick Start
//
// Basic usage with default settings:
//
//	import "github.com/barkhaaroraa/million-go-client"
//
//	cfg := million.Config{
//	    APIKey: os.Getenv("MILLION_API_KEY"),
//	}
//
//	client, err := million.New(&cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	assignment, err := client.GetPromptForUser(ctx, "onboarding-copy", "user-42")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// ... use assignment.Prompt ...
//
//	_, err = client.TrackSuccess(ctx, million.TrackOptions{
//	    ExperimentID: "onboarding-copy",
//	    UserID:       "user-42",
//	})
//
// # Key Behaviors
//
//   - Cached Splits: User and session assignments are cached for Config.CacheTTL;
//     random splits always hit the network and are never cached
//   - Local Resolution: TrackOutcome finds the assignment in the cache (exact
//     triple, then user-only, then session-only) with zero network cost
//   - Typed Failures: Every error is one of ValidationError, NetworkError,
//     ServiceError, or AssignmentNotFoundError, matched with errors.As
//   - No Retries: Failures surface immediately; retry policy belongs to the caller
//
// # Advanced Usage
//
// Optional dependencies are injected with functional options:
//
//	client, err := million.New(&cfg,
//	    million.WithLogger(million.NewSlogLogger(slog.Default())),
//	    million.WithMetrics(million.NewPrometheusMetrics(nil)),
//	    million.WithHTTPClient(customHTTPClient),
//	)
//
// See the examples/ directory for complete working examples.
package million
