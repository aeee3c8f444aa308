package million

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/barkhaaroraa/million-go-client/internal/cache"
	"github.com/barkhaaroraa/million-go-client/internal/logger"
	"github.com/barkhaaroraa/million-go-client/internal/metrics"
	"github.com/barkhaaroraa/million-go-client/internal/resolve"
	"github.com/barkhaaroraa/million-go-client/internal/transport"
	"github.com/barkhaaroraa/million-go-client/internal/validate"
	"github.com/barkhaaroraa/million-go-client/types"
)

// Client binds application code to the Million experiment-assignment service.
//
// It fetches prompt variants for user, session, or random splits, caches
// user/session assignments for the configured TTL, and attaches outcome
// events to the correct assignment without the caller threading assignment
// IDs through business logic.
//
// Thread Safety:
//   - All public methods are safe for concurrent use
//   - Concurrent fetches for the same unseen identity are NOT deduplicated:
//     both miss the cache, both reach the network, and the second response
//     to land overwrites the cache entry. The cache optimizes repeat-read
//     consistency within the TTL window, not first-read deduplication.
//
// Lifecycle:
//   - Create with New(); this starts the background cache sweeper
//   - Call Close() when done to stop the sweeper and drop the cache;
//     forgetting Close leaks the sweeper goroutine for the process lifetime
//
// Testing:
// Inject a fake request executor with WithHTTPClient, or point BaseURL at
// milliontest.StartServer.
type Client struct {
	cfg      Config
	cache    *cache.Cache
	pipeline *transport.Pipeline
	logger   Logger
	metrics  MetricsCollector

	// Lifecycle management
	closed atomic.Bool
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// Logical operation names for logs and metrics.
const (
	opGetPrompt  = "get_prompt"
	opTrackEvent = "track_event"
	opGetEvents  = "get_events"
)

// New creates a Client and starts its background cache sweeper.
//
// Returns a concrete *Client following the "accept interfaces, return
// structs" principle; consumers can define their own narrow interfaces for
// mocking.
//
// Parameters:
//   - cfg: Configuration; missing values are filled with defaults, then validated
//   - opts: Optional dependencies (logger, metrics, request executor, clock)
//
// Returns:
//   - *Client: Initialized client with the sweeper running
//   - error: ErrInvalidConfig or a validation error describing the problem
//
// Example:
//
//	cfg := million.Config{APIKey: os.Getenv("MILLION_API_KEY")}
//	client, err := million.New(&cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
func New(cfg *Config, opts ...Option) (*Client, error) {
	if cfg == nil {
		return nil, ErrInvalidConfig
	}

	SetDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Apply options
	options := &clientOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// Provide safe defaults for optional dependencies to avoid nil checks everywhere
	loggerInstance := options.logger
	if loggerInstance == nil {
		loggerInstance = logger.NewNop()
	}

	metricsCollector := options.metrics
	if metricsCollector == nil {
		metricsCollector = metrics.NewNop()
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	cacheOpts := []cache.Option{
		cache.WithLogger(loggerInstance),
		cache.WithMetrics(metricsCollector),
	}
	if options.clock != nil {
		cacheOpts = append(cacheOpts, cache.WithClock(options.clock))
	}

	c := &Client{
		cfg:      *cfg,
		cache:    cache.New(cfg.CacheTTL, cacheOpts...),
		pipeline: transport.New(cfg.BaseURL, cfg.APIKey, cfg.RequestTimeout, httpClient, loggerInstance, metricsCollector),
		logger:   loggerInstance,
		metrics:  metricsCollector,
		stopCh:   make(chan struct{}),
	}

	c.wg.Add(1)
	go c.sweepLoop()

	return c, nil
}

// sweepLoop evicts expired cache entries on a fixed interval, independent of
// read/write traffic, to bound memory for entries written but never re-read.
func (c *Client) sweepLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.cfg.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cache.Sweep()
		case <-c.stopCh:
			return
		}
	}
}

// GetPromptForUser returns the prompt variant assigned to a user.
//
// A cached assignment for (experimentID, userID) is returned without any
// network activity; on a miss the service allocates one and the result is
// cached for the configured TTL.
//
// Parameters:
//   - ctx: Context for cancellation; the request timeout is layered on top
//   - experimentID: Experiment to fetch a variant from
//   - userID: Stable user identity the split is keyed on
//
// Returns:
//   - *Assignment: The allocated variant
//   - error: *ValidationError, *NetworkError, or *ServiceError
func (c *Client) GetPromptForUser(ctx context.Context, experimentID, userID string) (*Assignment, error) {
	if err := validate.ExperimentID(experimentID); err != nil {
		return nil, err
	}
	if err := validate.UserID(userID); err != nil {
		return nil, err
	}

	return c.fetchPrompt(ctx, experimentID, SplitTypeUser, userID, "")
}

// GetPromptForSession returns the prompt variant assigned to a session.
//
// Identical to GetPromptForUser but keyed on a session identity.
//
// Parameters:
//   - ctx: Context for cancellation; the request timeout is layered on top
//   - experimentID: Experiment to fetch a variant from
//   - sessionID: Session identity the split is keyed on
//
// Returns:
//   - *Assignment: The allocated variant
//   - error: *ValidationError, *NetworkError, or *ServiceError
func (c *Client) GetPromptForSession(ctx context.Context, experimentID, sessionID string) (*Assignment, error) {
	if err := validate.ExperimentID(experimentID); err != nil {
		return nil, err
	}
	if err := validate.SessionID(sessionID); err != nil {
		return nil, err
	}

	return c.fetchPrompt(ctx, experimentID, SplitTypeSession, "", sessionID)
}

// GetRandomPrompt returns a freshly allocated prompt variant.
//
// Random-split assignments are never cached and never read from the cache:
// every call is a network round trip, because consistency across calls is
// explicitly not desired for this split type.
//
// Parameters:
//   - ctx: Context for cancellation; the request timeout is layered on top
//   - experimentID: Experiment to fetch a variant from
//
// Returns:
//   - *Assignment: The allocated variant
//   - error: *ValidationError, *NetworkError, or *ServiceError
func (c *Client) GetRandomPrompt(ctx context.Context, experimentID string) (*Assignment, error) {
	if err := validate.ExperimentID(experimentID); err != nil {
		return nil, err
	}

	return c.fetchPrompt(ctx, experimentID, SplitTypeRandom, "", "")
}

// promptRequest is the allocation request body.
type promptRequest struct {
	SplitType SplitType `json:"split_type"`
	UserID    string    `json:"user_id,omitempty"`
	SessionID string    `json:"session_id,omitempty"`
}

// fetchPrompt runs the shared fetch flow: cache lookup (user/session splits
// only), allocation request on miss, cache store on success.
func (c *Client) fetchPrompt(ctx context.Context, experimentID string, split SplitType, userID, sessionID string) (*Assignment, error) {
	cacheable := split != SplitTypeRandom

	if cacheable {
		if a, ok := c.cache.Get(experimentID, userID, sessionID); ok {
			c.logger.Debug("assignment served from cache",
				"experimentID", experimentID,
				"assignmentID", a.AssignmentID,
			)

			return a, nil
		}
	}

	path := fmt.Sprintf("/api/v1/experiments/%s/prompt", url.PathEscape(experimentID))
	envelope, err := c.pipeline.Post(ctx, opGetPrompt, path, promptRequest{
		SplitType: split,
		UserID:    userID,
		SessionID: sessionID,
	})
	if err != nil {
		return nil, err
	}

	var assignment Assignment
	if err := json.Unmarshal(envelope.Data, &assignment); err != nil {
		return nil, &types.NetworkError{Message: "invalid response", Cause: err}
	}

	if cacheable {
		c.cache.Store(experimentID, userID, sessionID, &assignment)
	}

	return &assignment, nil
}

// TrackOutcome records an outcome against the assignment implied by opts.
//
// The assignment is resolved locally, in order: explicit opts.AssignmentID,
// exact cached triple, user-only fallback, session-only fallback. Resolution
// failure surfaces *AssignmentNotFoundError before any network activity.
//
// Parameters:
//   - ctx: Context for cancellation; the request timeout is layered on top
//   - outcome: OutcomeSuccess or OutcomeFailure
//   - opts: Event identity and optional score/feedback payload
//
// Returns:
//   - *TrackResult: Server acknowledgement with the recorded event ID
//   - error: *ValidationError, *AssignmentNotFoundError, *NetworkError, or *ServiceError
func (c *Client) TrackOutcome(ctx context.Context, outcome Outcome, opts TrackOptions) (*TrackResult, error) {
	if err := validate.Outcome(outcome); err != nil {
		return nil, err
	}
	if err := validate.ExperimentID(opts.ExperimentID); err != nil {
		return nil, err
	}
	if opts.Score != nil {
		if err := validate.Score("score", *opts.Score); err != nil {
			return nil, err
		}
	}
	if opts.Feedback != "" {
		if err := validate.Feedback(opts.Feedback); err != nil {
			return nil, err
		}
	}

	assignmentID, err := resolve.AssignmentID(c.cache, opts)
	if err != nil {
		return nil, err
	}

	body := trackRequest{
		AssignmentID: assignmentID,
		Outcome:      outcome,
		Score:        opts.Score,
	}
	if opts.Feedback != "" {
		body.UserFeedback = opts.Feedback
	}

	envelope, err := c.pipeline.Post(ctx, opTrackEvent, "/api/v1/events", body)
	if err != nil {
		return nil, err
	}

	var result TrackResult
	if err := json.Unmarshal(envelope.Data, &result); err != nil {
		return nil, &types.NetworkError{Message: "invalid response", Cause: err}
	}

	c.logger.Debug("outcome tracked",
		"assignmentID", assignmentID,
		"outcome", outcome,
		"eventID", result.ID,
	)

	return &result, nil
}

// trackRequest is the outcome event request body.
type trackRequest struct {
	AssignmentID string   `json:"assignment_id"`
	Outcome      Outcome  `json:"outcome"`
	Score        *float64 `json:"score,omitempty"`
	UserFeedback Feedback `json:"user_feedback,omitempty"`
}

// TrackSuccess records a success outcome. Shorthand for
// TrackOutcome(ctx, OutcomeSuccess, opts).
func (c *Client) TrackSuccess(ctx context.Context, opts TrackOptions) (*TrackResult, error) {
	return c.TrackOutcome(ctx, OutcomeSuccess, opts)
}

// TrackFailure records a failure outcome. Shorthand for
// TrackOutcome(ctx, OutcomeFailure, opts).
func (c *Client) TrackFailure(ctx context.Context, opts TrackOptions) (*TrackResult, error) {
	return c.TrackOutcome(ctx, OutcomeFailure, opts)
}

// TrackFeedback records a qualitative feedback signal. Negative feedback is
// recorded as a failure outcome, positive and neutral as success.
//
// Parameters:
//   - ctx: Context for cancellation
//   - feedback: FeedbackPositive, FeedbackNegative, or FeedbackNeutral
//   - opts: Event identity; opts.Feedback is overwritten with the argument
//
// Returns:
//   - *TrackResult: Server acknowledgement
//   - error: Same taxonomy as TrackOutcome
func (c *Client) TrackFeedback(ctx context.Context, feedback Feedback, opts TrackOptions) (*TrackResult, error) {
	if err := validate.Feedback(feedback); err != nil {
		return nil, err
	}

	opts.Feedback = feedback

	outcome := OutcomeSuccess
	if feedback == FeedbackNegative {
		outcome = OutcomeFailure
	}

	return c.TrackOutcome(ctx, outcome, opts)
}

// GetExperimentEvents queries recorded outcome events for an experiment.
//
// The result is always normalized: when the server omits pagination meta,
// Total defaults to 0 and Page/Limit echo the request (1 and 50 when unset).
//
// Parameters:
//   - ctx: Context for cancellation; the request timeout is layered on top
//   - experimentID: Experiment whose events to list
//   - filters: Optional narrowing filters; zero values are not sent
//
// Returns:
//   - *EventPage: Events plus pagination meta
//   - error: *ValidationError, *NetworkError, or *ServiceError
func (c *Client) GetExperimentEvents(ctx context.Context, experimentID string, filters EventFilters) (*EventPage, error) {
	if err := validate.ExperimentID(experimentID); err != nil {
		return nil, err
	}
	if err := validate.EventFilters(filters); err != nil {
		return nil, err
	}

	query := url.Values{}
	if filters.StartDate != "" {
		query.Set("start_date", filters.StartDate)
	}
	if filters.EndDate != "" {
		query.Set("end_date", filters.EndDate)
	}
	if filters.UserID != "" {
		query.Set("user_id", filters.UserID)
	}
	if filters.SessionID != "" {
		query.Set("session_id", filters.SessionID)
	}
	if filters.MinScore != nil {
		query.Set("min_score", strconv.FormatFloat(*filters.MinScore, 'f', -1, 64))
	}
	if filters.MaxScore != nil {
		query.Set("max_score", strconv.FormatFloat(*filters.MaxScore, 'f', -1, 64))
	}
	if filters.Feedback != "" {
		query.Set("feedback", filters.Feedback)
	}
	if filters.Outcome != "" {
		query.Set("outcome", string(filters.Outcome))
	}
	if filters.Page != nil {
		query.Set("page", strconv.Itoa(*filters.Page))
	}
	if filters.Limit != nil {
		query.Set("limit", strconv.Itoa(*filters.Limit))
	}

	path := fmt.Sprintf("/api/v1/experiments/%s/events", url.PathEscape(experimentID))
	envelope, err := c.pipeline.Get(ctx, opGetEvents, path, query)
	if err != nil {
		return nil, err
	}

	page := &EventPage{Events: []Event{}}
	if err := json.Unmarshal(envelope.Data, &page.Events); err != nil {
		return nil, &types.NetworkError{Message: "invalid response", Cause: err}
	}

	if len(envelope.Meta) > 0 && string(envelope.Meta) != "null" {
		if err := json.Unmarshal(envelope.Meta, &page.Meta); err != nil {
			return nil, &types.NetworkError{Message: "invalid response", Cause: err}
		}
	} else {
		page.Meta = PageMeta{Total: 0, Page: 1, Limit: validate.DefaultLimit}
		if filters.Page != nil {
			page.Meta.Page = *filters.Page
		}
		if filters.Limit != nil {
			page.Meta.Limit = *filters.Limit
		}
	}

	return page, nil
}

// ClearCache drops every cached assignment immediately.
//
// Subsequent fetches repopulate the cache from the service.
func (c *Client) ClearCache() {
	c.cache.Clear()
	c.logger.Debug("assignment cache cleared")
}

// Close stops the background sweeper and clears the cache.
//
// Safe to call multiple times. In-flight requests are not cancelled and
// later fetch calls still work; they simply run with no background sweeper,
// relying on lazy read-time expiry alone.
//
// Returns:
//   - error: Always nil; the signature matches io.Closer
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	close(c.stopCh)
	c.wg.Wait()
	c.cache.Clear()
	c.logger.Debug("client closed")

	return nil
}
