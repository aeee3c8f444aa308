// Package transport implements the request pipeline: it executes exactly one
// network exchange per call and translates the outcome into either a parsed
// success envelope or one typed error from the client's taxonomy.
//
// The pipeline never retries. Retry and backoff policy is explicitly the
// caller's responsibility; every failure surfaces immediately.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/barkhaaroraa/million-go-client/types"
	"github.com/google/uuid"
)

// Classification kinds reported to metrics.
const (
	errKindNetwork = "network"
	errKindService = "service"
)

// Envelope is the `{success, data, meta?}` wrapper all API responses share.
//
// Data and Meta stay raw so each operation can decode its own payload shape.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Pipeline issues requests against the experiment service.
//
// One Pipeline instance is owned by one facade; it holds no per-request state
// and is safe for concurrent use. The request executor is injected so tests
// can substitute the transport without patching anything.
type Pipeline struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	client  types.HTTPDoer
	logger  types.Logger
	metrics types.RequestMetrics
}

// New creates a Pipeline.
//
// Parameters:
//   - baseURL: Absolute service base, e.g. "https://api.millionexperiments.com"
//   - apiKey: Bearer token attached to every request
//   - timeout: Per-request timeout applied via context
//   - client: Request executor (typically *http.Client)
//   - logger: Structured logger
//   - metrics: Request metrics sink
//
// Returns:
//   - *Pipeline: Pipeline ready for use
func New(baseURL, apiKey string, timeout time.Duration, client types.HTTPDoer, logger types.Logger, metrics types.RequestMetrics) *Pipeline {
	return &Pipeline{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		timeout: timeout,
		client:  client,
		logger:  logger,
		metrics: metrics,
	}
}

// Post executes one POST exchange with a JSON body.
//
// Parameters:
//   - ctx: Context for cancellation; the configured timeout is layered on top
//   - operation: Logical operation name for logs and metrics
//   - path: Relative path, e.g. "/api/v1/events"
//   - body: Value marshaled as the JSON request body
//
// Returns:
//   - *Envelope: Parsed success envelope with Success true and Data present
//   - error: *types.NetworkError or *types.ServiceError
func (p *Pipeline) Post(ctx context.Context, operation, path string, body any) (*Envelope, error) {
	return p.do(ctx, operation, http.MethodPost, path, nil, body)
}

// Get executes one GET exchange with optional query parameters.
//
// Parameters:
//   - ctx: Context for cancellation; the configured timeout is layered on top
//   - operation: Logical operation name for logs and metrics
//   - path: Relative path
//   - query: Query parameters, may be nil
//
// Returns:
//   - *Envelope: Parsed success envelope with Success true and Data present
//   - error: *types.NetworkError or *types.ServiceError
func (p *Pipeline) Get(ctx context.Context, operation, path string, query url.Values) (*Envelope, error) {
	return p.do(ctx, operation, http.MethodGet, path, query, nil)
}

// do runs the single exchange and classifies its outcome.
//
// Classification rules, in priority order:
//  1. Transport failure (refused, DNS, reset, timeout) -> NetworkError with cause
//  2. Body that does not parse as the envelope -> NetworkError "invalid response"
//  3. Status outside [200, 300) -> ServiceError with status and server message
//  4. 2xx with Success false or absent Data -> ServiceError (contract violation)
//  5. Otherwise -> the envelope, verbatim
func (p *Pipeline) do(ctx context.Context, operation, method, path string, query url.Values, body any) (*Envelope, error) {
	target := p.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, &types.NetworkError{Message: "failed to encode request body", Cause: err}
		}
		reader = bytes.NewReader(encoded)
	}

	reqCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, method, target, reader)
	if err != nil {
		return nil, &types.NetworkError{Message: "failed to build request", Cause: err}
	}

	requestID := uuid.NewString()
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", requestID)

	start := time.Now()
	resp, err := p.client.Do(req)
	elapsed := time.Since(start).Seconds()
	p.metrics.RecordRequestDuration(operation, elapsed)

	if err != nil {
		p.metrics.RecordRequestError(operation, errKindNetwork)
		p.logger.Warn("request failed",
			"operation", operation,
			"method", method,
			"url", target,
			"requestID", requestID,
			"error", err,
		)

		return nil, &types.NetworkError{Message: fmt.Sprintf("%s %s failed", method, path), Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		p.metrics.RecordRequestError(operation, errKindNetwork)

		return nil, &types.NetworkError{Message: "failed to read response body", Cause: err}
	}

	var envelope Envelope
	if err := json.Unmarshal(raw, &envelope); err != nil {
		p.metrics.RecordRequestError(operation, errKindNetwork)
		p.logger.Warn("unparsable response body",
			"operation", operation,
			"requestID", requestID,
			"status", resp.StatusCode,
		)

		return nil, &types.NetworkError{Message: "invalid response", Cause: err}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		p.metrics.RecordRequestError(operation, errKindService)

		message := envelope.Error
		if message == "" {
			message = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		p.logger.Warn("service rejected request",
			"operation", operation,
			"requestID", requestID,
			"status", resp.StatusCode,
			"message", message,
		)

		return nil, &types.ServiceError{StatusCode: resp.StatusCode, Message: message}
	}

	if !envelope.Success || len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		p.metrics.RecordRequestError(operation, errKindService)

		return nil, &types.ServiceError{
			StatusCode: resp.StatusCode,
			Message:    "malformed success envelope: missing success/data",
		}
	}

	p.logger.Debug("request completed",
		"operation", operation,
		"requestID", requestID,
		"status", resp.StatusCode,
		"seconds", elapsed,
	)

	return &envelope, nil
}
