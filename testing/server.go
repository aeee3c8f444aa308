package testing

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/barkhaaroraa/million-go-client/types"
)

// Server is an in-process fake of the Million experiment service.
//
// It implements the three API endpoints the client consumes, enforces the
// bearer-token contract, and records every allocation request so tests can
// assert on network traffic (for example, that a cached fetch issued zero
// requests).
//
// Benefits over stubbing the request executor by hand:
//   - Exercises the real pipeline end to end, headers and envelope included
//   - Fast startup (httptest, no external dependencies)
//   - Automatic cleanup via t.Cleanup()
type Server struct {
	apiKey string
	srv    *httptest.Server

	mu              sync.Mutex
	promptRequests  map[string]int
	lastSplit       types.SplitType
	lastEventsQuery url.Values
	events          []recordedEvent
	omitMeta        bool
	nextAssignment  int
	nextEvent       int
	failStatus      int
	failMessage     string
}

// recordedEvent is one outcome event accepted by the fake service.
type recordedEvent struct {
	AssignmentID string         `json:"assignment_id"`
	Outcome      types.Outcome  `json:"outcome"`
	Score        *float64       `json:"score,omitempty"`
	UserFeedback types.Feedback `json:"user_feedback,omitempty"`
}

// StartServer starts a fake experiment service for the duration of the test.
//
// The server accepts the API key returned by APIKey() and rejects every
// other bearer token with a 401. It is shut down automatically when the
// test completes.
//
// Parameters:
//   - t: Testing context for cleanup
//
// Returns:
//   - *Server: Running fake service
func StartServer(t *testing.T) *Server {
	t.Helper()

	s := &Server{
		apiKey:         "test-api-key",
		promptRequests: make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/experiments/{id}/prompt", s.handlePrompt)
	mux.HandleFunc("POST /api/v1/events", s.handleTrack)
	mux.HandleFunc("GET /api/v1/experiments/{id}/events", s.handleEvents)

	s.srv = httptest.NewServer(mux)
	t.Cleanup(s.srv.Close)

	return s
}

// URL returns the base URL to point Config.BaseURL at.
func (s *Server) URL() string {
	return s.srv.URL
}

// APIKey returns the bearer token the fake service accepts.
func (s *Server) APIKey() string {
	return s.apiKey
}

// PromptRequestCount returns how many allocation requests the service has
// received for the experiment. Cached fetches do not increment it.
func (s *Server) PromptRequestCount(experimentID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.promptRequests[experimentID]
}

// LastSplitType returns the split type of the most recent allocation request.
func (s *Server) LastSplitType() types.SplitType {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastSplit
}

// EventCount returns how many outcome events the service has accepted.
func (s *Server) EventCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.events)
}

// LastEvent returns the most recent accepted outcome event's assignment ID,
// outcome, score, and feedback. Fails the calling test if none was recorded.
func (s *Server) LastEvent(t *testing.T) (string, types.Outcome, *float64, types.Feedback) {
	t.Helper()

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.events) == 0 {
		t.Fatal("no events recorded")
	}
	last := s.events[len(s.events)-1]

	return last.AssignmentID, last.Outcome, last.Score, last.UserFeedback
}

// LastEventsQuery returns the query parameters of the most recent events
// request, so tests can assert exactly which filters were sent.
func (s *Server) LastEventsQuery() url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastEventsQuery
}

// OmitMeta makes subsequent events responses omit the pagination meta block,
// for testing the client's meta defaulting.
func (s *Server) OmitMeta() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.omitMeta = true
}

// FailNext makes the next request fail with the given status and error
// message, after which the service behaves normally again.
func (s *Server) FailNext(status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus = status
	s.failMessage = message
}

// checkAuth enforces the bearer-token contract; it also consumes a pending
// FailNext. Reports whether the handler should continue.
func (s *Server) checkAuth(w http.ResponseWriter, r *http.Request) bool {
	s.mu.Lock()
	failStatus, failMessage := s.failStatus, s.failMessage
	s.failStatus, s.failMessage = 0, ""
	s.mu.Unlock()

	if failStatus != 0 {
		writeError(w, failStatus, failMessage)

		return false
	}

	if r.Header.Get("Authorization") != "Bearer "+s.apiKey {
		writeError(w, http.StatusUnauthorized, "invalid API key")

		return false
	}

	return true
}

func (s *Server) handlePrompt(w http.ResponseWriter, r *http.Request) {
	if !s.checkAuth(w, r) {
		return
	}

	experimentID := r.PathValue("id")

	var req struct {
		SplitType types.SplitType `json:"split_type"`
		UserID    string          `json:"user_id"`
		SessionID string          `json:"session_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")

		return
	}

	s.mu.Lock()
	s.promptRequests[experimentID]++
	s.lastSplit = req.SplitType
	s.nextAssignment++
	n := s.nextAssignment
	s.mu.Unlock()

	identifier := req.UserID
	if identifier == "" {
		identifier = req.SessionID
	}

	assignment := types.Assignment{
		AssignmentID: fmt.Sprintf("asn-%d", n),
		Prompt:       fmt.Sprintf("prompt %d for %s", n, experimentID),
		VariantID:    fmt.Sprintf("variant-%d", n%2),
		VariantName:  fmt.Sprintf("v%d", n%2),
		IsControl:    n%2 == 0,
		PromptMeta: types.PromptMeta{
			TemplateID:      "tpl-1",
			TemplateVersion: 3,
		},
		ExperimentMeta: types.ExperimentMeta{
			ExperimentID: experimentID,
			SplitType:    req.SplitType,
			Identifier:   identifier,
		},
	}

	writeSuccess(w, assignment, nil)
}

func (s *Server) handleTrack(w http.ResponseWriter, r *http.Request) {
	if !s.checkAuth(w, r) {
		return
	}

	var event recordedEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")

		return
	}
	if event.AssignmentID == "" {
		writeError(w, http.StatusUnprocessableEntity, "assignment_id is required")

		return
	}

	s.mu.Lock()
	s.events = append(s.events, event)
	s.nextEvent++
	n := s.nextEvent
	s.mu.Unlock()

	writeSuccess(w, types.TrackResult{ID: fmt.Sprintf("evt-%d", n)}, nil)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if !s.checkAuth(w, r) {
		return
	}

	s.mu.Lock()
	s.lastEventsQuery = r.URL.Query()
	events := make([]types.Event, 0, len(s.events))
	for i, e := range s.events {
		events = append(events, types.Event{
			ID:           fmt.Sprintf("evt-%d", i+1),
			AssignmentID: e.AssignmentID,
			ExperimentID: r.PathValue("id"),
			Outcome:      e.Outcome,
			Score:        e.Score,
			Feedback:     e.UserFeedback,
			CreatedAt:    time.Now().UTC(),
		})
	}
	omitMeta := s.omitMeta
	s.mu.Unlock()

	if omitMeta {
		writeSuccess(w, events, nil)

		return
	}

	writeSuccess(w, events, &types.PageMeta{Total: len(events), Page: 1, Limit: 50})
}

func writeSuccess(w http.ResponseWriter, data any, meta *types.PageMeta) {
	w.Header().Set("Content-Type", "application/json")

	body := map[string]any{"success": true, "data": data}
	if meta != nil {
		body["meta"] = meta
	}
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "error": message})
}
