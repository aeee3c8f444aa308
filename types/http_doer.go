package types

import "net/http"

// HTTPDoer executes a single HTTP request.
//
// *http.Client satisfies this interface; tests substitute their own
// implementation via million.WithHTTPClient instead of patching transport
// internals. Implementations must honor the request context.
type HTTPDoer interface {
	// Do executes one request and returns its response or a transport error.
	Do(req *http.Request) (*http.Response, error)
}
