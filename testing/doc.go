// Package testing provides test utilities for the Million client library.
//
// This package offers helpers for setting up test environments, particularly
// an embedded fake experiment service for integration testing. It follows
// Go's convention of providing testing utilities in a dedicated package
// (similar to net/http/httptest).
//
// Key utilities:
//   - StartServer: In-process fake experiment service over httptest
//   - NewTestLogger: Logger that writes through testing.T
//
// Example usage:
//
//	import (
//	    "testing"
//	    milliontest "github.com/barkhaaroraa/million-go-client/testing"
//	)
//
//	func TestMyFeature(t *testing.T) {
//	    srv := milliontest.StartServer(t)
//	    cfg := million.TestConfig()
//	    cfg.BaseURL = srv.URL()
//	    cfg.APIKey = srv.APIKey()
//	    // ...
//	}
package testing
