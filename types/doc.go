// Package types provides core type definitions and interfaces for the Million client library.
//
// This package contains shared types that are used across multiple packages in the
// Million client. By keeping these types in a separate package, we avoid import cycles
// between the main million package and its internal implementations.
//
// Key types:
//   - Assignment: Server-issued prompt variant allocation
//   - SplitType: Split strategy (user, session, random)
//   - TrackOptions / EventFilters: Inputs for outcome tracking and event queries
//   - Logger: Structured logging interface
//   - MetricsCollector: Metrics recording interface
package types
