// Package api defines wire-format types and the summary service shared by the
// CLI and the HTTP server.
//
// # Key Types
//
// SummaryService: applies per-request overrides of the significant-word cap
// and cluster gap, serves cached digests when allowed, runs the summarizer
// otherwise, and persists the outcome.
//
// SummaryResponse / ExplainResponse: transport views of a summary, the latter
// carrying per-sentence scores and the cutoff statistics.
//
// DigestItem / DigestListResponse: transport views of stored digests.
//
// # Design Notes
//
// DTOs use snake_case JSON tags. Timestamps use RFC3339 with milliseconds. A
// nil DigestStore disables caching; digest operations then return
// ErrCacheDisabled. Cache read and write failures are logged and never fail a
// summary.
package api
