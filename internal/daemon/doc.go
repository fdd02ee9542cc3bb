// Package daemon runs the long-lived salience HTTP server.
//
// It wires configuration, the summary service, and the digest store into a
// single lifecycle with flock-based locking so two servers never share one
// state directory. The server exposes summarization, scoring detail, and
// digest maintenance endpoints under /api, optionally guarded by a bearer
// token, and tags every request with an ID that flows into log lines.
//
// Keep transport concerns here: summarization and persistence live in their
// respective packages while the daemon focuses on startup, shutdown, and
// request handling.
package daemon
