// Package main hosts the salience CLI entrypoint and command graph.
//
// The Cobra-based command tree reads documents from files, standard input, or
// URLs, prints their extractive summaries (plain, JSON, or with per-sentence
// scoring detail), manages the digest cache, scaffolds configuration, and runs
// the HTTP server. It centralizes configuration resolution and logging setup
// so subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
