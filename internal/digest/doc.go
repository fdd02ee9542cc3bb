// Package digest persists summaries in SQLite so repeated requests for the
// same document and options are served without re-running the pipeline.
//
// Each Record is addressed two ways: a random UUID for humans and the API, and
// a content Key derived from the normalized document text plus the options
// that shaped the summary. Schema changes bump the version in schema.go; users
// clear the database to adopt the new schema.
package digest
