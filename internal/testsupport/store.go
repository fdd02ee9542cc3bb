package testsupport

import (
	"context"
	"testing"

	"salience/internal/config"
	"salience/internal/digest"
)

// MustOpenStore opens a digest.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *digest.Store {
	t.Helper()

	store, err := digest.Open(cfg)
	if err != nil {
		t.Fatalf("digest.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// PutRecord stores a minimal record under key for tests.
func PutRecord(t testing.TB, store *digest.Store, key string, summary ...string) *digest.Record {
	t.Helper()

	rec, err := store.Put(context.Background(), digest.Record{
		Key:           key,
		Origin:        "test",
		SentenceCount: len(summary) + 1,
		ScoredCount:   len(summary) + 1,
		Summary:       summary,
	})
	if err != nil {
		t.Fatalf("store.Put: %v", err)
	}
	return rec
}
