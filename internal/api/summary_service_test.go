package api_test

import (
	"context"
	"errors"
	"testing"

	"salience/internal/api"
	"salience/internal/digest"
	"salience/internal/stopwords"
	"salience/internal/summarize"
	"salience/internal/testsupport"
)

const foxText = "The quick brown fox. The quick brown fox jumps over the lazy dog. A fox is quick."

func foxOptions() summarize.Options {
	return summarize.Options{
		SignificantWords: 10,
		ClusterGap:       5,
		StopWords:        stopwords.New("the", "a", "is", "over"),
	}
}

func newService(t *testing.T, store api.DigestStore) *api.SummaryService {
	t.Helper()
	svc, err := api.NewSummaryService(foxOptions(), store, nil)
	if err != nil {
		t.Fatalf("NewSummaryService: %v", err)
	}
	return svc
}

func TestSummarizeCachesDigest(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	svc := newService(t, store)
	ctx := context.Background()

	first, err := svc.Summarize(ctx, api.SummarizeRequest{Text: foxText, Title: " Fox "}, false)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if first.Cached || first.Result == nil {
		t.Fatalf("expected a fresh result, got %+v", first)
	}
	if first.Record.ID == "" || first.Record.Title != "Fox" {
		t.Fatalf("expected persisted record with trimmed title, got %+v", first.Record)
	}

	second, err := svc.Summarize(ctx, api.SummarizeRequest{Text: foxText}, false)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if !second.Cached || second.Result != nil {
		t.Fatalf("expected cache hit, got %+v", second)
	}
	if second.Record.ID != first.Record.ID {
		t.Fatalf("cache hit returned %s, want %s", second.Record.ID, first.Record.ID)
	}

	if second.Record.Title != "Fox" {
		t.Fatalf("cache hit without a title should keep the stored one, got %q", second.Record.Title)
	}

	third, err := svc.Summarize(ctx, api.SummarizeRequest{Text: foxText, Title: "Vixen ", Origin: "notes.txt"}, false)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if !third.Cached || third.Record.ID != first.Record.ID {
		t.Fatalf("expected cache hit, got %+v", third)
	}
	if third.Record.Title != "Vixen" || third.Record.Origin != "notes.txt" {
		t.Fatalf("expected request labels on cache hit, got %+v", third.Record)
	}
	stored, err := svc.Digest(ctx, first.Record.ID)
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	if stored.Title != "Fox" {
		t.Fatalf("stored title changed to %q", stored.Title)
	}

	resp := api.SummaryResponseFrom(second)
	if len(resp.Summary) != 1 || resp.Summary[0] != "The quick brown fox jumps over the lazy dog." {
		t.Fatalf("unexpected cached summary %q", resp.Summary)
	}
	if resp.Sentences != 3 || resp.Scored != 3 || !resp.Cached {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestSummarizeOverridesChangeKey(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	svc := newService(t, store)
	ctx := context.Background()

	if _, err := svc.Summarize(ctx, api.SummarizeRequest{Text: foxText}, false); err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	out, err := svc.Summarize(ctx, api.SummarizeRequest{Text: foxText, ClusterGap: 2}, false)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if out.Cached {
		t.Fatal("different cluster gap must not hit the cache")
	}
	if got := svc.Options(api.SummarizeRequest{ClusterGap: 2}).ClusterGap; got != 2 {
		t.Fatalf("override not applied, gap = %d", got)
	}
	count, err := svc.DigestCount(ctx)
	if err != nil || count != 2 {
		t.Fatalf("DigestCount = %d, %v; want 2", count, err)
	}
}

func TestSummarizeDetailRecomputes(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	svc := newService(t, store)
	ctx := context.Background()

	if _, err := svc.Summarize(ctx, api.SummarizeRequest{Text: foxText}, false); err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	out, err := svc.Summarize(ctx, api.SummarizeRequest{Text: foxText}, true)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if out.Cached || out.Result == nil {
		t.Fatalf("detail must recompute, got %+v", out)
	}

	explain := api.ExplainResponseFrom(out)
	if len(explain.Sentences) != 3 {
		t.Fatalf("expected 3 sentence details, got %+v", explain.Sentences)
	}
	if !explain.Sentences[1].Selected || explain.Sentences[0].Selected || explain.Sentences[2].Selected {
		t.Fatalf("only sentence 1 should be selected: %+v", explain.Sentences)
	}
	if explain.Sentences[1].Score != 4.5 {
		t.Fatalf("sentence 1 score = %v, want 4.5", explain.Sentences[1].Score)
	}
	if explain.Significant[0].Word != "quick" {
		t.Fatalf("unexpected significant words %+v", explain.Significant)
	}
	if explain.Cutoff <= explain.Mean {
		t.Fatalf("cutoff %v should exceed mean %v", explain.Cutoff, explain.Mean)
	}
}

func TestSummarizeWithoutCache(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	out, err := svc.Summarize(ctx, api.SummarizeRequest{Text: foxText}, false)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if out.Cached || out.Record.ID != "" {
		t.Fatalf("expected unpersisted record, got %+v", out.Record)
	}
	if svc.CacheEnabled() {
		t.Fatal("cache should be disabled")
	}
	if _, _, err := svc.Digests(ctx, 0); !errors.Is(err, api.ErrCacheDisabled) {
		t.Fatalf("Digests error = %v, want ErrCacheDisabled", err)
	}
	if _, err := svc.ClearDigests(ctx); !errors.Is(err, api.ErrCacheDisabled) {
		t.Fatalf("ClearDigests error = %v, want ErrCacheDisabled", err)
	}
}

func TestSummarizeRejectsNegativeOverrides(t *testing.T) {
	svc := newService(t, nil)
	_, err := svc.Summarize(context.Background(), api.SummarizeRequest{Text: foxText, ClusterGap: -1}, false)
	if !errors.Is(err, summarize.ErrInvalidOptions) {
		t.Fatalf("expected ErrInvalidOptions, got %v", err)
	}
}

type failingStore struct {
	api.DigestStore
	puts int
}

func (f *failingStore) Lookup(context.Context, string) (*digest.Record, error) {
	return nil, errors.New("disk on fire")
}

func (f *failingStore) Put(context.Context, digest.Record) (*digest.Record, error) {
	f.puts++
	return nil, errors.New("disk on fire")
}

func TestSummarizeToleratesStoreFailures(t *testing.T) {
	store := &failingStore{}
	svc := newService(t, store)

	out, err := svc.Summarize(context.Background(), api.SummarizeRequest{Text: foxText}, false)
	if err != nil {
		t.Fatalf("store failures must not fail the summary: %v", err)
	}
	if store.puts != 1 {
		t.Fatalf("expected one Put attempt, got %d", store.puts)
	}
	if len(out.Record.Summary) != 1 {
		t.Fatalf("unexpected summary %q", out.Record.Summary)
	}
}

func TestDigestManagement(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenStore(t, cfg)
	svc := newService(t, store)
	ctx := context.Background()

	first := testsupport.PutRecord(t, store, "key-one", "One.")
	testsupport.PutRecord(t, store, "key-two", "Two.")

	items, total, err := svc.Digests(ctx, 1)
	if err != nil {
		t.Fatalf("Digests: %v", err)
	}
	if total != 2 || len(items) != 1 {
		t.Fatalf("expected 1 of 2 items, got %d of %d", len(items), total)
	}

	item, err := svc.Digest(ctx, first.ID[:8])
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	if item.ID != first.ID || item.CreatedAt == "" {
		t.Fatalf("unexpected item %+v", item)
	}

	if err := svc.RemoveDigest(ctx, first.ID); err != nil {
		t.Fatalf("RemoveDigest: %v", err)
	}
	if _, err := svc.Digest(ctx, first.ID); !errors.Is(err, digest.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after removal, got %v", err)
	}

	removed, err := svc.ClearDigests(ctx)
	if err != nil || removed != 1 {
		t.Fatalf("ClearDigests = %d, %v; want 1", removed, err)
	}
}

func TestSummarizeHonorsCanceledContext(t *testing.T) {
	svc := newService(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.Summarize(ctx, api.SummarizeRequest{Text: foxText}, false); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
