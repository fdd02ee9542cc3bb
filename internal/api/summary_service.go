package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"salience/internal/digest"
	"salience/internal/logging"
	"salience/internal/summarize"
	"salience/internal/textutil"
)

// ErrCacheDisabled reports a digest operation while caching is off.
var ErrCacheDisabled = errors.New("digest cache is disabled")

// DigestStore abstracts digest persistence needed by the summary service.
type DigestStore interface {
	Put(ctx context.Context, rec digest.Record) (*digest.Record, error)
	Get(ctx context.Context, id string) (*digest.Record, error)
	Lookup(ctx context.Context, key string) (*digest.Record, error)
	List(ctx context.Context, limit int) ([]*digest.Record, error)
	Remove(ctx context.Context, id string) error
	Clear(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int, error)
}

// SummaryService summarizes documents and manages stored digests.
type SummaryService struct {
	base   summarize.Options
	store  DigestStore
	root   *slog.Logger
	logger *slog.Logger
}

// Summary is the outcome of SummaryService.Summarize. Result is nil when the
// digest was served from the cache.
type Summary struct {
	Record *digest.Record
	Result *summarize.Result
	Cached bool
}

// NewSummaryService constructs a service around base options. A nil store
// disables caching. The sentence tokenizer is built once and shared by every
// request.
func NewSummaryService(base summarize.Options, store DigestStore, logger *slog.Logger) (*SummaryService, error) {
	if base.Tokenizer == nil {
		tok, err := textutil.NewPunktTokenizer()
		if err != nil {
			return nil, err
		}
		base.Tokenizer = tok
	}
	if _, err := summarize.New(base, nil); err != nil {
		return nil, err
	}
	return &SummaryService{
		base:   base,
		store:  store,
		root:   logger,
		logger: logging.NewComponentLogger(logger, "summary-service"),
	}, nil
}

// CacheEnabled reports whether digests are persisted.
func (s *SummaryService) CacheEnabled() bool {
	return s != nil && s.store != nil
}

// Options returns the options a request would run with after overrides.
func (s *SummaryService) Options(req SummarizeRequest) summarize.Options {
	opts := s.base
	if req.SignificantWords > 0 {
		opts.SignificantWords = req.SignificantWords
	}
	if req.ClusterGap > 0 {
		opts.ClusterGap = req.ClusterGap
	}
	return opts
}

// Summarize returns the summary of req.Text. A cached digest is served unless
// req.Refresh is set or detail is requested; detail always recomputes so the
// per-sentence scores are available. On a cache hit a non-empty req.Title or
// req.Origin replaces the stored value in the returned record only; the stored
// digest keeps the labels it was first saved with.
func (s *SummaryService) Summarize(ctx context.Context, req SummarizeRequest, detail bool) (*Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.SignificantWords < 0 || req.ClusterGap < 0 {
		return nil, fmt.Errorf("%w: overrides must be positive", summarize.ErrInvalidOptions)
	}
	logger := logging.WithContext(ctx, s.logger)
	opts := s.Options(req)
	key := digest.Key(req.Text, opts)

	if s.store != nil && !req.Refresh && !detail {
		rec, err := s.store.Lookup(ctx, key)
		switch {
		case err == nil:
			logger.Debug("digest cache hit", logging.String(logging.FieldDigestID, rec.ID))
			if title := strings.TrimSpace(req.Title); title != "" {
				rec.Title = title
			}
			if origin := strings.TrimSpace(req.Origin); origin != "" {
				rec.Origin = origin
			}
			return &Summary{Record: rec, Cached: true}, nil
		case !errors.Is(err, digest.ErrNotFound):
			logging.WarnWithContext(logger, "digest lookup failed", "digest_lookup_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check the digest database under state_dir"),
				logging.String(logging.FieldImpact, "summary recomputed"),
			)
		}
	}

	summarizer, err := summarize.New(opts, logging.WithContext(ctx, s.root))
	if err != nil {
		return nil, err
	}
	res, err := summarizer.Summarize(req.Text)
	if err != nil {
		return nil, err
	}

	rec := digest.NewRecord(key, res)
	rec.Title = strings.TrimSpace(req.Title)
	rec.Origin = strings.TrimSpace(req.Origin)
	out := &Summary{Record: &rec, Result: res}
	if s.store == nil {
		return out, nil
	}
	stored, err := s.store.Put(ctx, rec)
	if err != nil {
		logging.WarnWithContext(logger, "digest store failed", "digest_store_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the digest database under state_dir"),
			logging.String(logging.FieldImpact, "summary not cached"),
		)
		return out, nil
	}
	out.Record = stored
	logger.Debug("digest stored", logging.String(logging.FieldDigestID, stored.ID))
	return out, nil
}

// Digests lists stored digests newest first together with the total count.
func (s *SummaryService) Digests(ctx context.Context, limit int) ([]DigestItem, int, error) {
	if !s.CacheEnabled() {
		return nil, 0, ErrCacheDisabled
	}
	recs, err := s.store.List(ctx, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return FromRecords(recs), total, nil
}

// Digest returns one stored digest by ID or unique ID prefix.
func (s *SummaryService) Digest(ctx context.Context, id string) (*DigestItem, error) {
	if !s.CacheEnabled() {
		return nil, ErrCacheDisabled
	}
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	item := FromRecord(rec)
	return &item, nil
}

// RemoveDigest deletes one stored digest.
func (s *SummaryService) RemoveDigest(ctx context.Context, id string) error {
	if !s.CacheEnabled() {
		return ErrCacheDisabled
	}
	if err := s.store.Remove(ctx, id); err != nil {
		return err
	}
	logging.WithContext(ctx, s.logger).Info("digest removed", logging.String(logging.FieldDigestID, id))
	return nil
}

// ClearDigests deletes every stored digest.
func (s *SummaryService) ClearDigests(ctx context.Context) (int64, error) {
	if !s.CacheEnabled() {
		return 0, ErrCacheDisabled
	}
	removed, err := s.store.Clear(ctx)
	if err != nil {
		return 0, err
	}
	logging.WithContext(ctx, s.logger).Info("digests cleared", logging.Int64("removed", removed))
	return removed, nil
}

// DigestCount returns the number of stored digests, or zero when caching is
// off.
func (s *SummaryService) DigestCount(ctx context.Context) (int, error) {
	if !s.CacheEnabled() {
		return 0, nil
	}
	return s.store.Count(ctx)
}
