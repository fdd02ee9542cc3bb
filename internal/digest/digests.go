package digest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound reports a digest ID or key with no stored record.
	ErrNotFound = errors.New("digest not found")
	// ErrAmbiguousID reports an ID prefix that matches more than one record.
	ErrAmbiguousID = errors.New("digest id prefix is ambiguous")
)

// Put stores rec and returns the persisted record. When a record with the same
// Key already exists it is returned unchanged.
func (s *Store) Put(ctx context.Context, rec Record) (*Record, error) {
	ctx = ensureContext(ctx)
	rec.Key = strings.TrimSpace(rec.Key)
	if rec.Key == "" {
		return nil, errors.New("digest key cannot be empty")
	}
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	rec.CreatedAt = rec.CreatedAt.UTC()

	summaryJSON, err := encodeStrings(rec.Summary)
	if err != nil {
		return nil, fmt.Errorf("encode summary: %w", err)
	}
	significantJSON, err := encodeStrings(rec.Significant)
	if err != nil {
		return nil, fmt.Errorf("encode significant words: %w", err)
	}

	res, err := s.execWithRetry(ctx,
		`INSERT INTO digests (`+recordColumns+`)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(digest_key) DO NOTHING`,
		rec.ID,
		rec.Key,
		rec.Origin,
		rec.Title,
		rec.CreatedAt.Format(timeLayout),
		rec.SentenceCount,
		rec.ScoredCount,
		rec.Cutoff,
		summaryJSON,
		significantJSON,
	)
	if err != nil {
		return nil, fmt.Errorf("insert digest: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return s.Lookup(ctx, rec.Key)
	}
	return s.Get(ctx, rec.ID)
}

// Get returns the record with the given ID. A unique prefix of at least four
// characters is accepted.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	ctx = ensureContext(ctx)
	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return nil, ErrNotFound
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM digests WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get digest: %w", err)
	}
	if len(id) < 4 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM digests WHERE substr(id, 1, ?) = ? LIMIT 2`, len(id), id)
	if err != nil {
		return nil, fmt.Errorf("get digest by prefix: %w", err)
	}
	defer rows.Close()
	matches, err := collect(rows)
	if err != nil {
		return nil, err
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousID, id)
	}
}

// Lookup returns the record stored under key.
func (s *Store) Lookup(ctx context.Context, key string) (*Record, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM digests WHERE digest_key = ?`, strings.TrimSpace(key))
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup digest: %w", err)
	}
	return rec, nil
}

// List returns records newest first. A limit <= 0 returns every record.
func (s *Store) List(ctx context.Context, limit int) ([]*Record, error) {
	ctx = ensureContext(ctx)
	query := `SELECT ` + recordColumns + ` FROM digests ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list digests: %w", err)
	}
	defer rows.Close()
	return collect(rows)
}

// Remove deletes the record with the given ID (or unique ID prefix).
func (s *Store) Remove(ctx context.Context, id string) error {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	res, err := s.execWithRetry(ctx, `DELETE FROM digests WHERE id = ?`, rec.ID)
	if err != nil {
		return fmt.Errorf("remove digest: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// Clear removes every record and returns how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.execWithRetry(ctx, `DELETE FROM digests`)
	if err != nil {
		return 0, fmt.Errorf("clear digests: %w", err)
	}
	return res.RowsAffected()
}

// Count returns the number of stored records.
func (s *Store) Count(ctx context.Context) (int, error) {
	ctx = ensureContext(ctx)
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM digests`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count digests: %w", err)
	}
	return count, nil
}

func collect(rows *sql.Rows) ([]*Record, error) {
	var out []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
