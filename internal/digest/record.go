package digest

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"salience/internal/summarize"
)

const timeLayout = "2006-01-02T15:04:05.000000000Z"

const recordColumns = "id, digest_key, origin, title, created_at, sentence_count, scored_count, cutoff, summary_json, significant_json"

// Record is a stored summary.
type Record struct {
	ID            string    `json:"id"`
	Key           string    `json:"key"`
	Origin        string    `json:"origin,omitempty"`
	Title         string    `json:"title,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	SentenceCount int       `json:"sentence_count"`
	ScoredCount   int       `json:"scored_count"`
	Cutoff        float64   `json:"cutoff"`
	Summary       []string  `json:"summary"`
	Significant   []string  `json:"significant"`
}

// NewRecord captures the persistent parts of a summarizer result.
func NewRecord(key string, res *summarize.Result) Record {
	rec := Record{Key: key, Summary: []string{}, Significant: []string{}}
	if res == nil {
		return rec
	}
	rec.SentenceCount = len(res.Sentences)
	rec.ScoredCount = res.Threshold.Scored
	rec.Cutoff = res.Threshold.Cutoff
	rec.Summary = append(rec.Summary, res.Summary...)
	for _, w := range res.Significant {
		rec.Significant = append(rec.Significant, w.Word)
	}
	return rec
}

// ShortID returns the first eight characters of the ID for display.
func (r Record) ShortID() string {
	if len(r.ID) > 8 {
		return r.ID[:8]
	}
	return r.ID
}

func scanRecord(scanner interface{ Scan(dest ...any) error }) (*Record, error) {
	var (
		rec         Record
		createdRaw  string
		summaryRaw  sql.NullString
		significant sql.NullString
	)
	if err := scanner.Scan(
		&rec.ID,
		&rec.Key,
		&rec.Origin,
		&rec.Title,
		&createdRaw,
		&rec.SentenceCount,
		&rec.ScoredCount,
		&rec.Cutoff,
		&summaryRaw,
		&significant,
	); err != nil {
		return nil, err
	}

	created, err := time.Parse(timeLayout, createdRaw)
	if err != nil {
		return nil, fmt.Errorf("parse created_at for %s: %w", rec.ID, err)
	}
	rec.CreatedAt = created
	if rec.Summary, err = decodeStrings(summaryRaw); err != nil {
		return nil, fmt.Errorf("decode summary for %s: %w", rec.ID, err)
	}
	if rec.Significant, err = decodeStrings(significant); err != nil {
		return nil, fmt.Errorf("decode significant words for %s: %w", rec.ID, err)
	}
	return &rec, nil
}

func decodeStrings(raw sql.NullString) ([]string, error) {
	out := []string{}
	if !raw.Valid || raw.String == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(raw.String), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func encodeStrings(values []string) (string, error) {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
