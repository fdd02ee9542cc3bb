package api

import "salience/internal/summarize"

// dateTimeFormat is used for RFC3339 timestamps in API payloads.
const dateTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// SummarizeRequest is the body of POST /api/summarize and /api/explain.
// Zero SignificantWords or ClusterGap keeps the configured value.
type SummarizeRequest struct {
	Text             string `json:"text"`
	Title            string `json:"title,omitempty"`
	Origin           string `json:"origin,omitempty"`
	SignificantWords int    `json:"significant_words,omitempty"`
	ClusterGap       int    `json:"cluster_gap,omitempty"`
	Refresh          bool   `json:"refresh,omitempty"`
}

// SummaryResponse describes one summary in a transport-friendly format.
type SummaryResponse struct {
	ID        string   `json:"id,omitempty"`
	Title     string   `json:"title,omitempty"`
	Summary   []string `json:"summary"`
	Sentences int      `json:"sentences"`
	Scored    int      `json:"scored"`
	Cutoff    float64  `json:"cutoff"`
	Cached    bool     `json:"cached"`
}

// SentenceDetail reports how one sentence scored.
type SentenceDetail struct {
	Index    int     `json:"index"`
	Text     string  `json:"text"`
	Score    float64 `json:"score"`
	Scored   bool    `json:"scored"`
	Selected bool    `json:"selected"`
}

// ExplainResponse extends a summary with the scoring detail behind it.
type ExplainResponse struct {
	ID          string                    `json:"id,omitempty"`
	Title       string                    `json:"title,omitempty"`
	Summary     []string                  `json:"summary"`
	Significant []summarize.WordFrequency `json:"significant"`
	Sentences   []SentenceDetail          `json:"sentences"`
	Scored      int                       `json:"scored"`
	Mean        float64                   `json:"mean"`
	StdDev      float64                   `json:"stddev"`
	Cutoff      float64                   `json:"cutoff"`
}

// DigestItem describes a stored digest.
type DigestItem struct {
	ID          string   `json:"id"`
	Key         string   `json:"key"`
	Title       string   `json:"title,omitempty"`
	Origin      string   `json:"origin,omitempty"`
	CreatedAt   string   `json:"created_at"`
	Sentences   int      `json:"sentences"`
	Scored      int      `json:"scored"`
	Cutoff      float64  `json:"cutoff"`
	Summary     []string `json:"summary"`
	Significant []string `json:"significant"`
}

// DigestListResponse wraps digest listings.
type DigestListResponse struct {
	Items []DigestItem `json:"items"`
	Total int          `json:"total"`
}

// DigestResponse wraps a single digest.
type DigestResponse struct {
	Item DigestItem `json:"item"`
}

// ClearResponse reports how many digests were removed.
type ClearResponse struct {
	Removed int64 `json:"removed"`
}

// HealthResponse reports server readiness.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Cache   bool   `json:"cache"`
	Digests int    `json:"digests"`
}
