package api

import (
	"salience/internal/digest"
)

// FromRecord converts a stored digest into its DTO.
func FromRecord(rec *digest.Record) DigestItem {
	if rec == nil {
		return DigestItem{}
	}
	item := DigestItem{
		ID:          rec.ID,
		Key:         rec.Key,
		Title:       rec.Title,
		Origin:      rec.Origin,
		Sentences:   rec.SentenceCount,
		Scored:      rec.ScoredCount,
		Cutoff:      rec.Cutoff,
		Summary:     nonNil(rec.Summary),
		Significant: nonNil(rec.Significant),
	}
	if !rec.CreatedAt.IsZero() {
		item.CreatedAt = rec.CreatedAt.UTC().Format(dateTimeFormat)
	}
	return item
}

// FromRecords converts a digest listing.
func FromRecords(recs []*digest.Record) []DigestItem {
	out := make([]DigestItem, 0, len(recs))
	for _, rec := range recs {
		if rec == nil {
			continue
		}
		out = append(out, FromRecord(rec))
	}
	return out
}

// SummaryResponseFrom converts a service outcome into its DTO.
func SummaryResponseFrom(s *Summary) SummaryResponse {
	if s == nil || s.Record == nil {
		return SummaryResponse{Summary: []string{}}
	}
	return SummaryResponse{
		ID:        s.Record.ID,
		Title:     s.Record.Title,
		Summary:   nonNil(s.Record.Summary),
		Sentences: s.Record.SentenceCount,
		Scored:    s.Record.ScoredCount,
		Cutoff:    s.Record.Cutoff,
		Cached:    s.Cached,
	}
}

// ExplainResponseFrom converts a freshly computed outcome into its detailed
// DTO. Outcomes served from the cache carry no scores and produce an empty
// sentence list.
func ExplainResponseFrom(s *Summary) ExplainResponse {
	resp := ExplainResponse{Summary: []string{}, Sentences: []SentenceDetail{}}
	if s == nil {
		return resp
	}
	if s.Record != nil {
		resp.ID = s.Record.ID
		resp.Title = s.Record.Title
		resp.Summary = nonNil(s.Record.Summary)
		resp.Scored = s.Record.ScoredCount
		resp.Cutoff = s.Record.Cutoff
	}
	res := s.Result
	if res == nil {
		return resp
	}
	resp.Significant = res.Significant
	resp.Mean = res.Threshold.Mean
	resp.StdDev = res.Threshold.StdDev
	resp.Cutoff = res.Threshold.Cutoff
	resp.Scored = res.Threshold.Scored

	selected := make(map[int]struct{}, len(res.Selected))
	for _, idx := range res.Selected {
		selected[idx] = struct{}{}
	}
	for i, sentence := range res.Sentences {
		detail := SentenceDetail{Index: i, Text: sentence}
		if i < len(res.Scores) {
			detail.Score = res.Scores[i].Score
			detail.Scored = res.Scores[i].Scored
		}
		_, detail.Selected = selected[i]
		resp.Sentences = append(resp.Sentences, detail)
	}
	return resp
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
