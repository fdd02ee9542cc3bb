package summarize

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// deviationWeight scales the standard deviation added to the mean cutoff.
const deviationWeight = 0.5

// Threshold holds the statistics of the scored sentences of one document.
type Threshold struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	Cutoff float64 `json:"cutoff"`
	Scored int     `json:"scored"`
}

// ComputeThreshold derives mean, sample standard deviation, and cutoff from
// scored sentences only. Fewer than two scored sentences give a zero deviation.
func ComputeThreshold(scores []SentenceScore) (Threshold, error) {
	data := make(stats.Float64Data, 0, len(scores))
	for _, s := range scores {
		if s.Scored {
			data = append(data, s.Score)
		}
	}
	t := Threshold{Scored: len(data)}
	if len(data) == 0 {
		return t, nil
	}

	mean, err := stats.Mean(data)
	if err != nil {
		return Threshold{}, fmt.Errorf("mean: %w", err)
	}
	t.Mean = mean
	if len(data) > 1 {
		sd, err := stats.StandardDeviationSample(data)
		if err != nil {
			return Threshold{}, fmt.Errorf("standard deviation: %w", err)
		}
		t.StdDev = sd
	}
	t.Cutoff = t.Mean + deviationWeight*t.StdDev
	return t, nil
}

// Selects reports whether a sentence score clears the cutoff.
func (t Threshold) Selects(s SentenceScore) bool {
	return s.Scored && t.Scored > 0 && s.Score > t.Cutoff
}

// Select returns the indices of sentences that clear the cutoff, in the order
// the scores were given.
func Select(scores []SentenceScore, t Threshold) []int {
	selected := make([]int, 0, len(scores))
	for _, s := range scores {
		if t.Selects(s) {
			selected = append(selected, s.Index)
		}
	}
	return selected
}
