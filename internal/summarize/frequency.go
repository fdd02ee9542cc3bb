package summarize

import (
	"cmp"
	"slices"
)

// WordFrequency is a word and the number of times it occurs in a document.
type WordFrequency struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Frequencies is a whole-document word count table. Order records the first
// appearance of every word and drives tie-breaking when ranking.
type Frequencies struct {
	Counts map[string]int
	Order  []string
}

// Len returns the number of distinct words.
func (f Frequencies) Len() int {
	return len(f.Order)
}

// ComputeFrequencies counts filtered tokens in a single pass.
func ComputeFrequencies(tokens []string) Frequencies {
	f := Frequencies{Counts: make(map[string]int)}
	for _, tok := range tokens {
		if _, seen := f.Counts[tok]; !seen {
			f.Order = append(f.Order, tok)
		}
		f.Counts[tok]++
	}
	return f
}

// SelectTopN returns up to n words ordered by count descending. Words with
// equal counts keep their first-appearance order.
func SelectTopN(f Frequencies, n int) []WordFrequency {
	if n <= 0 || f.Len() == 0 {
		return []WordFrequency{}
	}
	ranked := make([]WordFrequency, 0, f.Len())
	for _, w := range f.Order {
		ranked = append(ranked, WordFrequency{Word: w, Count: f.Counts[w]})
	}
	slices.SortStableFunc(ranked, func(a, b WordFrequency) int {
		return cmp.Compare(b.Count, a.Count)
	})
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
