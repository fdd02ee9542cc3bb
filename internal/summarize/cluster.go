package summarize

import "slices"

// Cluster is a run of token positions in one sentence where each consecutive
// pair is closer than the cluster gap.
type Cluster []int

// Span is the number of tokens covered by the cluster, first to last inclusive.
func (c Cluster) Span() int {
	if len(c) == 0 {
		return 0
	}
	return c[len(c)-1] - c[0] + 1
}

// SentenceScore is the density score of one sentence. Scored is false when the
// sentence holds no significant word; Score is then meaningless.
type SentenceScore struct {
	Index  int     `json:"index"`
	Score  float64 `json:"score"`
	Scored bool    `json:"scored"`
}

// Positions returns the sorted first-occurrence index in tokens of every
// significant word present.
func Positions(tokens []string, significant []WordFrequency) []int {
	first := make(map[string]int, len(tokens))
	for i, tok := range tokens {
		if _, ok := first[tok]; !ok {
			first[tok] = i
		}
	}
	positions := make([]int, 0, len(significant))
	for _, w := range significant {
		if idx, ok := first[w.Word]; ok {
			positions = append(positions, idx)
		}
	}
	slices.Sort(positions)
	return positions
}

// Clusters partitions sorted positions. A new cluster starts whenever the gap
// to the previous position is at least gap.
func Clusters(positions []int, gap int) []Cluster {
	if len(positions) == 0 {
		return nil
	}
	clusters := make([]Cluster, 0, 1)
	current := Cluster{positions[0]}
	for _, pos := range positions[1:] {
		if pos-current[len(current)-1] < gap {
			current = append(current, pos)
			continue
		}
		clusters = append(clusters, current)
		current = Cluster{pos}
	}
	return append(clusters, current)
}

// ClusterScore is nSig² / span.
func ClusterScore(c Cluster) float64 {
	span := c.Span()
	if span == 0 {
		return 0
	}
	n := float64(len(c))
	return n * n / float64(span)
}

// ScoreSentence scores the lowercased tokens of sentence index. The score is
// the best ClusterScore over the sentence's clusters.
func ScoreSentence(index int, tokens []string, significant []WordFrequency, gap int) SentenceScore {
	clusters := Clusters(Positions(tokens, significant), gap)
	if len(clusters) == 0 {
		return SentenceScore{Index: index}
	}
	best := 0.0
	for _, c := range clusters {
		best = max(best, ClusterScore(c))
	}
	return SentenceScore{Index: index, Score: best, Scored: true}
}
