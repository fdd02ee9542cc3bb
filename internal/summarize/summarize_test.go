package summarize

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"salience/internal/stopwords"
	"salience/internal/textutil"
)

const scenarioText = "The quick brown fox. The quick brown fox jumps over the lazy dog. A fox is quick."

// pipeTokenizer splits sentences on '|' and words on whitespace.
type pipeTokenizer struct {
	err error
}

func (p pipeTokenizer) SplitSentences(text string) ([]string, error) {
	if p.err != nil {
		return nil, p.err
	}
	var out []string
	for _, part := range strings.Split(text, "|") {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out, nil
}

func (pipeTokenizer) TokenizeWords(sentence string) []string {
	return strings.Fields(sentence)
}

func scenarioOptions() Options {
	return Options{
		SignificantWords: 10,
		ClusterGap:       5,
		StopWords:        stopwords.New("the", "a", "is", "over"),
	}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSummarizeScenario(t *testing.T) {
	s, err := New(scenarioOptions(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := s.Summarize(scenarioText)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	if len(res.Sentences) != 3 {
		t.Fatalf("expected 3 sentences, got %q", res.Sentences)
	}

	wantRank := []WordFrequency{
		{"quick", 3}, {"fox", 3}, {"brown", 2}, {"jumps", 1}, {"lazy", 1}, {"dog", 1},
	}
	if !reflect.DeepEqual(res.Significant, wantRank) {
		t.Fatalf("significant words = %v, want %v", res.Significant, wantRank)
	}

	wantScores := []float64{3.0, 4.5, 4.0 / 3.0}
	for i, want := range wantScores {
		got := res.Scores[i]
		if !got.Scored || !approxEqual(got.Score, want) {
			t.Errorf("sentence %d score = %+v, want %v", i, got, want)
		}
	}
	if !(res.Scores[1].Score > res.Scores[0].Score && res.Scores[1].Score > res.Scores[2].Score) {
		t.Fatalf("sentence 2 must outscore the others: %+v", res.Scores)
	}

	mean := 53.0 / 18.0
	stddev := math.Sqrt(813.0 / 324.0)
	if !approxEqual(res.Threshold.Mean, mean) {
		t.Errorf("mean = %v, want %v", res.Threshold.Mean, mean)
	}
	if !approxEqual(res.Threshold.StdDev, stddev) {
		t.Errorf("stddev = %v, want %v", res.Threshold.StdDev, stddev)
	}
	if !approxEqual(res.Threshold.Cutoff, mean+0.5*stddev) {
		t.Errorf("cutoff = %v, want %v", res.Threshold.Cutoff, mean+0.5*stddev)
	}

	if !reflect.DeepEqual(res.Selected, []int{1}) {
		t.Fatalf("selected = %v, want [1]", res.Selected)
	}
	want := "The quick brown fox jumps over the lazy dog."
	if res.Text() != want {
		t.Fatalf("Text() = %q, want %q", res.Text(), want)
	}
}

func TestSummarizeDeterministic(t *testing.T) {
	s, err := New(DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	text := strings.Repeat(scenarioText+" Dogs are lazy but the fox is quick and brown. ", 3)
	first, err := s.Summarize(text)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	second, err := s.Summarize(text)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatal("repeated Summarize calls differ")
	}
}

func TestSummarizePreservesOrderAndExcludesUnscored(t *testing.T) {
	opts := Options{
		SignificantWords: 3,
		ClusterGap:       5,
		StopWords:        stopwords.New("the", "and", "x"),
		Tokenizer:        pipeTokenizer{},
	}
	s, err := New(opts, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	text := "alpha beta gamma alpha beta gamma | the and the | alpha beta gamma | delta | alpha | beta x x x x x gamma x x x x x alpha"
	res, err := s.Summarize(text)
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}

	for i, score := range res.Scores {
		if score.Index != i {
			t.Fatalf("score %d carries index %d", i, score.Index)
		}
	}
	if res.Scores[1].Scored || res.Scores[3].Scored {
		t.Fatalf("sentences without significant words must be unscored: %+v", res.Scores)
	}
	if !reflect.DeepEqual(res.Selected, []int{0, 2}) {
		t.Fatalf("selected = %v, want [0 2]", res.Selected)
	}
	for _, idx := range res.Selected {
		if !res.Scores[idx].Scored {
			t.Fatalf("unscored sentence %d selected", idx)
		}
	}
	for i := 1; i < len(res.Selected); i++ {
		if res.Selected[i] <= res.Selected[i-1] {
			t.Fatalf("selection out of document order: %v", res.Selected)
		}
	}
	for i, idx := range res.Selected {
		if res.Summary[i] != res.Sentences[idx] {
			t.Fatalf("summary[%d] = %q, want sentence %d %q", i, res.Summary[i], idx, res.Sentences[idx])
		}
	}
}

func TestSummarizeEmptyInput(t *testing.T) {
	s, err := New(DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, input := range []string{"", "   \n\t"} {
		res, err := s.Summarize(input)
		if err != nil {
			t.Fatalf("Summarize(%q): %v", input, err)
		}
		if len(res.Sentences) != 0 || len(res.Summary) != 0 || res.Threshold.Scored != 0 {
			t.Fatalf("expected empty result for %q, got %+v", input, res)
		}
		if res.Text() != "" {
			t.Fatalf("expected empty text, got %q", res.Text())
		}
	}
}

func TestSummarizeSingleScoredSentenceYieldsEmptySummary(t *testing.T) {
	opts := Options{
		SignificantWords: 10,
		ClusterGap:       5,
		StopWords:        stopwords.New("the"),
		Tokenizer:        pipeTokenizer{},
	}
	s, err := New(opts, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := s.Summarize("zebras graze quietly | the the the | the")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if res.Threshold.Scored != 1 {
		t.Fatalf("expected exactly one scored sentence, got %d", res.Threshold.Scored)
	}
	if res.Threshold.StdDev != 0 {
		t.Fatalf("expected zero stddev, got %v", res.Threshold.StdDev)
	}
	if len(res.Summary) != 0 {
		t.Fatalf("expected empty summary, got %q", res.Summary)
	}
}

func TestSummarizePropagatesTokenizerFailure(t *testing.T) {
	boom := errors.New("boom")
	opts := DefaultOptions()
	opts.Tokenizer = pipeTokenizer{err: boom}
	s, err := New(opts, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := s.Summarize("anything"); !errors.Is(err, boom) {
		t.Fatalf("expected tokenizer error, got %v", err)
	}
}

func TestSummarizeMalformedUTF8(t *testing.T) {
	s, err := New(DefaultOptions(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := s.Summarize("bad \xff bytes."); !errors.Is(err, textutil.ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"zero significant words", Options{SignificantWords: 0, ClusterGap: 5}},
		{"negative cluster gap", Options{SignificantWords: 10, ClusterGap: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opts, nil); !errors.Is(err, ErrInvalidOptions) {
				t.Fatalf("expected ErrInvalidOptions, got %v", err)
			}
		})
	}
}

func TestText(t *testing.T) {
	got, err := Text(scenarioText)
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	if got != "The quick brown fox jumps over the lazy dog." {
		t.Fatalf("Text() = %q", got)
	}
}
