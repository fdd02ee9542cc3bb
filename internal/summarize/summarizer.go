package summarize

import (
	"fmt"
	"log/slog"
	"strings"

	"salience/internal/logging"
	"salience/internal/textutil"
)

// Summarizer runs the extraction pipeline. It holds no per-document state and
// is safe for concurrent use.
type Summarizer struct {
	opts   Options
	logger *slog.Logger
}

// Result is the outcome of summarizing one document.
type Result struct {
	Sentences   []string        `json:"sentences"`
	Significant []WordFrequency `json:"significant"`
	Scores      []SentenceScore `json:"scores"`
	Threshold   Threshold       `json:"threshold"`
	Selected    []int           `json:"selected"`
	Summary     []string        `json:"summary"`
}

// Text joins the summary sentences with newlines.
func (r *Result) Text() string {
	if r == nil {
		return ""
	}
	return strings.Join(r.Summary, "\n")
}

// New validates opts and constructs a Summarizer. A nil logger discards output.
func New(opts Options, logger *slog.Logger) (*Summarizer, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.Tokenizer == nil {
		tok, err := textutil.NewPunktTokenizer()
		if err != nil {
			return nil, err
		}
		opts.Tokenizer = tok
	}
	return &Summarizer{
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "summarizer"),
	}, nil
}

// Options returns the options the summarizer was built with.
func (s *Summarizer) Options() Options {
	return s.opts
}

// Summarize selects the salient sentences of text. Tokenizer failures are
// returned wrapped; empty input yields an empty result.
func (s *Summarizer) Summarize(text string) (*Result, error) {
	tok := s.opts.Tokenizer
	sentences, err := tok.SplitSentences(text)
	if err != nil {
		return nil, fmt.Errorf("tokenize document: %w", err)
	}

	var filtered []string
	for _, sentence := range sentences {
		filtered = append(filtered, s.opts.StopWords.Filter(tok.TokenizeWords(sentence))...)
	}
	significant := SelectTopN(ComputeFrequencies(filtered), s.opts.SignificantWords)

	scores := make([]SentenceScore, len(sentences))
	for i, sentence := range sentences {
		tokens := tok.TokenizeWords(textutil.Lower(sentence))
		scores[i] = ScoreSentence(i, tokens, significant, s.opts.ClusterGap)
	}

	threshold, err := ComputeThreshold(scores)
	if err != nil {
		return nil, fmt.Errorf("score threshold: %w", err)
	}
	selected := Select(scores, threshold)

	summary := make([]string, 0, len(selected))
	for _, idx := range selected {
		summary = append(summary, sentences[idx])
	}

	s.logger.Debug("document summarized",
		logging.Int("sentences", len(sentences)),
		logging.Int("significant_words", len(significant)),
		logging.Int("scored", threshold.Scored),
		logging.Int("selected", len(selected)),
		logging.Float64("cutoff", threshold.Cutoff),
	)

	return &Result{
		Sentences:   sentences,
		Significant: significant,
		Scores:      scores,
		Threshold:   threshold,
		Selected:    selected,
		Summary:     summary,
	}, nil
}

// Text summarizes text with DefaultOptions and returns the newline-joined
// summary.
func Text(text string) (string, error) {
	s, err := New(DefaultOptions(), nil)
	if err != nil {
		return "", err
	}
	res, err := s.Summarize(text)
	if err != nil {
		return "", err
	}
	return res.Text(), nil
}
