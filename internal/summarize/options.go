package summarize

import (
	"errors"
	"fmt"

	"salience/internal/config"
	"salience/internal/stopwords"
	"salience/internal/textutil"
)

const (
	// DefaultSignificantWords caps the significant-word set.
	DefaultSignificantWords = 100
	// DefaultClusterGap is the position gap that starts a new cluster.
	DefaultClusterGap = 5
)

// ErrInvalidOptions reports summarizer options that cannot be used.
var ErrInvalidOptions = errors.New("invalid summarizer options")

// Options configures a Summarizer.
//
// A zero StopWords set filters nothing; DefaultOptions installs the built-in
// English list. A nil Tokenizer is replaced by the Punkt tokenizer.
type Options struct {
	SignificantWords int
	ClusterGap       int
	StopWords        stopwords.Set
	Tokenizer        textutil.Tokenizer
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		SignificantWords: DefaultSignificantWords,
		ClusterGap:       DefaultClusterGap,
		StopWords:        stopwords.Default(),
	}
}

// OptionsFromConfig builds options from the [summarizer] config section. A
// configured stop-word file replaces the built-in list; extra words extend
// whichever list is active.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	opts := DefaultOptions()
	if cfg == nil {
		return opts, nil
	}
	opts.SignificantWords = cfg.Summarizer.SignificantWords
	opts.ClusterGap = cfg.Summarizer.ClusterGap
	if cfg.Summarizer.StopWordsFile != "" {
		set, err := stopwords.Load(cfg.Summarizer.StopWordsFile)
		if err != nil {
			return Options{}, fmt.Errorf("summarizer.stop_words_file: %w", err)
		}
		opts.StopWords = set
	}
	if len(cfg.Summarizer.ExtraStopWords) > 0 {
		opts.StopWords = opts.StopWords.With(cfg.Summarizer.ExtraStopWords...)
	}
	return opts, nil
}

func (o Options) validate() error {
	if o.SignificantWords < 1 {
		return fmt.Errorf("%w: significant words must be at least 1, got %d", ErrInvalidOptions, o.SignificantWords)
	}
	if o.ClusterGap < 1 {
		return fmt.Errorf("%w: cluster gap must be at least 1, got %d", ErrInvalidOptions, o.ClusterGap)
	}
	return nil
}
