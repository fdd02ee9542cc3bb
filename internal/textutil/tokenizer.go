package textutil

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"
)

// ErrMalformedInput reports text the tokenizer cannot process.
var ErrMalformedInput = errors.New("malformed input")

// Tokenizer splits documents into sentences and sentences into words.
// Implementations must be deterministic: identical input yields identical output.
type Tokenizer interface {
	SplitSentences(text string) ([]string, error)
	TokenizeWords(sentence string) []string
}

// PunktTokenizer is the default Tokenizer. Sentence boundaries come from the
// English Punkt model; words are split by TokenizeWords.
type PunktTokenizer struct {
	sentences *sentences.DefaultSentenceTokenizer
}

// NewPunktTokenizer loads the English Punkt model.
func NewPunktTokenizer() (*PunktTokenizer, error) {
	tok, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("load sentence model: %w", err)
	}
	return &PunktTokenizer{sentences: tok}, nil
}

// SplitSentences returns the document's sentences in order, each trimmed of
// surrounding whitespace. Whitespace-only input yields no sentences.
func (p *PunktTokenizer) SplitSentences(text string) ([]string, error) {
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("split sentences: %w: invalid UTF-8", ErrMalformedInput)
	}
	text = norm.NFC.String(text)
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	raw := p.sentences.Tokenize(text)
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		trimmed := strings.TrimSpace(s.Text)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out, nil
}

// TokenizeWords implements Tokenizer.
func (p *PunktTokenizer) TokenizeWords(sentence string) []string {
	return TokenizeWords(sentence)
}

// Lower lowercases text using Unicode case mapping.
func Lower(text string) string {
	// A Caser carries state and must not be shared between goroutines.
	return cases.Lower(language.Und).String(text)
}
