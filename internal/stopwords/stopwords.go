package stopwords

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"unicode"

	"salience/internal/textutil"
)

//go:embed english.txt
var englishList string

// Set is an immutable collection of lowercased stop words.
type Set struct {
	words map[string]struct{}
}

// New builds a set from the provided words. Words are trimmed and lowercased;
// blanks are ignored.
func New(words ...string) Set {
	s := Set{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		s.add(w)
	}
	return s
}

// Default returns the built-in English stop-word list.
func Default() Set {
	s, err := Parse(strings.NewReader(englishList))
	if err != nil {
		panic(fmt.Sprintf("stopwords: embedded list: %v", err))
	}
	return s
}

// Load reads a stop-word list from path. See Parse for the format.
func Load(path string) (Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return Set{}, fmt.Errorf("open stop words: %w", err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return Set{}, fmt.Errorf("read stop words %s: %w", path, err)
	}
	return s, nil
}

// Parse reads one word per line. Blank lines and lines starting with '#' are
// skipped.
func Parse(r io.Reader) (Set, error) {
	s := Set{words: make(map[string]struct{})}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s.add(line)
	}
	if err := scanner.Err(); err != nil {
		return Set{}, err
	}
	return s, nil
}

// With returns a copy of s extended with words.
func (s Set) With(words ...string) Set {
	out := Set{words: make(map[string]struct{}, len(s.words)+len(words))}
	for w := range s.words {
		out.words[w] = struct{}{}
	}
	for _, w := range words {
		out.add(w)
	}
	return out
}

func (s *Set) add(word string) {
	word = textutil.Lower(strings.TrimSpace(word))
	if word == "" {
		return
	}
	s.words[word] = struct{}{}
}

// Contains reports whether word, lowercased, is a stop word.
func (s Set) Contains(word string) bool {
	_, ok := s.words[textutil.Lower(word)]
	return ok
}

// Len returns the number of stop words.
func (s Set) Len() int {
	return len(s.words)
}

// Words returns the stop words sorted lexically.
func (s Set) Words() []string {
	out := make([]string, 0, len(s.words))
	for w := range s.words {
		out = append(out, w)
	}
	slices.Sort(out)
	return out
}

// Filter lowercases tokens, drops stop words, and strips a single trailing
// period from each remaining token. Tokens left without any letter or digit
// (bare punctuation) are dropped.
func (s Set) Filter(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		lowered := textutil.Lower(tok)
		if _, stop := s.words[lowered]; stop {
			continue
		}
		lowered = strings.TrimSuffix(lowered, ".")
		if !hasWordRune(lowered) {
			continue
		}
		out = append(out, lowered)
	}
	return out
}

func hasWordRune(token string) bool {
	for _, r := range token {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
