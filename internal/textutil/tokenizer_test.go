package textutil

import (
	"errors"
	"reflect"
	"testing"
)

func TestTokenizeWords(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "final period split",
			input: "The quick brown fox.",
			want:  []string{"The", "quick", "brown", "fox", "."},
		},
		{
			name:  "inner abbreviation kept",
			input: "Use tools, e.g. grep, daily.",
			want:  []string{"Use", "tools", ",", "e.g.", "grep", ",", "daily", "."},
		},
		{
			name:  "brackets and quotes",
			input: `He said ("quickly") it works!`,
			want:  []string{"He", "said", "(", `"`, "quickly", `"`, ")", "it", "works", "!"},
		},
		{
			name:  "closing punctuation after final period",
			input: "It ended (finally.)",
			want:  []string{"It", "ended", "(", "finally", ".", ")"},
		},
		{
			name:  "apostrophes inside words",
			input: "don't stop",
			want:  []string{"don't", "stop"},
		},
		{
			name:  "empty",
			input: "   ",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TokenizeWords(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("TokenizeWords(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenizeWordsIdempotent(t *testing.T) {
	input := "A fox is quick, and (mostly) clever."
	first := TokenizeWords(input)
	second := TokenizeWords(input)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("TokenizeWords not deterministic: %q vs %q", first, second)
	}
}

func TestPunktSplitSentences(t *testing.T) {
	tok, err := NewPunktTokenizer()
	if err != nil {
		t.Fatalf("NewPunktTokenizer: %v", err)
	}

	got, err := tok.SplitSentences("The quick brown fox. The quick brown fox jumps over the lazy dog. A fox is quick.")
	if err != nil {
		t.Fatalf("SplitSentences: %v", err)
	}
	want := []string{
		"The quick brown fox.",
		"The quick brown fox jumps over the lazy dog.",
		"A fox is quick.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitSentences = %q, want %q", got, want)
	}
}

func TestPunktSplitSentencesWhitespace(t *testing.T) {
	tok, err := NewPunktTokenizer()
	if err != nil {
		t.Fatalf("NewPunktTokenizer: %v", err)
	}
	for _, input := range []string{"", "   ", "\n\t\n"} {
		got, err := tok.SplitSentences(input)
		if err != nil {
			t.Fatalf("SplitSentences(%q): %v", input, err)
		}
		if len(got) != 0 {
			t.Fatalf("SplitSentences(%q) = %q, want none", input, got)
		}
	}
}

func TestPunktSplitSentencesMalformed(t *testing.T) {
	tok, err := NewPunktTokenizer()
	if err != nil {
		t.Fatalf("NewPunktTokenizer: %v", err)
	}
	_, err = tok.SplitSentences("valid start \xff\xfe broken")
	if !errors.Is(err, ErrMalformedInput) {
		t.Fatalf("expected ErrMalformedInput, got %v", err)
	}
}

func TestPunktSplitSentencesNormalizesNFC(t *testing.T) {
	tok, err := NewPunktTokenizer()
	if err != nil {
		t.Fatalf("NewPunktTokenizer: %v", err)
	}
	decomposed, err := tok.SplitSentences("Cafe\u0301 opens early.")
	if err != nil {
		t.Fatalf("SplitSentences: %v", err)
	}
	if len(decomposed) != 1 || decomposed[0] != "Caf\u00e9 opens early." {
		t.Fatalf("expected composed form, got %q", decomposed)
	}
}

func TestLower(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Quick Brown FOX", "quick brown fox"},
		{"ÉCOLE", "école"},
		{"already lower", "already lower"},
	}
	for _, tt := range tests {
		if got := Lower(tt.input); got != tt.want {
			t.Errorf("Lower(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
