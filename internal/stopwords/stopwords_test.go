package stopwords_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"salience/internal/stopwords"
)

func TestFilter(t *testing.T) {
	set := stopwords.New("the", "a", "is", "over")

	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{
			name:  "drops stop words case-insensitively",
			input: []string{"The", "quick", "brown", "fox", "."},
			want:  []string{"quick", "brown", "fox"},
		},
		{
			name:  "strips single trailing period",
			input: []string{"jumps", "dog.", "etc..", "e.g."},
			want:  []string{"jumps", "dog", "etc.", "e.g"},
		},
		{
			name:  "drops bare punctuation",
			input: []string{",", "(", "fox", "!", "--"},
			want:  []string{"fox"},
		},
		{
			name:  "keeps digits",
			input: []string{"2024", "A"},
			want:  []string{"2024"},
		},
		{
			name:  "empty",
			input: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := set.Filter(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Filter(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFilterIsPure(t *testing.T) {
	set := stopwords.New("the")
	input := []string{"The", "Fox."}
	first := set.Filter(input)
	second := set.Filter(input)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("Filter not deterministic: %q vs %q", first, second)
	}
	if input[0] != "The" || input[1] != "Fox." {
		t.Fatalf("Filter mutated its input: %q", input)
	}
}

func TestDefaultContainsCommonWords(t *testing.T) {
	set := stopwords.Default()
	for _, w := range []string{"the", "a", "is", "over", "and", "The"} {
		if !set.Contains(w) {
			t.Errorf("expected default list to contain %q", w)
		}
	}
	if set.Contains("fox") {
		t.Error("fox should not be a stop word")
	}
	if set.Len() < 100 {
		t.Fatalf("default list unexpectedly small: %d", set.Len())
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stop.txt")
	content := "# custom list\nAlpha\n\n  beta  \n#gamma\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write list: %v", err)
	}

	set, err := stopwords.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := set.Words(); !reflect.DeepEqual(got, []string{"alpha", "beta"}) {
		t.Fatalf("Words() = %q", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := stopwords.Load(filepath.Join(t.TempDir(), "missing.txt"))
	if err == nil || !strings.Contains(err.Error(), "open stop words") {
		t.Fatalf("expected open error, got %v", err)
	}
}

func TestWithDoesNotMutate(t *testing.T) {
	base := stopwords.New("the")
	extended := base.With("Fox", " ")
	if base.Contains("fox") {
		t.Fatal("With mutated the receiver")
	}
	if !extended.Contains("fox") || !extended.Contains("the") {
		t.Fatalf("extended set missing words: %q", extended.Words())
	}
	if extended.Len() != 2 {
		t.Fatalf("expected 2 words, got %d", extended.Len())
	}
}
