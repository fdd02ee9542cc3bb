package textutil

import (
	"strings"
	"unicode/utf8"
)

const (
	openingPunct = "([{\"'`“‘«"
	closingPunct = ",;:!?)]}\"'”’»"
)

// TokenizeWords splits a sentence into word and punctuation tokens.
//
// Opening brackets and quotes are split from the start of a word, closing
// punctuation from its end. A period is split off only from the sentence's
// final word; inner abbreviations keep theirs.
func TokenizeWords(sentence string) []string {
	fields := strings.Fields(sentence)
	tokens := make([]string, 0, len(fields)+len(fields)/4+1)
	for i, field := range fields {
		tokens = appendWordTokens(tokens, field, i == len(fields)-1)
	}
	return tokens
}

func appendWordTokens(dst []string, field string, final bool) []string {
	for field != "" {
		r, size := utf8.DecodeRuneInString(field)
		if !strings.ContainsRune(openingPunct, r) {
			break
		}
		dst = append(dst, field[:size])
		field = field[size:]
	}

	var trailing []string
	for field != "" {
		r, size := utf8.DecodeLastRuneInString(field)
		if !isTrailingPunct(r, final) {
			break
		}
		trailing = append(trailing, field[len(field)-size:])
		field = field[:len(field)-size]
	}

	if field != "" {
		dst = append(dst, field)
	}
	for i := len(trailing) - 1; i >= 0; i-- {
		dst = append(dst, trailing[i])
	}
	return dst
}

func isTrailingPunct(r rune, final bool) bool {
	if r == '.' {
		return final
	}
	return strings.ContainsRune(closingPunct, r)
}
