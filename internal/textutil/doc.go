// Package textutil provides the tokenization collaborator used by the
// summarizer: sentence boundary detection, word splitting, and lowercasing.
//
// The primary use cases are:
//   - Splitting a document into ordered sentences with their surface form intact
//   - Splitting one sentence into ordered word tokens, Treebank style
//   - Lowercasing text with Unicode-aware case mapping
//
// Sentence boundaries come from a Punkt model trained on English text. Input is
// NFC-normalized before splitting so composed and decomposed forms of the same
// word produce identical tokens. Word splitting peels punctuation off word
// edges but only separates a period from the final word of a sentence, so
// abbreviations such as "e.g." survive as one token.
package textutil
