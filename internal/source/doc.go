// Package source loads document text for summarization from files, standard
// input, or http(s) URLs.
//
// HTML input is reduced to its main article text with go-readability before
// it reaches the tokenizer; plain text passes through untouched. Every source
// is capped at the configured byte limit.
package source
