// Package stopwords holds stop-word sets and the token filter that runs before
// frequency analysis.
//
// The built-in English list is embedded; callers may replace it with a file
// (one word per line) or extend it with extra words. Filtering is pure: the
// same tokens always produce the same output.
package stopwords
