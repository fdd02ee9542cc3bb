// Package summarize extracts the most salient sentences of a document.
//
// The pipeline runs in fixed stages, each a pure function over typed input:
//
//	split sentences -> tokenize + filter -> whole-document frequencies ->
//	top-N significant words -> per-sentence clusters -> density score ->
//	mean + 0.5·stddev cutoff -> selected sentences in document order
//
// A sentence's score is the best cluster density nSig²/span among runs of
// significant-word positions whose consecutive gaps stay below the cluster
// gap. Sentences without any significant word carry no score and take no part
// in the statistics. The cutoff uses the sample standard deviation; with fewer
// than two scored sentences the deviation is zero, so a lone scored sentence
// never clears its own mean and the summary is empty.
//
// Equal word counts are ranked by first appearance in the document.
package summarize
