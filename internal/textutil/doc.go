// Package textutil provides text normalization and similarity scoring for
// course title comparison.
//
// Titles are normalized by stripping non-alphanumeric characters, collapsing
// whitespace, and lowercasing. Similarity combines a common-substring
// percentage with an edit-distance check so that both near-identical long
// titles and short titles with small typos are recognized.
package textutil
