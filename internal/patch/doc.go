// Package patch transplants inline annotation markers from a noisy
// marker-bearing transcript into a clean reconciled transcript.
//
// Both documents are flattened into one string of "NN:text" records and
// compared with an LCS-based diff (go-difflib with the junk heuristic turned
// off). Markers are copied only where the diff inserts exactly one marker
// rune into the clean text; every other difference is treated as noise and
// the clean text wins. The result is rejected unless it equals the clean
// input once markers are stripped.
package patch
