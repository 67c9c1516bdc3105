// Package align reconciles a page-segmented candidate transcript against a
// reference transcript whose line boundaries are authoritative.
//
// Align walks the candidate lines once with a second cursor on the reference
// and at each step records a tagged Decision describing the repair it
// applied: a 1:1 match, a merge or split that moves a line boundary, a
// reference line re-inserted where the candidate dropped it, or a fallback
// that keeps the candidate line and records an Ambiguity. Before the loop,
// head repair recovers leading reference lines missing from the candidate;
// after it, tail repair recovers up to two trailing lines.
//
// The result is accepted only when it has exactly as many lines as the
// reference. Otherwise Align returns an *UnresolvedError together with the
// partial result so the caller can display both sides.
//
// Aligner is stateless between calls and safe for concurrent use.
package align
