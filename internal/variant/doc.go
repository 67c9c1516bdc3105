// Package variant holds the static orthographic tables used across the
// pipeline and the resolver that rewrites variant-marked text into standard
// characters.
//
// Tables are loaded once by LoadAssets and never mutated afterwards, so a
// single Assets value can be shared by every worker. The only mutable piece
// is Tally, which counts selector occurrences that had no table entry and is
// guarded for concurrent use.
package variant
