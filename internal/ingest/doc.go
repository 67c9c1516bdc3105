// Package ingest converts raw source exports into numbered original-glyph
// transcripts.
//
// Each raw record looks like "K<vol>V<vol>P<page><col> <line>L;text". The
// payload is mapped to standard code points, stripped of markup and latin
// noise, and checked against the allowed character ranges. Font number
// selectors 3 and 4 are folded into variant tiers 1 and 2, and 5-7 are
// dropped. A document with any malformed record is withheld as a whole.
package ingest
