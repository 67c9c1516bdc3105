// Package transcript models line-numbered transcript documents and the
// folder layout they are stored in.
//
// A document is an ordered sequence of "NN:text" records: a zero-padded,
// 1-based ordinal and a payload of CJK text plus a few catalog and markup
// glyphs. The package owns the record codec (tolerant of BOM-marked UTF-16
// exports and full-width ordinals), the noise cleaner applied before lines are
// compared, and the Store that maps document names onto
// <data>/<folder>/<shard>/<name>.txt.
//
// Malformed records are reported back to the caller rather than failing the
// read; the caller decides whether a document with skipped records is still
// usable.
package transcript
