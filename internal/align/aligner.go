package align

import (
	"slices"

	"collate/internal/similarity"
	"collate/internal/textutil"
	"collate/internal/transcript"
)

// Catalog reports whether a rune is a catalog-index glyph.
type Catalog interface {
	Contains(r rune) bool
}

// Aligner reconciles candidate lines against reference lines.
type Aligner struct {
	scorer  *similarity.Scorer
	catalog Catalog
	noise   textutil.RuneSet
}

// Option customizes an Aligner.
type Option func(*Aligner)

// WithNoise sets the runes dropped from numbered records before head repair
// compares them.
func WithNoise(noise string) Option {
	return func(a *Aligner) {
		a.noise = textutil.NewRuneSet(noise)
	}
}

// New returns an aligner. A nil scorer compares by identity; a nil catalog
// disables catalog filler repair.
func New(scorer *similarity.Scorer, catalog Catalog, opts ...Option) *Aligner {
	if scorer == nil {
		scorer = similarity.NewScorer(nil)
	}
	a := &Aligner{scorer: scorer, catalog: catalog}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Align reconciles cand against ref. Both sides must already exclude empty
// lines and are numbered from 1. On failure the partial result is returned
// with an *UnresolvedError.
func (a *Aligner) Align(name string, ref, cand []string) (Result, error) {
	var refHead, candHead string
	if len(ref) > 1 {
		refHead = a.record(2, ref[1])
	}
	if len(cand) > 0 {
		candHead = a.record(1, cand[0])
	}
	return a.align(name, ref, cand, refHead, candHead)
}

// AlignDocuments is Align over documents. Head repair sees each line under
// its own ordinal.
func (a *Aligner) AlignDocuments(ref, cand transcript.Document) (Result, error) {
	var refHead, candHead string
	if len(ref.Lines) > 1 {
		refHead = a.record(ref.Lines[1].No, ref.Lines[1].Text)
	}
	if len(cand.Lines) > 0 {
		candHead = a.record(cand.Lines[0].No, cand.Lines[0].Text)
	}
	return a.align(ref.Name, ref.Texts(), cand.Texts(), refHead, candHead)
}

// record renders a line as stored, "NN:payload", less noise runes. Noise
// digits in the ordinal are dropped too.
func (a *Aligner) record(no int, text string) string {
	return textutil.Strip(transcript.FormatRecord(no, text), a.noise)
}

func (a *Aligner) align(name string, ref, cand []string, refHead, candHead string) (Result, error) {
	if len(ref) == len(cand) && charCount(ref) == charCount(cand) {
		return Result{Lines: slices.Clone(ref), FastPath: true}, nil
	}

	st := &state{
		aligner: a,
		ref:     ref,
		cand:    slices.Clone(cand),
	}
	st.repairHead(refHead, candHead)
	for n := 0; n < len(st.cand); n++ {
		if st.cand[n] == "" {
			continue
		}
		st.step(n)
	}
	st.repairTail()

	res := Result{Lines: st.out, Steps: st.steps, Ambiguities: st.ambiguities}
	if len(st.out) != len(ref) {
		return res, &UnresolvedError{Name: name, Reference: slices.Clone(ref), Output: slices.Clone(st.out)}
	}
	return res, nil
}

// state holds the cursors of one alignment. The candidate slice doubles as
// the pending-remainder register: carry overwrites the successor of the
// current line, or appends when the current line is the last one.
type state struct {
	aligner     *Aligner
	ref         []string
	cand        []string
	r           int
	out         []string
	steps       []Step
	ambiguities []Ambiguity
}

func (s *state) similar(t1, t2 string, mode similarity.Mode, gap int) bool {
	return s.aligner.scorer.IsSimilar(t1, t2, mode, gap)
}

func (s *state) emit(kind Decision, cand, gap, advance int, lines ...string) {
	s.steps = append(s.steps, Step{Kind: kind, Ref: s.r, Cand: cand, Gap: gap, Emitted: lines})
	s.out = append(s.out, lines...)
	s.r += advance
}

func (s *state) carry(n int, remainder string) {
	if n+1 < len(s.cand) {
		s.cand[n+1] = remainder
		return
	}
	s.cand = append(s.cand, remainder)
}

// repairHead restores reference lines the candidate dropped before its first
// line. refHead and candHead are R[1] and C[0] as numbered records.
func (s *state) repairHead(refHead, candHead string) {
	if len(s.cand) == 0 || len(s.ref) == 0 {
		return
	}
	c0 := s.cand[0]
	r0, r1, r2 := at(s.ref, 0), at(s.ref, 1), at(s.ref, 2)
	if s.similar(c0, r0, similarity.Loose, similarity.DefaultGap) {
		return
	}
	// A candidate that merged the head lines is split by the main loop.
	if r1 != "" && s.similar(c0, r0+r1, similarity.Strict, 1) {
		return
	}
	switch {
	case s.similar(c0, r1, similarity.Loose, similarity.DefaultGap):
		s.emit(HeadInsert, -1, similarity.DefaultGap, 1, r0)
	case s.similar(candHead, refHead, similarity.Loose, similarity.DefaultGap):
		s.emit(HeadInsert, -1, similarity.DefaultGap, 1, r0)
	case s.similar(c0, r2, similarity.Strict, similarity.DefaultGap):
		s.emit(HeadInsert, -1, similarity.DefaultGap, 2, r0, r1)
	}
}

func (s *state) step(n int) {
	t := s.cand[n]
	t2 := t + at(s.cand, n+1)
	d := at(s.ref, s.r)
	dn := at(s.ref, s.r+1)
	d2 := d + dn
	dLen := textutil.Len(d)

	switch {
	case s.similar(t, d, similarity.Strict, 0):
		s.emit(ExactMatch, n, 0, 1, t)
	case s.similar(t2, d2, similarity.Strict, 0):
		s.mergeAndCarry(n, t2, dLen, 0)
	case s.catalogFiller(t, d):
		last, _ := textutil.Last(d)
		s.emit(CatalogFiller, n, 0, 1, t+string(last))
	case s.similar(t, d, similarity.Strict, 1):
		s.emit(NearMatch, n, 1, 1, t)
	case s.similar(t, dn, similarity.Loose, similarity.DefaultGap) && !s.similar(t, d, similarity.Loose, similarity.DefaultGap):
		s.emit(LookaheadInsert, n, similarity.DefaultGap, 2, d, t)
	case s.similar(t2, d2, similarity.Strict, 1):
		s.mergeAndCarry(n, t2, dLen, 1)
	case s.similar(t, d2, similarity.Strict, 1):
		head, rest := textutil.SplitAt(t, dLen)
		s.emit(OneToTwoSplit, n, 1, 2, head, rest)
	case s.similar(t2, d, similarity.Strict, 1):
		if n+1 < len(s.cand) {
			s.cand[n+1] = ""
		}
		s.emit(TwoToOneMerge, n, 1, 1, t2)
	default:
		s.ambiguities = append(s.ambiguities, Ambiguity{Cursor: len(s.out) + 1, Reference: d, Candidate: t})
		s.emit(Fallback, n, 0, 1, t)
	}
}

func (s *state) mergeAndCarry(n int, joined string, boundary, gap int) {
	head, rest := textutil.SplitAt(joined, boundary)
	s.carry(n, rest)
	s.emit(TwoLineMerge, n, gap, 1, head)
}

func (s *state) catalogFiller(t, d string) bool {
	if s.aligner.catalog == nil {
		return false
	}
	last, ok := textutil.Last(d)
	if !ok || !s.aligner.catalog.Contains(last) {
		return false
	}
	return s.similar(t, textutil.DropLast(d), similarity.Strict, 0)
}

func (s *state) repairTail() {
	remaining := len(s.ref) - len(s.out)
	if remaining < 1 || remaining > 2 || s.r == 0 || len(s.out) == 0 {
		return
	}
	if !s.similar(s.ref[s.r-1], s.out[len(s.out)-1], similarity.Loose, similarity.DefaultGap) {
		return
	}
	s.emit(TailInsert, -1, similarity.DefaultGap, remaining, s.ref[len(s.out):]...)
}

func at(lines []string, i int) string {
	if i < 0 || i >= len(lines) {
		return ""
	}
	return lines[i]
}

func charCount(lines []string) int {
	total := 0
	for _, line := range lines {
		total += textutil.Len(line)
	}
	return total
}
