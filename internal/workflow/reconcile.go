package workflow

import (
	"context"
	"errors"
	"fmt"

	"collate/internal/align"
	"collate/internal/logging"
	"collate/internal/report"
	"collate/internal/review"
	"collate/internal/services"
	"collate/internal/transcript"
)

// counterparts loads the reference and candidate of a document.
func (b *batch) counterparts(ctx context.Context, name string) (ref, cand transcript.Document, digest string, skip bool, err error) {
	ref, _, refData, err := b.load(ctx, b.cfg.Folders.Reference, name)
	if err != nil {
		return ref, cand, "", false, err
	}
	cand, _, candData, err := b.load(ctx, b.cfg.Folders.Candidate, name)
	if err != nil {
		return ref, cand, "", false, err
	}
	digest, skip = b.unchanged(ctx, name, b.cfg.Folders.Reconciled, refData, candData)
	return ref, cand, digest, skip, nil
}

// reference returns the reference lines as the aligner and verifier see them.
func (b *batch) reference(ref transcript.Document) transcript.Document {
	return b.refCleaner.Document(ref).NonEmpty().Renumber()
}

// reconcile aligns the cleaned candidate to the cleaned reference.
func (b *batch) reconcile(ctx context.Context, name string, ref, cand transcript.Document) (transcript.Document, error) {
	refClean := b.reference(ref)
	candClean := b.candCleaner.Document(cand).NonEmpty()

	res, err := b.aligner.AlignDocuments(refClean, candClean)
	for _, amb := range res.Ambiguities {
		b.record(ctx, review.Entry{
			Document:  name,
			Code:      services.CodeAlignmentAmbiguous,
			Cursor:    amb.Cursor,
			Reference: amb.Reference,
			Candidate: amb.Candidate,
			Detail:    "not sure; candidate line kept",
		})
	}
	if err != nil {
		var unresolved *align.UnresolvedError
		if errors.As(err, &unresolved) {
			b.record(ctx, review.Entry{
				Document: name,
				Code:     services.CodeAlignmentUnresolved,
				Detail:   fmt.Sprintf("line count: reference %d != output %d", len(unresolved.Reference), len(unresolved.Output)),
			})
			b.dump(name, unresolved.Reference, unresolved.Output)
		}
		return transcript.Document{}, diagnosed(err)
	}

	logging.WithContext(ctx, b.Runner.logger).Debug("document aligned",
		logging.Bool("fast_path", res.FastPath),
		logging.Int("steps", len(res.Steps)),
		logging.Int("ambiguities", len(res.Ambiguities)),
	)
	return transcript.FromTexts(name, res.Lines), nil
}

// dump prints a side-by-side view of an unresolved document.
func (b *batch) dump(name string, ref, out []string) {
	if !b.cfg.Align.Display || b.display == nil {
		return
	}
	b.displayMu.Lock()
	defer b.displayMu.Unlock()
	fmt.Fprintf(b.display, "%s: line count: reference %d != output %d\n", name, len(ref), len(out))
	fmt.Fprint(b.display, report.SideBySide(nil, ref, out))
}

// patch restores the candidate's annotation markers into clean.
func (b *batch) patch(ctx context.Context, clean, cand transcript.Document) (transcript.Document, error) {
	marked := cand.Map(b.assets.CharMap.Map)
	res, err := b.patcher.PatchDocument(clean, marked)
	if err != nil {
		return transcript.Document{}, err
	}
	logging.WithContext(ctx, b.Runner.logger).Debug("markers restored", logging.Int("markers", res.Markers))
	return res.Document, nil
}

// verify checks final against the reference and records what it finds.
func (b *batch) verify(ctx context.Context, name string, ref, final transcript.Document) error {
	rep := b.verifier.Verify(b.reference(ref), final)
	for _, tol := range rep.Tolerances {
		b.record(ctx, review.Entry{
			Document:  name,
			Code:      services.CodeCatalogTolerated,
			Cursor:    tol.Line,
			Reference: tol.Reference,
			Candidate: tol.Final,
			Detail:    fmt.Sprintf("%s carries catalog glyph %q", tol.Side, tol.Glyph),
		})
	}
	if rep.Suppressed > 0 {
		logging.WithContext(ctx, b.Runner.logger).Debug("catalog differences tolerated", logging.Int("count", rep.Suppressed))
	}
	switch {
	case rep.LineCountMismatch():
		b.record(ctx, review.Entry{
			Document: name,
			Code:     services.CodeLineCountMismatch,
			Detail:   fmt.Sprintf("lines: reference %d != final %d", rep.ReferenceLines, rep.FinalLines),
		})
		return diagnosed(rep.Err())
	case rep.Mismatch != nil:
		m := rep.Mismatch
		b.record(ctx, review.Entry{
			Document:  name,
			Code:      services.CodeVerifyMismatch,
			Cursor:    m.Line,
			Reference: m.Reference + "|" + m.ReferenceNext,
			Candidate: m.Final + "|" + m.FinalNext,
			Detail:    fmt.Sprintf("delta %d, distance %d, similarity %.2f", m.Delta, m.Distance, m.Similarity),
		})
		return diagnosed(rep.Err())
	}
	return nil
}

// reconcileStage writes the aligned candidate into the reconciled folder.
func (b *batch) reconcileStage(ctx context.Context, name string) (outcome, error) {
	ref, cand, digest, skip, err := b.counterparts(ctx, name)
	if err != nil {
		return outcomeSkipped, err
	}
	if skip {
		return outcomeSkipped, nil
	}
	out, err := b.reconcile(ctx, name, ref, cand)
	if err != nil {
		return outcomeSkipped, err
	}
	if err := b.save(ctx, b.cfg.Folders.Reconciled, out, digest); err != nil {
		return outcomeSkipped, err
	}
	return outcomeWritten, nil
}

// patchStage rewrites a reconciled document with the candidate's markers.
func (b *batch) patchStage(ctx context.Context, name string) (outcome, error) {
	clean, _, _, err := b.load(ctx, b.cfg.Folders.Reconciled, name)
	if err != nil {
		return outcomeSkipped, err
	}
	cand, _, _, err := b.load(ctx, b.cfg.Folders.Candidate, name)
	if err != nil {
		return outcomeSkipped, err
	}
	out, err := b.patch(ctx, clean, cand)
	if err != nil {
		return outcomeSkipped, err
	}
	if err := b.save(ctx, b.cfg.Folders.Reconciled, out, ""); err != nil {
		return outcomeSkipped, err
	}
	return outcomeWritten, nil
}

// verifyStage compares the reconciled document with its reference.
func (b *batch) verifyStage(ctx context.Context, name string) (outcome, error) {
	ref, _, _, err := b.load(ctx, b.cfg.Folders.Reference, name)
	if err != nil {
		return outcomeSkipped, err
	}
	final, _, _, err := b.load(ctx, b.cfg.Folders.Reconciled, name)
	if err != nil {
		return outcomeSkipped, err
	}
	if err := b.verify(ctx, name, ref, final); err != nil {
		return outcomeSkipped, err
	}
	return outcomeChecked, nil
}

// runPipeline reconciles, patches and verifies in memory and writes once.
func (b *batch) runPipeline(ctx context.Context, name string) (outcome, error) {
	ref, cand, digest, skip, err := b.counterparts(ctx, name)
	if err != nil {
		return outcomeSkipped, err
	}
	if skip {
		return outcomeSkipped, nil
	}
	aligned, err := b.reconcile(ctx, name, ref, cand)
	if err != nil {
		return outcomeSkipped, err
	}
	final, err := b.patch(ctx, aligned, cand)
	if err != nil {
		return outcomeSkipped, err
	}
	if err := b.verify(ctx, name, ref, final); err != nil {
		return outcomeSkipped, err
	}
	if err := b.save(ctx, b.cfg.Folders.Reconciled, final, digest); err != nil {
		return outcomeSkipped, err
	}
	return outcomeWritten, nil
}
