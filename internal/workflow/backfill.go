package workflow

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"collate/internal/fileutil"
	"collate/internal/logging"
	"collate/internal/review"
	"collate/internal/textutil"
)

// backfillTargets collects first-line catalog tolerances where the final
// side carries the extra glyph.
func (b *batch) backfillTargets(ctx context.Context, names []string) ([]string, error) {
	if b.store == nil {
		return nil, errors.New("backfill requires the review store")
	}
	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		wanted[strings.TrimSuffix(strings.TrimSpace(name), ".txt")] = struct{}{}
	}

	b.tolerated = make(map[string][]review.Entry)
	var targets []string
	for _, stage := range []Stage{StageVerify, StageRun} {
		entries, err := b.store.Tolerated(ctx, string(stage))
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if len(wanted) > 0 {
				if _, ok := wanted[entry.Document]; !ok {
					continue
				}
			}
			if _, ok := b.backfillGlyph(entry); !ok {
				continue
			}
			if _, seen := b.tolerated[entry.Document]; !seen {
				targets = append(targets, entry.Document)
			}
			b.tolerated[entry.Document] = append(b.tolerated[entry.Document], entry)
		}
	}
	return targets, nil
}

// backfillGlyph returns the glyph to append to the raw source, if the entry
// qualifies: line 1, final one rune longer, trailing catalog glyph.
func (b *batch) backfillGlyph(entry review.Entry) (rune, bool) {
	if entry.Cursor != 1 {
		return 0, false
	}
	if textutil.Len(entry.Candidate)-textutil.Len(entry.Reference) != 1 {
		return 0, false
	}
	glyph, ok := textutil.Last(entry.Candidate)
	if !ok || !b.assets.Catalog.Contains(glyph) {
		return 0, false
	}
	return glyph, true
}

// backfill appends the tolerated glyph to the first line of the raw source
// so the next ingest carries it. Each entry is applied once.
func (b *batch) backfill(ctx context.Context, name string) (outcome, error) {
	entries := b.tolerated[name]
	if len(entries) == 0 {
		return outcomeSkipped, nil
	}
	entry := entries[len(entries)-1]
	glyph, _ := b.backfillGlyph(entry)

	key := fileutil.Digest([]byte(entry.Reference), []byte(entry.Candidate), []byte(strconv.Itoa(entry.Cursor)))
	done, err := b.store.IsDone(ctx, name, string(StageBackfill), key)
	if err != nil {
		return outcomeSkipped, err
	}
	if done {
		return outcomeSkipped, nil
	}

	data, err := b.docs.ReadRaw(b.cfg.Folders.Raw, name)
	if err != nil {
		return outcomeSkipped, err
	}
	patched := appendToFirstLine(data, string(glyph))
	if err := fileutil.WriteFileAtomic(b.docs.Path(b.cfg.Folders.Raw, name), patched, 0o644); err != nil {
		return outcomeSkipped, fmt.Errorf("write %s: %w", name, err)
	}
	if err := b.store.MarkDone(ctx, name, string(StageBackfill), key, fileutil.Digest(patched), b.runID); err != nil {
		return outcomeSkipped, err
	}
	logging.WithContext(ctx, b.Runner.logger).Info("catalog glyph restored to raw source",
		logging.String("glyph", string(glyph)),
		logging.String("reference", entry.Reference),
		logging.String("final", entry.Candidate),
	)
	return outcomeWritten, nil
}

// appendToFirstLine inserts suffix before the first line break, keeping the
// break style of the file.
func appendToFirstLine(data []byte, suffix string) []byte {
	idx := bytes.IndexByte(data, '\n')
	if idx < 0 {
		return append(bytes.TrimRight(data, "\r"), suffix...)
	}
	end := idx
	if end > 0 && data[end-1] == '\r' {
		end--
	}
	out := make([]byte, 0, len(data)+len(suffix))
	out = append(out, data[:end]...)
	out = append(out, suffix...)
	out = append(out, data[end:]...)
	return out
}
