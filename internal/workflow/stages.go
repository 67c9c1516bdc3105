package workflow

import (
	"bytes"
	"context"
	"fmt"

	"collate/internal/review"
	"collate/internal/services"
	"collate/internal/transcript"
	"collate/internal/variant"
)

// ingest converts a raw export into an original-glyph document.
func (b *batch) ingest(ctx context.Context, name string) (outcome, error) {
	data, err := b.docs.ReadRaw(b.cfg.Folders.Raw, name)
	if err != nil {
		return outcomeSkipped, err
	}
	digest, skip := b.unchanged(ctx, name, b.cfg.Folders.Original, data)
	if skip {
		return outcomeSkipped, nil
	}

	result, err := b.converter.Convert(name, bytes.NewReader(data))
	if err != nil {
		return outcomeSkipped, err
	}
	for _, m := range result.Malformed {
		b.record(ctx, review.Entry{
			Document:  name,
			Code:      services.CodeMalformedLine,
			Cursor:    m.Position,
			Candidate: m.Text,
			Detail:    m.Err.Error(),
		})
	}
	if !result.Valid() {
		return outcomeSkipped, withheld(b.stage, name, len(result.Malformed))
	}
	if result.Document.Len() == 0 {
		return outcomeSkipped, services.Wrap(services.ErrMissingCounterpart, string(b.stage), "convert",
			fmt.Sprintf("%s has no text records", name), nil)
	}
	if err := b.save(ctx, b.cfg.Folders.Original, result.Document, digest); err != nil {
		return outcomeSkipped, err
	}
	return outcomeWritten, nil
}

// standardize resolves variant selectors and self-made glyphs of an
// original-glyph document into the reference folder.
func (b *batch) standardize(ctx context.Context, name string) (outcome, error) {
	doc, malformed, data, err := b.load(ctx, b.cfg.Folders.Original, name)
	if err != nil {
		return outcomeSkipped, err
	}
	if len(malformed) > 0 {
		return outcomeSkipped, withheld(b.stage, name, len(malformed))
	}
	digest, skip := b.unchanged(ctx, name, b.cfg.Folders.Reference, data)
	if skip {
		return outcomeSkipped, nil
	}

	resolver := variant.NewResolver(b.assets.Tiers, b.tally)
	lines := make([]transcript.Line, len(doc.Lines))
	for i, line := range doc.Lines {
		res := resolver.Standardize(line.Text, b.assets.CharMap)
		for _, issue := range res.Issues {
			b.record(ctx, review.Entry{
				Document:  name,
				Code:      issue.Code,
				Cursor:    line.No,
				Candidate: line.Text,
				Detail:    issue.String(),
			})
		}
		lines[i] = transcript.Line{No: line.No, Text: res.Text, Raw: line.Raw}
	}
	out := transcript.Document{Name: name, Lines: lines}
	if err := b.save(ctx, b.cfg.Folders.Reference, out, digest); err != nil {
		return outcomeSkipped, err
	}
	return outcomeWritten, nil
}
