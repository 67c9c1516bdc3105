package workflow

import (
	"bytes"
	"context"
	"fmt"

	"collate/internal/fileutil"
	"collate/internal/logging"
	"collate/internal/review"
	"collate/internal/services"
	"collate/internal/transcript"
)

// load reads a document and records its malformed records. The raw bytes are
// returned for digesting. An absent or empty document is a missing
// counterpart.
func (b *batch) load(ctx context.Context, folder, name string) (transcript.Document, []transcript.MalformedRecord, []byte, error) {
	data, err := b.docs.ReadRaw(folder, name)
	if err != nil {
		return transcript.Document{}, nil, nil, err
	}
	doc, malformed, err := transcript.Parse(name, bytes.NewReader(data))
	if err != nil {
		return transcript.Document{}, nil, nil, err
	}
	for _, m := range malformed {
		b.record(ctx, review.Entry{
			Document:  name,
			Code:      services.CodeMalformedLine,
			Cursor:    m.Position,
			Candidate: m.Text,
			Detail:    fmt.Sprintf("%s: %v", folder, m.Err),
		})
	}
	if doc.Len() == 0 && len(malformed) == 0 {
		return transcript.Document{}, nil, nil, services.Wrap(services.ErrMissingCounterpart, string(b.stage), "read",
			fmt.Sprintf("%s/%s is empty", folder, name), nil)
	}
	return doc, malformed, data, nil
}

// unchanged reports whether the document may be skipped because its inputs
// match the last successful run and its output still exists. The digest of
// the inputs is returned for a later markDone.
func (b *batch) unchanged(ctx context.Context, name, output string, inputs ...[]byte) (string, bool) {
	digest := fileutil.Digest(inputs...)
	if b.store == nil || !b.cfg.Workflow.SkipFinished || !b.stage.digested() {
		return digest, false
	}
	if !b.docs.Exists(output, name) {
		return digest, false
	}
	done, err := b.store.IsDone(ctx, name, string(b.stage), digest)
	if err != nil {
		b.logger.Warn("digest lookup failed", logging.Document(name), logging.Error(err))
		return digest, false
	}
	return digest, done
}

// save writes doc into folder and records the input digest.
func (b *batch) save(ctx context.Context, folder string, doc transcript.Document, inputDigest string) error {
	if err := b.docs.Write(folder, doc); err != nil {
		return err
	}
	if b.store == nil || !b.stage.digested() {
		return nil
	}
	outputDigest := fileutil.Digest(doc.Bytes())
	if err := b.store.MarkDone(ctx, doc.Name, string(b.stage), inputDigest, outputDigest, b.runID); err != nil {
		b.logger.Warn("failed to record digest", logging.Document(doc.Name), logging.Error(err))
	}
	return nil
}

// withheld reports a document that was not written because some records
// were malformed.
func withheld(stage Stage, name string, malformed int) error {
	return diagnosed(services.Wrap(services.ErrMalformedLine, string(stage), "parse",
		fmt.Sprintf("%s: %d malformed records; document withheld", name, malformed), nil))
}
