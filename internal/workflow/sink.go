package workflow

import (
	"context"
	"errors"
	"log/slog"

	"collate/internal/logging"
	"collate/internal/review"
)

// Sink receives diagnostic entries. Implementations must be safe for
// concurrent use; *review.Store satisfies it.
type Sink interface {
	Record(ctx context.Context, entry review.Entry) error
}

// LogSink writes every entry as a structured warning.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink returns a sink logging through logger.
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &LogSink{logger: logger}
}

// Record logs the entry.
func (s *LogSink) Record(ctx context.Context, entry review.Entry) error {
	attrs := []logging.Attr{
		logging.Code(entry.Code),
		logging.Document(entry.Document),
	}
	if entry.Stage != "" {
		attrs = append(attrs, logging.String(logging.FieldStage, entry.Stage))
	}
	if entry.RunID != "" {
		attrs = append(attrs, logging.String(logging.FieldRunID, entry.RunID))
	}
	if entry.Cursor > 0 {
		attrs = append(attrs, logging.Cursor(entry.Cursor))
	}
	if entry.Reference != "" {
		attrs = append(attrs, logging.String("reference", entry.Reference))
	}
	if entry.Candidate != "" {
		attrs = append(attrs, logging.String("candidate", entry.Candidate))
	}
	if entry.Detail != "" {
		attrs = append(attrs, logging.String("detail", entry.Detail))
	}
	s.logger.WarnContext(ctx, "diagnostic", logging.Args(attrs...)...)
	return nil
}

// MultiSink records into every sink and joins their errors.
type MultiSink []Sink

// Record forwards the entry to each sink.
func (m MultiSink) Record(ctx context.Context, entry review.Entry) error {
	var errs []error
	for _, sink := range m {
		if sink == nil {
			continue
		}
		if err := sink.Record(ctx, entry); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
