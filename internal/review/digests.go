package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// MarkDone records that a stage produced output for a document from input
// with the given digest.
func (s *Store) MarkDone(ctx context.Context, document, stage, inputDigest, outputDigest, runID string) error {
	_, err := s.exec(ctx,
		`INSERT INTO documents (document, stage, input_digest, output_digest, run_id, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(document, stage) DO UPDATE SET
		     input_digest = excluded.input_digest,
		     output_digest = excluded.output_digest,
		     run_id = excluded.run_id,
		     updated_at = excluded.updated_at`,
		document, stage, inputDigest, outputDigest, runID, now(),
	)
	if err != nil {
		return fmt.Errorf("mark done: %w", err)
	}
	return nil
}

// IsDone reports whether the last successful run of stage for document saw
// the same input digest.
func (s *Store) IsDone(ctx context.Context, document, stage, inputDigest string) (bool, error) {
	var stored string
	err := s.db.QueryRowContext(ensureContext(ctx),
		`SELECT input_digest FROM documents WHERE document = ? AND stage = ?`,
		document, stage,
	).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check done: %w", err)
	}
	return stored == inputDigest, nil
}

// Forget drops the recorded digest so the next run reprocesses the document.
func (s *Store) Forget(ctx context.Context, document, stage string) error {
	_, err := s.exec(ctx,
		`DELETE FROM documents WHERE document = ? AND stage = ?`, document, stage)
	if err != nil {
		return fmt.Errorf("forget document: %w", err)
	}
	return nil
}
