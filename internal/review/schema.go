package review

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
)

//go:embed schema.sql
var baseSchema string

// migrations are applied in order; the database's user_version records how
// many have run. Append new steps, never edit applied ones.
var migrations = []string{
	baseSchema,
	`CREATE INDEX IF NOT EXISTS idx_diagnostics_document ON diagnostics(document, stage);
	 CREATE INDEX IF NOT EXISTS idx_needs_review_open ON needs_review(resolved_at);`,
}

// ErrSchemaTooNew reports a database written by a newer collate.
var ErrSchemaTooNew = errors.New("review database is newer than this build")

func (s *Store) migrate(ctx context.Context) error {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version > len(migrations) {
		return fmt.Errorf("%w: %s has version %d, this build knows %d", ErrSchemaTooNew, s.path, version, len(migrations))
	}
	for step := version; step < len(migrations); step++ {
		err := s.inTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, migrations[step]); err != nil {
				return err
			}
			// PRAGMA does not accept bind parameters.
			_, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", step+1))
			return err
		})
		if err != nil {
			return fmt.Errorf("apply schema step %d: %w", step+1, err)
		}
	}
	return nil
}

// SchemaVersion returns the number of applied schema steps.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	err := s.db.QueryRowContext(ensureContext(ctx), "PRAGMA user_version").Scan(&version)
	return version, err
}
