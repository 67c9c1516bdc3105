package review

import (
	"context"
	"database/sql"
	"fmt"

	"collate/internal/variant"
)

// AddTally merges counts into the persisted variant tally.
func (s *Store) AddTally(ctx context.Context, entries []variant.TallyEntry) error {
	if len(entries) == 0 {
		return nil
	}
	ctx = ensureContext(ctx)
	stamp := now()
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, entry := range entries {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO variant_tally (variant, occurrences, updated_at) VALUES (?, ?, ?)
				 ON CONFLICT(variant) DO UPDATE SET occurrences = occurrences + excluded.occurrences, updated_at = excluded.updated_at`,
				entry.Key, entry.Count, stamp,
			); err != nil {
				return fmt.Errorf("add tally %q: %w", entry.Key, err)
			}
		}
		return nil
	})
}

// Tally returns the persisted counts, highest first.
func (s *Store) Tally(ctx context.Context) ([]variant.TallyEntry, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT variant, occurrences FROM variant_tally ORDER BY occurrences DESC, variant`)
	if err != nil {
		return nil, fmt.Errorf("read tally: %w", err)
	}
	defer rows.Close()

	var entries []variant.TallyEntry
	for rows.Next() {
		var entry variant.TallyEntry
		if err := rows.Scan(&entry.Key, &entry.Count); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
