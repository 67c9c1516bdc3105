package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"collate/internal/services"
)

// FlagForReview adds a document to the manual-review list. Flagging an
// already listed document replaces its reason and reopens it.
func (s *Store) FlagForReview(ctx context.Context, flag Flag) error {
	if flag.Document == "" {
		return errors.New("flag for review: document is required")
	}
	_, err := s.exec(ctx,
		`INSERT INTO needs_review (document, stage, code, reason, run_id, flagged_at, resolved_at)
		 VALUES (?, ?, ?, ?, ?, ?, NULL)
		 ON CONFLICT(document) DO UPDATE SET
		     stage = excluded.stage,
		     code = excluded.code,
		     reason = excluded.reason,
		     run_id = excluded.run_id,
		     flagged_at = excluded.flagged_at,
		     resolved_at = NULL`,
		flag.Document, flag.Stage, string(flag.Code), flag.Reason, flag.RunID, now(),
	)
	if err != nil {
		return fmt.Errorf("flag for review: %w", err)
	}
	return nil
}

// ListReview returns the review list ordered by document name. Resolved items
// are included only when includeResolved is set.
func (s *Store) ListReview(ctx context.Context, includeResolved bool) ([]Item, error) {
	query := `SELECT document, stage, code, reason, run_id, flagged_at, resolved_at FROM needs_review`
	if !includeResolved {
		query += ` WHERE resolved_at IS NULL`
	}
	query += ` ORDER BY document`

	rows, err := s.db.QueryContext(ensureContext(ctx), query)
	if err != nil {
		return nil, fmt.Errorf("list review: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var (
			item     Item
			code     string
			reason   sql.NullString
			runID    sql.NullString
			flagged  sql.NullString
			resolved sql.NullString
		)
		if err := rows.Scan(&item.Document, &item.Stage, &code, &reason, &runID, &flagged, &resolved); err != nil {
			return nil, err
		}
		item.Code = services.Code(code)
		item.Reason = reason.String
		item.RunID = runID.String
		item.FlaggedAt = parseTime(flagged)
		item.ResolvedAt = parseTime(resolved)
		items = append(items, item)
	}
	return items, rows.Err()
}

// ResolveReview marks a document as reviewed. It reports false when the
// document is not on the open list.
func (s *Store) ResolveReview(ctx context.Context, document string) (bool, error) {
	res, err := s.exec(ctx,
		`UPDATE needs_review SET resolved_at = ? WHERE document = ? AND resolved_at IS NULL`,
		now(), document,
	)
	if err != nil {
		return false, fmt.Errorf("resolve review: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("resolve review: %w", err)
	}
	return n > 0, nil
}

// ClearReview removes review items. With resolvedOnly set, open items are
// kept.
func (s *Store) ClearReview(ctx context.Context, resolvedOnly bool) (int64, error) {
	query := `DELETE FROM needs_review`
	if resolvedOnly {
		query += ` WHERE resolved_at IS NOT NULL`
	}
	res, err := s.exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("clear review: %w", err)
	}
	return res.RowsAffected()
}
