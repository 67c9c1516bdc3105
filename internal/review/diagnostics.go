package review

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"collate/internal/services"
)

const diagnosticColumns = "run_id, document, stage, code, cursor, reference, candidate, detail, created_at"

// Record stores a diagnostic entry. Store satisfies the workflow sink
// interface through this method.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	_, err := s.exec(ctx,
		`INSERT INTO diagnostics (`+diagnosticColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.RunID, entry.Document, entry.Stage, string(entry.Code), entry.Cursor,
		entry.Reference, entry.Candidate, entry.Detail, now(),
	)
	if err != nil {
		return fmt.Errorf("record diagnostic: %w", err)
	}
	return nil
}

// ListDiagnostics returns entries matching filter in insertion order.
func (s *Store) ListDiagnostics(ctx context.Context, filter Filter) ([]Entry, error) {
	var (
		clauses []string
		args    []any
	)
	if filter.RunID != "" {
		clauses = append(clauses, "run_id = ?")
		args = append(args, filter.RunID)
	}
	if filter.Document != "" {
		clauses = append(clauses, "document = ?")
		args = append(args, filter.Document)
	}
	if filter.Stage != "" {
		clauses = append(clauses, "stage = ?")
		args = append(args, filter.Stage)
	}
	if filter.Code != "" {
		clauses = append(clauses, "code = ?")
		args = append(args, string(filter.Code))
	}
	query := `SELECT ` + diagnosticColumns + ` FROM diagnostics`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY id"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list diagnostics: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Tolerated returns the most recent catalog_tolerated entry per document and
// line for a stage.
func (s *Store) Tolerated(ctx context.Context, stage string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ensureContext(ctx),
		`SELECT `+diagnosticColumns+` FROM diagnostics
		 WHERE id IN (
		     SELECT MAX(id) FROM diagnostics
		     WHERE code = ? AND stage = ?
		     GROUP BY document, cursor
		 )
		 ORDER BY document, cursor`,
		string(services.CodeCatalogTolerated), stage,
	)
	if err != nil {
		return nil, fmt.Errorf("list tolerated: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func scanEntry(scanner interface{ Scan(dest ...any) error }) (Entry, error) {
	var (
		runID     sql.NullString
		code      string
		reference sql.NullString
		candidate sql.NullString
		detail    sql.NullString
		created   sql.NullString
		entry     Entry
	)
	if err := scanner.Scan(&runID, &entry.Document, &entry.Stage, &code, &entry.Cursor,
		&reference, &candidate, &detail, &created); err != nil {
		return Entry{}, err
	}
	entry.RunID = runID.String
	entry.Code = services.Code(code)
	entry.Reference = reference.String
	entry.Candidate = candidate.String
	entry.Detail = detail.String
	entry.CreatedAt = parseTime(created)
	return entry, nil
}
