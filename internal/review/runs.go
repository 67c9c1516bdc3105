package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// BeginRun records the start of a batch run.
func (s *Store) BeginRun(ctx context.Context, runID, stage string) error {
	if runID == "" {
		return errors.New("begin run: run id is required")
	}
	_, err := s.exec(ctx,
		`INSERT INTO runs (id, stage, started_at) VALUES (?, ?, ?)`,
		runID, stage, now(),
	)
	if err != nil {
		return fmt.Errorf("begin run: %w", err)
	}
	return nil
}

// FinishRun stores the final counters of a run.
func (s *Store) FinishRun(ctx context.Context, runID string, stats RunStats) error {
	halted := 0
	if stats.Halted {
		halted = 1
	}
	res, err := s.exec(ctx,
		`UPDATE runs SET finished_at = ?, processed = ?, written = ?, skipped = ?, failed = ?, halted = ? WHERE id = ?`,
		now(), stats.Processed, stats.Written, stats.Skipped, stats.Failed, halted, runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("finish run: unknown run %s", runID)
	}
	return nil
}

// GetRun returns a recorded run, or nil when it does not exist.
func (s *Store) GetRun(ctx context.Context, runID string) (*Run, error) {
	row := s.db.QueryRowContext(ensureContext(ctx),
		`SELECT id, stage, started_at, finished_at, processed, written, skipped, failed, halted FROM runs WHERE id = ?`,
		runID,
	)
	var (
		run      Run
		started  sql.NullString
		finished sql.NullString
		halted   int
	)
	err := row.Scan(&run.ID, &run.Stage, &started, &finished,
		&run.Processed, &run.Written, &run.Skipped, &run.Failed, &halted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	run.StartedAt = parseTime(started)
	run.FinishedAt = parseTime(finished)
	run.Halted = halted != 0
	return &run, nil
}
