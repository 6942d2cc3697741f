package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alanyoungcy/momentumbot/internal/domain"
)

// ScanStore implements domain.ScanStore using PostgreSQL. Results are stored
// as JSONB so the row shape tracks the scanner's output without schema churn.
type ScanStore struct {
	pool *pgxpool.Pool
}

// NewScanStore creates a ScanStore backed by the given connection pool.
func NewScanStore(pool *pgxpool.Pool) *ScanStore {
	return &ScanStore{pool: pool}
}

// RecordRun inserts one scan run.
func (s *ScanStore) RecordRun(ctx context.Context, run domain.ScanRun) error {
	results, err := json.Marshal(run.Results)
	if err != nil {
		return fmt.Errorf("postgres: encode scan results: %w", err)
	}

	const query = `
		INSERT INTO scan_runs (id, threshold, timeframe, found, results, ran_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err = s.pool.Exec(ctx, query,
		run.ID, run.Threshold, string(run.Timeframe), run.Found, results, run.RanAt,
	)
	if err != nil {
		return fmt.Errorf("postgres: record scan run %s: %w", run.ID, err)
	}
	return nil
}

// ListRecent returns the most recent runs, newest first.
func (s *ScanStore) ListRecent(ctx context.Context, limit int) ([]domain.ScanRun, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
		SELECT id, threshold, timeframe, found, results, ran_at
		FROM scan_runs
		ORDER BY ran_at DESC
		LIMIT $1`
	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: list recent scan runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

// ListBefore returns all runs strictly before the cutoff, oldest first.
func (s *ScanStore) ListBefore(ctx context.Context, before time.Time) ([]domain.ScanRun, error) {
	const query = `
		SELECT id, threshold, timeframe, found, results, ran_at
		FROM scan_runs
		WHERE ran_at < $1
		ORDER BY ran_at ASC`
	rows, err := s.pool.Query(ctx, query, before)
	if err != nil {
		return nil, fmt.Errorf("postgres: list scan runs before %s: %w", before, err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

// DeleteBefore removes all runs strictly before the cutoff and returns the
// number deleted.
func (s *ScanStore) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM scan_runs WHERE ran_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("postgres: delete scan runs before %s: %w", before, err)
	}
	return tag.RowsAffected(), nil
}

func scanRuns(rows pgx.Rows) ([]domain.ScanRun, error) {
	var runs []domain.ScanRun
	for rows.Next() {
		var run domain.ScanRun
		var timeframe string
		var results []byte
		if err := rows.Scan(&run.ID, &run.Threshold, &timeframe, &run.Found, &results, &run.RanAt); err != nil {
			return nil, fmt.Errorf("postgres: scan run row: %w", err)
		}
		run.Timeframe = domain.Timeframe(timeframe)
		if err := json.Unmarshal(results, &run.Results); err != nil {
			return nil, fmt.Errorf("postgres: decode scan results: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: iterate scan runs: %w", err)
	}
	return runs, nil
}

// Compile-time interface check.
var _ domain.ScanStore = (*ScanStore)(nil)
