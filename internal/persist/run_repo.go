package persist

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// RunRow is one archived play session.
type RunRow struct {
	ID         int64
	Seed       int64
	StartedAt  time.Time
	FinishedAt *time.Time
	Ticks      int64
	MapDigest  []byte
	LogLines   int
}

// RunRepo archives play sessions and their game log.
type RunRepo struct {
	db *DB
}

func NewRunRepo(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

// Start opens a run and returns its id.
func (r *RunRepo) Start(ctx context.Context, seed int64) (int64, error) {
	var id int64
	err := r.db.Pool.QueryRow(ctx,
		`INSERT INTO runs (seed) VALUES ($1) RETURNING id`, seed,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("start run: %w", err)
	}
	r.db.log.Info("run started", zap.Int64("run", id), zap.Int64("seed", seed))
	return id, nil
}

// AppendLog writes msgs as log lines from..from+len(msgs)-1 in one
// transaction. Lines already stored are left as they are.
func (r *RunRepo) AppendLog(ctx context.Context, runID int64, from int, msgs []string) error {
	if len(msgs) == 0 {
		return nil
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("run log begin: %w", err)
	}
	defer tx.Rollback(ctx)

	for i, m := range msgs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO run_log (run_id, seq, message) VALUES ($1, $2, $3)
			 ON CONFLICT (run_id, seq) DO NOTHING`,
			runID, from+i, m,
		); err != nil {
			return fmt.Errorf("run log insert: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// Finish stamps the run with its final tick count and map digest.
func (r *RunRepo) Finish(ctx context.Context, runID int64, ticks uint64, digest []byte) error {
	_, err := r.db.Pool.Exec(ctx,
		`UPDATE runs SET finished_at = now(), ticks = $2, map_digest = $3 WHERE id = $1`,
		runID, int64(ticks), digest,
	)
	if err != nil {
		return fmt.Errorf("finish run %d: %w", runID, err)
	}
	r.db.log.Info("run finished", zap.Int64("run", runID), zap.Uint64("ticks", ticks))
	return nil
}

// Recent lists the newest runs, newest first.
func (r *RunRepo) Recent(ctx context.Context, limit int) ([]RunRow, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT r.id, r.seed, r.started_at, r.finished_at, r.ticks, r.map_digest,
		        (SELECT count(*) FROM run_log l WHERE l.run_id = r.id)
		 FROM runs r ORDER BY r.id DESC LIMIT $1`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var row RunRow
		if err := rows.Scan(&row.ID, &row.Seed, &row.StartedAt, &row.FinishedAt,
			&row.Ticks, &row.MapDigest, &row.LogLines); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Messages returns the stored log of a run in order.
func (r *RunRepo) Messages(ctx context.Context, runID int64) ([]string, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT message FROM run_log WHERE run_id = $1 ORDER BY seq`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("run log %d: %w", runID, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
