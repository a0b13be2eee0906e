package runs

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/swot-atlas/pkg/models/store"
	"github.com/de-tools/swot-atlas/pkg/store/duckdb"
)

var ErrNotFound = errors.New("run not found")

const (
	statusPending = "pending"
	statusRunning = "running"
	statusFailed  = "failed"
)

type Store interface {
	CreateRun(ctx context.Context, run *store.AnalysisRun) error
	ProgressRun(ctx context.Context, id store.RunIdentity, stage string, progress int) error
	UpdateRunStatus(ctx context.Context, id store.RunIdentity, status string, runErr *string) error
	GetRun(ctx context.Context, id store.RunIdentity) (*store.AnalysisRun, error)
	ListRuns(ctx context.Context, limit int) ([]*store.AnalysisRun, error)
	FailUnfinishedRuns(ctx context.Context, runErr string) ([]string, error)
}

type defaultStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &defaultStore{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}, nil
}

const selectColumns = `id, ticker, start_date, end_date, forms, status, stage, progress, error, created_at, updated_at`

func (s *defaultStore) CreateRun(ctx context.Context, run *store.AnalysisRun) error {
	forms, err := json.Marshal(run.Forms)
	if err != nil {
		return fmt.Errorf("marshal forms: %w", err)
	}

	_, err = duckdb.Conn(ctx, s.db).ExecContext(ctx, `
		INSERT INTO analysis_runs (
			id, ticker, start_date, end_date, forms, status, stage, progress, error, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Ticker,
		run.StartDate,
		run.EndDate,
		string(forms),
		run.Status,
		run.Stage,
		run.Progress,
		nullString(run.Error),
		run.CreatedAt,
		run.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

func (s *defaultStore) ProgressRun(ctx context.Context, id store.RunIdentity, stage string, progress int) error {
	res, err := duckdb.Conn(ctx, s.db).ExecContext(ctx,
		`UPDATE analysis_runs SET stage = ?, progress = ?, updated_at = ? WHERE id = ?`,
		stage, progress, s.now(), id.ID,
	)
	if err != nil {
		return fmt.Errorf("update run progress: %w", err)
	}
	return expectOneRow(res, id)
}

func (s *defaultStore) UpdateRunStatus(ctx context.Context, id store.RunIdentity, status string, runErr *string) error {
	res, err := duckdb.Conn(ctx, s.db).ExecContext(ctx,
		`UPDATE analysis_runs SET status = ?, error = ?, updated_at = ? WHERE id = ?`,
		status, nullString(runErr), s.now(), id.ID,
	)
	if err != nil {
		return fmt.Errorf("update run status: %w", err)
	}
	return expectOneRow(res, id)
}

func (s *defaultStore) GetRun(ctx context.Context, id store.RunIdentity) (*store.AnalysisRun, error) {
	row := duckdb.Conn(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM analysis_runs WHERE id = ?`, id.ID)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}

func (s *defaultStore) ListRuns(ctx context.Context, limit int) ([]*store.AnalysisRun, error) {
	rows, err := duckdb.Conn(ctx, s.db).QueryContext(ctx,
		`SELECT `+selectColumns+` FROM analysis_runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	runs := []*store.AnalysisRun{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// FailUnfinishedRuns marks every pending or running run as failed and returns
// the ids it changed.
func (s *defaultStore) FailUnfinishedRuns(ctx context.Context, runErr string) ([]string, error) {
	rows, err := duckdb.Conn(ctx, s.db).QueryContext(ctx, `
		UPDATE analysis_runs SET status = ?, error = ?, updated_at = ?
		WHERE status IN (?, ?)
		RETURNING id`,
		statusFailed, runErr, s.now(), statusPending, statusRunning,
	)
	if err != nil {
		return nil, fmt.Errorf("fail unfinished runs: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan run id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate failed runs: %w", err)
	}
	return ids, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*store.AnalysisRun, error) {
	var (
		run    store.AnalysisRun
		forms  string
		runErr sql.NullString
	)
	err := row.Scan(
		&run.ID,
		&run.Ticker,
		&run.StartDate,
		&run.EndDate,
		&forms,
		&run.Status,
		&run.Stage,
		&run.Progress,
		&runErr,
		&run.CreatedAt,
		&run.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(forms), &run.Forms); err != nil {
		return nil, fmt.Errorf("unmarshal forms: %w", err)
	}
	if runErr.Valid {
		run.Error = &runErr.String
	}
	return &run, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func expectOneRow(res sql.Result, id store.RunIdentity) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id.ID)
	}
	return nil
}
