package runs

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/de-tools/swot-atlas/pkg/models/store"
	"github.com/de-tools/swot-atlas/pkg/store/duckdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var columns = []string{
	"id", "ticker", "start_date", "end_date", "forms", "status",
	"stage", "progress", "error", "created_at", "updated_at",
}

func newMockStore(t *testing.T) (Store, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := NewStore(db)
	require.NoError(t, err)
	return s, mock
}

func sampleRun() *store.AnalysisRun {
	created := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	return &store.AnalysisRun{
		ID:        "run-1",
		Ticker:    "AAPL",
		StartDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
		Forms:     []string{"10-K"},
		Status:    "pending",
		CreatedAt: created,
		UpdatedAt: created,
	}
}

func TestNewStore_NilDB(t *testing.T) {
	_, err := NewStore(nil)
	assert.Error(t, err)
}

func TestStore_CreateRun(t *testing.T) {
	s, mock := newMockStore(t)
	run := sampleRun()

	mock.ExpectExec(`INSERT INTO analysis_runs`).
		WithArgs("run-1", "AAPL", run.StartDate, run.EndDate, `["10-K"]`, "pending", "", 0,
			sql.NullString{}, run.CreatedAt, run.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.CreateRun(context.Background(), run))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ProgressRun(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE analysis_runs SET stage = \?, progress = \?`).
		WithArgs("fetching", 40, sqlmock.AnyArg(), "run-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE analysis_runs SET stage = \?, progress = \?`).
		WithArgs("fetching", 40, sqlmock.AnyArg(), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ctx := context.Background()
	require.NoError(t, s.ProgressRun(ctx, store.RunIdentity{ID: "run-1"}, "fetching", 40))
	assert.ErrorIs(t, s.ProgressRun(ctx, store.RunIdentity{ID: "missing"}, "fetching", 40), ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_UpdateRunStatus(t *testing.T) {
	s, mock := newMockStore(t)
	msg := "pipeline exited with status 1"

	mock.ExpectExec(`UPDATE analysis_runs SET status = \?, error = \?`).
		WithArgs("failed", sql.NullString{String: msg, Valid: true}, sqlmock.AnyArg(), "run-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.UpdateRunStatus(context.Background(), store.RunIdentity{ID: "run-1"}, "failed", &msg))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_UsesContextTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	s, err := NewStore(db)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE analysis_runs SET stage`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE analysis_runs SET status`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	ctx := duckdb.WithTransaction(context.Background(), tx)
	require.NoError(t, s.ProgressRun(ctx, store.RunIdentity{ID: "run-1"}, "complete", 100))
	require.NoError(t, s.UpdateRunStatus(ctx, store.RunIdentity{ID: "run-1"}, "finished", nil))
	require.NoError(t, tx.Commit())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetRun(t *testing.T) {
	s, mock := newMockStore(t)
	run := sampleRun()

	mock.ExpectQuery(`SELECT .* FROM analysis_runs WHERE id = \?`).
		WithArgs("run-1").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			run.ID, run.Ticker, run.StartDate, run.EndDate, `["10-K","10-Q"]`, "failed",
			"processing", 60, "boom", run.CreatedAt, run.UpdatedAt,
		))
	mock.ExpectQuery(`SELECT .* FROM analysis_runs WHERE id = \?`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(columns))

	got, err := s.GetRun(context.Background(), store.RunIdentity{ID: "run-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"10-K", "10-Q"}, got.Forms)
	assert.Equal(t, "processing", got.Stage)
	assert.Equal(t, 60, got.Progress)
	require.NotNil(t, got.Error)
	assert.Equal(t, "boom", *got.Error)

	_, err = s.GetRun(context.Background(), store.RunIdentity{ID: "missing"})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListRuns(t *testing.T) {
	s, mock := newMockStore(t)
	run := sampleRun()

	mock.ExpectQuery(`SELECT .* FROM analysis_runs ORDER BY created_at DESC LIMIT \?`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("run-2", "MSFT", run.StartDate, run.EndDate, `["10-K"]`, "running", "fetching", 40, nil, run.CreatedAt, run.UpdatedAt).
			AddRow("run-1", "AAPL", run.StartDate, run.EndDate, `["10-K"]`, "finished", "complete", 100, nil, run.CreatedAt, run.UpdatedAt))

	runs, err := s.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].ID)
	assert.Nil(t, runs[0].Error)
	assert.Equal(t, "finished", runs[1].Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_FailUnfinishedRuns(t *testing.T) {
	s, mock := newMockStore(t)
	msg := "interrupted"

	mock.ExpectQuery(`UPDATE analysis_runs SET status = \?, error = \?, updated_at = \?\s+WHERE status IN \(\?, \?\)\s+RETURNING id`).
		WithArgs("failed", msg, sqlmock.AnyArg(), "pending", "running").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("run-7").AddRow("run-93"))

	ids, err := s.FailUnfinishedRuns(context.Background(), msg)
	require.NoError(t, err)
	assert.Equal(t, []string{"run-7", "run-93"}, ids)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_FailUnfinishedRuns_NoneLeft(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`UPDATE analysis_runs SET status = \?`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	ids, err := s.FailUnfinishedRuns(context.Background(), "interrupted")
	require.NoError(t, err)
	assert.Empty(t, ids)
	require.NoError(t, mock.ExpectationsWereMet())
}
