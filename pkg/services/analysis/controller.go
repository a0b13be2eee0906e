package analysis

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/de-tools/swot-atlas/pkg/adapters"
	"github.com/de-tools/swot-atlas/pkg/models/domain"
	"github.com/de-tools/swot-atlas/pkg/models/store"
	"github.com/de-tools/swot-atlas/pkg/store/duckdb"
	"github.com/de-tools/swot-atlas/pkg/store/duckdb/runs"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	DefaultListLimit = 50
	interruptedError = "interrupted: the process stopped before the run finished"
)

type Controller interface {
	Run(ctx context.Context, req domain.RunRequest, progress ProgressFunc) (*domain.AnalysisRun, error)
	Start(ctx context.Context, req domain.RunRequest) (*domain.AnalysisRun, error)
	GetRun(ctx context.Context, id string) (*domain.AnalysisRun, error)
	ListRuns(ctx context.Context) ([]*domain.AnalysisRun, error)
}

// Purger drops cached artifacts so the next read sees fresh pipeline output.
type Purger interface {
	Purge()
}

type DefaultController struct {
	db       *sql.DB
	runner   *Runner
	runStore runs.Store
	purgers  []Purger
	now      func() time.Time

	mu     sync.Mutex
	active string
	wg     sync.WaitGroup
}

func NewController(db *sql.DB, runner *Runner, runStore runs.Store, purgers ...Purger) *DefaultController {
	return &DefaultController{
		db:       db,
		runner:   runner,
		runStore: runStore,
		purgers:  purgers,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Init fails runs left pending or running by a previous process.
func (ctrl *DefaultController) Init(ctx context.Context) error {
	ids, err := ctrl.runStore.FailUnfinishedRuns(ctx, interruptedError)
	if err != nil {
		return fmt.Errorf("fail interrupted runs: %w", err)
	}
	for _, id := range ids {
		zerolog.Ctx(ctx).Warn().Str("run", id).Msg("marked interrupted run as failed")
	}
	return nil
}

// Run executes an analysis synchronously and returns the final run record.
// The pipeline error, if any, is returned alongside the record.
func (ctrl *DefaultController) Run(ctx context.Context, req domain.RunRequest, progress ProgressFunc) (*domain.AnalysisRun, error) {
	run, err := ctrl.begin(ctx, req)
	if err != nil {
		return nil, err
	}

	runErr := ctrl.execute(ctx, run, progress)
	final, err := ctrl.GetRun(ctx, run.ID)
	if err != nil {
		return nil, errors.Join(runErr, err)
	}
	return final, runErr
}

// Start records a pending run and executes it in the background.
func (ctrl *DefaultController) Start(ctx context.Context, req domain.RunRequest) (*domain.AnalysisRun, error) {
	run, err := ctrl.begin(ctx, req)
	if err != nil {
		return nil, err
	}

	ctrl.wg.Add(1)
	go func() {
		defer ctrl.wg.Done()
		_ = ctrl.execute(context.WithoutCancel(ctx), run, nil)
	}()
	return run, nil
}

// Wait blocks until no background run is executing.
func (ctrl *DefaultController) Wait() {
	ctrl.wg.Wait()
}

func (ctrl *DefaultController) GetRun(ctx context.Context, id string) (*domain.AnalysisRun, error) {
	run, err := ctrl.runStore.GetRun(ctx, store.RunIdentity{ID: id})
	if errors.Is(err, runs.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", domain.ErrRunNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return adapters.MapStoreRunToDomain(run), nil
}

func (ctrl *DefaultController) ListRuns(ctx context.Context) ([]*domain.AnalysisRun, error) {
	stored, err := ctrl.runStore.ListRuns(ctx, DefaultListLimit)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.AnalysisRun, 0, len(stored))
	for _, run := range stored {
		result = append(result, adapters.MapStoreRunToDomain(run))
	}
	return result, nil
}

// begin validates the request, claims the single run slot and records a pending run.
func (ctrl *DefaultController) begin(ctx context.Context, req domain.RunRequest) (*domain.AnalysisRun, error) {
	req, err := ctrl.runner.Validate(req)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	if err := ctrl.acquire(id); err != nil {
		return nil, err
	}

	now := ctrl.now()
	run := &domain.AnalysisRun{
		ID:        id,
		Ticker:    req.Ticker,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Forms:     ctrl.runner.Forms(),
		Status:    domain.RunStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := ctrl.runStore.CreateRun(ctx, adapters.MapDomainRunToStore(run)); err != nil {
		ctrl.release(id)
		return nil, fmt.Errorf("create run: %w", err)
	}
	return run, nil
}

func (ctrl *DefaultController) execute(ctx context.Context, run *domain.AnalysisRun, progress ProgressFunc) error {
	defer ctrl.release(run.ID)

	logger := zerolog.Ctx(ctx).With().Str("run", run.ID).Str("ticker", run.Ticker).Logger()
	ctx = logger.WithContext(ctx)
	identity := store.RunIdentity{ID: run.ID}

	if err := ctrl.runStore.UpdateRunStatus(ctx, identity, string(domain.RunStatusRunning), nil); err != nil {
		logger.Error().Err(err).Msg("failed to mark run as running")
	}

	runErr := ctrl.runner.Run(ctx, domain.RunRequest{
		Ticker:    run.Ticker,
		StartDate: run.StartDate,
		EndDate:   run.EndDate,
	}, func(m domain.Milestone) {
		// complete is recorded together with the final status
		if m.Stage != domain.StageComplete {
			if err := ctrl.runStore.ProgressRun(ctx, identity, string(m.Stage), m.Percent); err != nil {
				logger.Warn().Err(err).Str("stage", string(m.Stage)).Msg("failed to record progress")
			}
		}
		if progress != nil {
			progress(m)
		}
	})

	if err := ctrl.finish(ctx, identity, runErr); err != nil {
		logger.Error().Err(err).Msg("failed to record run result")
	}

	for _, p := range ctrl.purgers {
		p.Purge()
	}
	return runErr
}

func (ctrl *DefaultController) finish(ctx context.Context, id store.RunIdentity, runErr error) error {
	tx, err := ctrl.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()
	txCtx := duckdb.WithTransaction(ctx, tx)

	if runErr != nil {
		msg := runErr.Error()
		if err := ctrl.runStore.UpdateRunStatus(txCtx, id, string(domain.RunStatusFailed), &msg); err != nil {
			return err
		}
	} else {
		complete := domain.MilestoneComplete
		if err := ctrl.runStore.ProgressRun(txCtx, id, string(complete.Stage), complete.Percent); err != nil {
			return err
		}
		if err := ctrl.runStore.UpdateRunStatus(txCtx, id, string(domain.RunStatusFinished), nil); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (ctrl *DefaultController) acquire(id string) error {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()

	if ctrl.active != "" {
		return fmt.Errorf("%w: %s", domain.ErrRunInProgress, ctrl.active)
	}
	ctrl.active = id
	return nil
}

func (ctrl *DefaultController) release(id string) {
	ctrl.mu.Lock()
	defer ctrl.mu.Unlock()

	if ctrl.active == id {
		ctrl.active = ""
	}
}
