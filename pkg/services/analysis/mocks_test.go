package analysis

import (
	"context"
	"time"

	"github.com/de-tools/swot-atlas/pkg/models/store"
	"github.com/stretchr/testify/mock"
)

type mockPipeline struct {
	mock.Mock
}

func (m *mockPipeline) Analyze(ctx context.Context, req PipelineRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

type mockRunStore struct {
	mock.Mock
}

func (m *mockRunStore) CreateRun(ctx context.Context, run *store.AnalysisRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *mockRunStore) ProgressRun(ctx context.Context, id store.RunIdentity, stage string, progress int) error {
	args := m.Called(ctx, id, stage, progress)
	return args.Error(0)
}

func (m *mockRunStore) UpdateRunStatus(ctx context.Context, id store.RunIdentity, status string, runErr *string) error {
	args := m.Called(ctx, id, status, runErr)
	return args.Error(0)
}

func (m *mockRunStore) GetRun(ctx context.Context, id store.RunIdentity) (*store.AnalysisRun, error) {
	args := m.Called(ctx, id)
	if fn, ok := args.Get(0).(func(context.Context, store.RunIdentity) *store.AnalysisRun); ok {
		return fn(ctx, id), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.AnalysisRun), args.Error(1)
}

func (m *mockRunStore) ListRuns(ctx context.Context, limit int) ([]*store.AnalysisRun, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*store.AnalysisRun), args.Error(1)
}

func (m *mockRunStore) FailUnfinishedRuns(ctx context.Context, runErr string) ([]string, error) {
	args := m.Called(ctx, runErr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type countingPurger struct {
	calls int
}

func (p *countingPurger) Purge() {
	p.calls++
}

func date(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func testRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Forms:         []string{"10-K"},
		OutputDir:     "sec_swot_output",
		PortfolioDir:  "sec_portfolio",
		EarliestStart: date("2020-01-01"),
		LatestEnd:     date("2025-12-31"),
	}
}

func newTestRunner(p Pipeline) *Runner {
	r := NewRunner(p, testRunnerConfig())
	r.now = func() time.Time { return date("2025-06-15") }
	return r
}
