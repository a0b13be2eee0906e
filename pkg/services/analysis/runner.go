package analysis

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/de-tools/swot-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

const dateLayout = "2006-01-02"

// Pipeline is the external SWOT analysis job. It writes the manifest and report
// artifacts as a side effect.
type Pipeline interface {
	Analyze(ctx context.Context, req PipelineRequest) error
}

type PipelineRequest struct {
	Tickers      []string
	Forms        []string
	StartDate    string
	EndDate      string
	OutputDir    string
	PortfolioDir string
}

type ProgressFunc func(domain.Milestone)

// AnalysisError wraps any failure raised by the pipeline.
type AnalysisError struct {
	Ticker string
	Cause  error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis failed for %s: %v", e.Ticker, e.Cause)
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

func (e *AnalysisError) Is(target error) bool {
	return target == domain.ErrAnalysisFailed
}

type RunnerConfig struct {
	Forms         []string
	OutputDir     string
	PortfolioDir  string
	EarliestStart time.Time
	LatestEnd     time.Time
}

type Runner struct {
	pipeline Pipeline
	config   RunnerConfig
	now      func() time.Time
}

func NewRunner(pipeline Pipeline, config RunnerConfig) *Runner {
	return &Runner{
		pipeline: pipeline,
		config:   config,
		now:      time.Now,
	}
}

func (r *Runner) Forms() []string {
	return slices.Clone(r.config.Forms)
}

// Validate normalizes the ticker and checks the date window. Dates are compared
// as calendar days.
func (r *Runner) Validate(req domain.RunRequest) (domain.RunRequest, error) {
	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))
	if ticker == "" {
		return domain.RunRequest{}, fmt.Errorf("%w: ticker is required", domain.ErrInvalidTicker)
	}

	start, end := day(req.StartDate), day(req.EndDate)
	today := day(r.now())
	switch {
	case start.After(end):
		return domain.RunRequest{}, fmt.Errorf("%w: start %s is after end %s",
			domain.ErrInvalidDateRange, start.Format(dateLayout), end.Format(dateLayout))
	case start.Before(day(r.config.EarliestStart)):
		return domain.RunRequest{}, fmt.Errorf("%w: start %s is before %s",
			domain.ErrInvalidDateRange, start.Format(dateLayout), r.config.EarliestStart.Format(dateLayout))
	case start.After(today):
		return domain.RunRequest{}, fmt.Errorf("%w: start %s is in the future",
			domain.ErrInvalidDateRange, start.Format(dateLayout))
	case end.After(day(r.config.LatestEnd)):
		return domain.RunRequest{}, fmt.Errorf("%w: end %s is after %s",
			domain.ErrInvalidDateRange, end.Format(dateLayout), r.config.LatestEnd.Format(dateLayout))
	}

	return domain.RunRequest{Ticker: ticker, StartDate: start, EndDate: end}, nil
}

// Run validates the request and invokes the pipeline once. Milestones are
// advisory: a failed run leaves whatever the pipeline already wrote.
func (r *Runner) Run(ctx context.Context, req domain.RunRequest, progress ProgressFunc) error {
	req, err := r.Validate(req)
	if err != nil {
		return err
	}
	if progress == nil {
		progress = func(domain.Milestone) {}
	}

	logger := zerolog.Ctx(ctx).With().Str("ticker", req.Ticker).Logger()

	progress(domain.MilestoneInitializing)
	pipelineReq := PipelineRequest{
		Tickers:      []string{req.Ticker},
		Forms:        r.Forms(),
		StartDate:    req.StartDate.Format(dateLayout),
		EndDate:      req.EndDate.Format(dateLayout),
		OutputDir:    r.config.OutputDir,
		PortfolioDir: r.config.PortfolioDir,
	}

	progress(domain.MilestoneFetching)
	logger.Info().
		Strs("forms", pipelineReq.Forms).
		Str("start", pipelineReq.StartDate).
		Str("end", pipelineReq.EndDate).
		Msg("starting analysis pipeline")

	progress(domain.MilestoneProcessing)
	if err := r.analyze(ctx, pipelineReq); err != nil {
		logger.Error().Err(err).Msg("analysis pipeline failed")
		return &AnalysisError{Ticker: req.Ticker, Cause: err}
	}

	progress(domain.MilestoneComplete)
	logger.Info().Msg("analysis pipeline finished")
	return nil
}

func (r *Runner) analyze(ctx context.Context, req PipelineRequest) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("pipeline panic: %v", rec)
		}
	}()
	return r.pipeline.Analyze(ctx, req)
}

func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
