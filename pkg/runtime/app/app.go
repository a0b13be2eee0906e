package app

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/de-tools/swot-atlas/pkg/services/analysis"
	"github.com/de-tools/swot-atlas/pkg/services/config"
	"github.com/de-tools/swot-atlas/pkg/store/artifacts"
	"github.com/de-tools/swot-atlas/pkg/store/duckdb"
	"github.com/de-tools/swot-atlas/pkg/store/duckdb/runs"
	"github.com/de-tools/swot-atlas/pkg/store/reports"
	"github.com/rs/zerolog"
)

// App holds the wired services shared by the CLI and the web server.
type App struct {
	Config     *config.Config
	Logger     zerolog.Logger
	Source     artifacts.Source
	Store      *reports.ManifestStore
	Loader     *reports.ReportLoader
	Controller *analysis.DefaultController

	db *sql.DB
}

func NewLogger(cfg *config.Config, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stdout
	}
	return zerolog.New(w).
		Level(cfg.Level()).
		With().
		Timestamp().
		Logger()
}

// New wires every component from cfg. The caller owns Close.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*App, error) {
	ctx = logger.WithContext(ctx)

	source, err := newSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	earliest, latest, err := cfg.DateBounds()
	if err != nil {
		return nil, err
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: cfg.DBPath})
	if err != nil {
		return nil, fmt.Errorf("failed to create DuckDB instance: %w", err)
	}

	runStore, err := runs.NewStore(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create run store: %w", err)
	}

	store := reports.NewStore(source)
	loader := reports.NewLoader(source)

	runner := analysis.NewRunner(
		analysis.NewCommandPipeline(cfg.Pipeline.Command, cfg.Pipeline.Args, cfg.Pipeline.Timeout),
		analysis.RunnerConfig{
			Forms:         cfg.Forms,
			OutputDir:     cfg.OutputDir,
			PortfolioDir:  cfg.PortfolioDir,
			EarliestStart: earliest,
			LatestEnd:     latest,
		},
	)
	controller := analysis.NewController(db, runner, runStore, store, loader)
	if err := controller.Init(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize run controller: %w", err)
	}

	logger.Debug().
		Str("source", cfg.Source).
		Str("output_dir", cfg.OutputDir).
		Str("db_path", cfg.DBPath).
		Msg("application wired")

	return &App{
		Config:     cfg,
		Logger:     logger,
		Source:     source,
		Store:      store,
		Loader:     loader,
		Controller: controller,
		db:         db,
	}, nil
}

// Close waits for a background run to finish and closes the database.
func (a *App) Close() error {
	a.Controller.Wait()
	return a.db.Close()
}

func newSource(ctx context.Context, cfg *config.Config) (artifacts.Source, error) {
	if cfg.Source != "s3" {
		return artifacts.NewFSSource(), nil
	}

	var opts []func(*awsconfig.LoadOptions) error
	if cfg.S3.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.S3.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return artifacts.NewS3Source(awsCfg, cfg.S3.Bucket, cfg.S3.Prefix), nil
}
