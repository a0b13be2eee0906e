package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/de-tools/swot-atlas/pkg/handlers/reports"
	"github.com/de-tools/swot-atlas/pkg/services/analysis"
	"github.com/de-tools/swot-atlas/pkg/services/export"
	"github.com/de-tools/swot-atlas/pkg/store/artifacts"
	"github.com/de-tools/swot-atlas/pkg/store/reports"

	swotmiddleware "github.com/de-tools/swot-atlas/pkg/server/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router          http.Handler
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Source     artifacts.Source
	Store      reports.Store
	Loader     reports.Loader
	Controller analysis.Controller
	OutputDir  string
	Logger     zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func ConfigureRouter(config Config) http.Handler {
	deps := config.Dependencies
	reportHandler := handlers.NewHandler(
		deps.Store,
		deps.Loader,
		export.NewExporter(deps.Source, deps.Loader),
		deps.OutputDir,
	)
	runHandler := handlers.NewRunsHandler(deps.Controller)

	router := chi.NewRouter()

	router.Use(swotmiddleware.Logger(&deps.Logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/reports", reportHandler.ListReports)
		r.Get("/reports/{accession}", reportHandler.GetReport)
		r.Get("/reports/{accession}/summary", reportHandler.GetSummary)
		r.Get("/reports/{accession}/export.json", reportHandler.ExportJSON)
		r.Get("/reports/{accession}/export.csv", reportHandler.ExportCSV)

		r.Post("/runs", runHandler.StartRun)
		r.Get("/runs", runHandler.ListRuns)
		r.Get("/runs/{id}", runHandler.GetRun)
	})

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router:          router,
		logger:          &logger,
		shutdownTimeout: shutdownTimeout,
		server: &http.Server{
			Addr:              config.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
