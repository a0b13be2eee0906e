package main

import (
	"context"
	"fmt"
	"os"

	"github.com/de-tools/swot-atlas/pkg/runtime/app"
	"github.com/de-tools/swot-atlas/pkg/runtime/terminal"
	"github.com/de-tools/swot-atlas/pkg/services/config"
	"github.com/rs/zerolog"
)

func main() {
	cli := terminal.NewCLI(terminal.Options{
		Setup:  setup,
		Output: os.Stdout,
	})

	if err := cli.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setup(ctx context.Context, configPath string) (*terminal.Dependencies, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	// stdout carries command output, logs go to stderr
	logger := app.NewLogger(cfg, zerolog.ConsoleWriter{Out: os.Stderr})
	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	return &terminal.Dependencies{
		Source:     a.Source,
		Store:      a.Store,
		Loader:     a.Loader,
		Controller: a.Controller,
		OutputDir:  cfg.OutputDir,
		Close:      a.Close,
		Logger:     &logger,
	}, nil
}
