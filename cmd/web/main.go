package main

import (
	"fmt"
	"net"
	"os"

	"github.com/de-tools/swot-atlas/pkg/runtime/app"
	"github.com/de-tools/swot-atlas/pkg/server"
	"github.com/de-tools/swot-atlas/pkg/services/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for SWOT Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the configuration file (optional, SWOT_ATLAS_* variables override it)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return err
	}

	logger := app.NewLogger(cfg, os.Stdout)
	ctx := logger.WithContext(cmd.Context())

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close application")
		}
	}()

	if cfgPath != "" {
		logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfgPath)
	}
	logger.Info().
		Str("source", cfg.Source).
		Str("output_dir", cfg.OutputDir).
		Msg("serving SWOT reports")

	api := server.NewWebAPI(server.Config{
		Addr: net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Dependencies: server.Dependencies{
			Source:     a.Source,
			Store:      a.Store,
			Loader:     a.Loader,
			Controller: a.Controller,
			OutputDir:  cfg.OutputDir,
			Logger:     logger,
		},
	})

	return api.Start()
}
