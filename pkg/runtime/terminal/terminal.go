package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/de-tools/swot-atlas/pkg/runtime/terminal/commands"
	table "github.com/de-tools/swot-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/swot-atlas/pkg/services/analysis"
	"github.com/de-tools/swot-atlas/pkg/services/export"
	"github.com/de-tools/swot-atlas/pkg/store/artifacts"
	"github.com/de-tools/swot-atlas/pkg/store/reports"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Dependencies are the services the commands operate on.
type Dependencies struct {
	Source     artifacts.Source
	Store      reports.Store
	Loader     reports.Loader
	Controller analysis.Controller
	OutputDir  string
	Close      func() error
	Logger     *zerolog.Logger
}

// SetupFunc builds the dependencies once the --config flag is known.
type SetupFunc func(ctx context.Context, configPath string) (*Dependencies, error)

// CLI represents the command-line interface
type CLI struct {
	setup      SetupFunc
	configPath string
	env        *commands.Env
	closer     func() error
	rootCmd    *cobra.Command
}

// Options contain configuration for the CLI
type Options struct {
	Setup  SetupFunc
	Output io.Writer
}

func NewCLI(opts Options) *CLI {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	cli := &CLI{
		setup: opts.Setup,
		env: &commands.Env{
			Table:   table.NewReporter(opts.Output),
			Summary: NewReporter(opts.Output),
		},
	}

	cli.rootCmd = cli.newRootCmd()
	cli.rootCmd.SetOut(opts.Output)
	return cli
}

func (cli *CLI) Execute(ctx context.Context) error {
	return cli.rootCmd.ExecuteContext(ctx)
}

func (cli *CLI) SetArgs(args []string) {
	cli.rootCmd.SetArgs(args)
}

func (cli *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "swot",
		Short:             "SEC filing SWOT analysis reports",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: cli.init,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if cli.closer != nil {
				return cli.closer()
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cli.configPath, "config", "", "Path to the configuration file")

	cmd.AddCommand(commands.NewListCmd(cli.env))
	cmd.AddCommand(commands.NewShowCmd(cli.env))
	cmd.AddCommand(commands.NewExportCmd(cli.env))
	cmd.AddCommand(commands.NewRunCmd(cli.env))
	cmd.AddCommand(commands.NewRunsCmd(cli.env))

	return cmd
}

func (cli *CLI) init(cmd *cobra.Command, _ []string) error {
	if cli.setup == nil {
		return errors.New("cli has no setup function")
	}

	deps, err := cli.setup(cmd.Context(), cli.configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	if deps.Logger != nil {
		cmd.SetContext(deps.Logger.WithContext(cmd.Context()))
	}

	cli.env.Store = deps.Store
	cli.env.Loader = deps.Loader
	cli.env.Exporter = export.NewExporter(deps.Source, deps.Loader)
	cli.env.Controller = deps.Controller
	cli.env.OutputDir = deps.OutputDir
	cli.closer = deps.Close
	return nil
}
