package commands

import (
	"fmt"
	"os"

	"github.com/de-tools/swot-atlas/pkg/services/export"
	"github.com/de-tools/swot-atlas/pkg/services/swot"
	"github.com/spf13/cobra"
)

type ListCmd struct {
	env *Env
}

func NewListCmd(env *Env) *cobra.Command {
	lc := &ListCmd{env: env}
	return &cobra.Command{
		Use:   "list",
		Short: "List completed analyses",
		Args:  cobra.NoArgs,
		RunE:  lc.run,
	}
}

func (lc *ListCmd) run(cmd *cobra.Command, _ []string) error {
	index, err := lc.env.Store.ListReports(cmd.Context(), lc.env.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to list reports: %w", err)
	}
	return lc.env.Table.HandleIndex(index)
}

type ShowCmd struct {
	env *Env
}

func NewShowCmd(env *Env) *cobra.Command {
	sc := &ShowCmd{env: env}
	return &cobra.Command{
		Use:   "show <accession>",
		Short: "Show the SWOT summary of one filing",
		Args:  cobra.ExactArgs(1),
		RunE:  sc.run,
	}
}

func (sc *ShowCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	entry, err := sc.env.find(ctx, args[0])
	if err != nil {
		return err
	}
	report, err := sc.env.Loader.LoadEntry(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to load report: %w", err)
	}
	summary, err := swot.Summarize(report)
	if err != nil {
		return err
	}
	return sc.env.Summary.Handle(summary)
}

type ExportCmd struct {
	env    *Env
	format string
	out    string
}

func NewExportCmd(env *Env) *cobra.Command {
	ec := &ExportCmd{env: env}
	cmd := &cobra.Command{
		Use:   "export <accession>",
		Short: "Export a report as JSON or raw CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  ec.run,
	}

	cmd.Flags().StringVar(&ec.format, "format", string(export.FormatJSON), "Export format (json or csv)")
	cmd.Flags().StringVar(&ec.out, "out", "", "Output file (defaults to stdout)")

	return cmd
}

func (ec *ExportCmd) run(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	format, err := export.ParseFormat(ec.format)
	if err != nil {
		return err
	}
	entry, err := ec.env.find(ctx, args[0])
	if err != nil {
		return err
	}
	artifact, err := ec.env.Exporter.Export(ctx, entry, format)
	if err != nil {
		return fmt.Errorf("failed to export report: %w", err)
	}

	if ec.out == "" {
		_, err = cmd.OutOrStdout().Write(artifact.Data)
		return err
	}
	if err := os.WriteFile(ec.out, artifact.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", ec.out, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", ec.out)
	return nil
}
