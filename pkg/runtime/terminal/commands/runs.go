package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/swot-atlas/pkg/adapters"
	"github.com/de-tools/swot-atlas/pkg/models/domain"
	"github.com/spf13/cobra"
)

var errNoController = errors.New("analysis runs are not configured")

type RunCmd struct {
	env    *Env
	ticker string
	start  string
	end    string
}

func NewRunCmd(env *Env) *cobra.Command {
	rc := &RunCmd{env: env}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a SWOT analysis for one ticker",
		Args:  cobra.NoArgs,
		RunE:  rc.run,
	}

	cmd.Flags().StringVar(&rc.ticker, "ticker", "", "Stock ticker symbol (e.g., AAPL)")
	cmd.Flags().StringVar(&rc.start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&rc.end, "end", "", "End date (YYYY-MM-DD)")

	_ = cmd.MarkFlagRequired("ticker")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func (rc *RunCmd) run(cmd *cobra.Command, _ []string) error {
	if rc.env.Controller == nil {
		return errNoController
	}

	start, err := time.Parse(adapters.DateLayout, rc.start)
	if err != nil {
		return fmt.Errorf("%w: start date %q, expected YYYY-MM-DD", domain.ErrInvalidDateRange, rc.start)
	}
	end, err := time.Parse(adapters.DateLayout, rc.end)
	if err != nil {
		return fmt.Errorf("%w: end date %q, expected YYYY-MM-DD", domain.ErrInvalidDateRange, rc.end)
	}

	out := cmd.OutOrStdout()
	run, err := rc.env.Controller.Run(cmd.Context(), domain.RunRequest{
		Ticker:    rc.ticker,
		StartDate: start,
		EndDate:   end,
	}, func(m domain.Milestone) {
		fmt.Fprintf(out, "[%3d%%] %s\n", m.Percent, m.Message)
	})
	if err != nil {
		if run != nil {
			fmt.Fprintf(out, "Run %s %s\n", run.ID, run.Status)
		}
		return err
	}

	fmt.Fprintf(out, "Run %s %s. Use 'list' to see the new results.\n", run.ID, run.Status)
	return nil
}

type RunsCmd struct {
	env *Env
}

func NewRunsCmd(env *Env) *cobra.Command {
	rc := &RunsCmd{env: env}
	return &cobra.Command{
		Use:   "runs",
		Short: "Show recent analysis runs",
		Args:  cobra.NoArgs,
		RunE:  rc.run,
	}
}

func (rc *RunsCmd) run(cmd *cobra.Command, _ []string) error {
	if rc.env.Controller == nil {
		return errNoController
	}

	runs, err := rc.env.Controller.ListRuns(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	return rc.env.Table.HandleRuns(runs)
}
