package commands

import (
	"context"
	"fmt"

	"github.com/de-tools/swot-atlas/pkg/models/domain"
	table "github.com/de-tools/swot-atlas/pkg/runtime/terminal/export"
	"github.com/de-tools/swot-atlas/pkg/services/analysis"
	"github.com/de-tools/swot-atlas/pkg/services/export"
	"github.com/de-tools/swot-atlas/pkg/store/reports"
)

// SummaryHandler renders one aggregated report.
type SummaryHandler interface {
	Handle(summary domain.SwotSummary) error
}

// Env is shared by all commands. The root command populates it once flags are parsed.
type Env struct {
	Store      reports.Store
	Loader     reports.Loader
	Exporter   *export.Exporter
	Controller analysis.Controller
	OutputDir  string

	Table   *table.Reporter
	Summary SummaryHandler
}

func (e *Env) find(ctx context.Context, accession string) (domain.AnalysisIndexEntry, error) {
	index, err := e.Store.ListReports(ctx, e.OutputDir)
	if err != nil {
		return domain.AnalysisIndexEntry{}, err
	}
	entry, ok := index.Find(accession)
	if !ok {
		return domain.AnalysisIndexEntry{}, fmt.Errorf("%w: no index entry for accession %s", domain.ErrReportNotFound, accession)
	}
	return entry, nil
}
