package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/de-tools/swot-atlas/pkg/models/domain"
	"github.com/de-tools/swot-atlas/pkg/store/artifacts"
	"github.com/de-tools/swot-atlas/pkg/store/reports"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatJSON, FormatCSV:
		return Format(s), nil
	}
	return "", fmt.Errorf("%w: %q (expected json or csv)", ErrUnsupportedFormat, s)
}

// Artifact is a downloadable rendition of one report.
type Artifact struct {
	FileName    string
	ContentType string
	Data        []byte
}

type Exporter struct {
	source artifacts.Source
	loader reports.Loader
}

func NewExporter(source artifacts.Source, loader reports.Loader) *Exporter {
	return &Exporter{
		source: source,
		loader: loader,
	}
}

// Export renders the report behind entry. JSON is the report artifact
// re-indented with every key it carries, CSV is the pipeline's file served
// byte for byte.
func (e *Exporter) Export(ctx context.Context, entry domain.AnalysisIndexEntry, format Format) (*Artifact, error) {
	switch format {
	case FormatJSON:
		// the artifact is validated before it is served
		report, err := e.loader.LoadEntry(ctx, entry)
		if err != nil {
			return nil, err
		}
		raw, err := e.source.ReadFile(ctx, entry.JSONPath)
		if errors.Is(err, artifacts.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrReportNotFound, entry.JSONPath)
		}
		if err != nil {
			return nil, fmt.Errorf("read report: %w", err)
		}
		data, err := reports.IndentReport(raw)
		if err != nil {
			return nil, err
		}
		return &Artifact{
			FileName:    fmt.Sprintf("swot_report_%s.json", report.Meta.Ticker),
			ContentType: "application/json",
			Data:        data,
		}, nil

	case FormatCSV:
		data, err := e.source.ReadFile(ctx, entry.CSVPath)
		if errors.Is(err, artifacts.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrReportNotFound, entry.CSVPath)
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		return &Artifact{
			FileName:    fmt.Sprintf("swot_data_%s.csv", entry.Ticker),
			ContentType: "text/csv",
			Data:        data,
		}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}
