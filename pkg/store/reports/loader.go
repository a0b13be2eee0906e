package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/de-tools/swot-atlas/pkg/adapters"
	"github.com/de-tools/swot-atlas/pkg/models/domain"
	"github.com/de-tools/swot-atlas/pkg/models/store"
	"github.com/de-tools/swot-atlas/pkg/store/artifacts"
	"github.com/rs/zerolog"
)

type Loader interface {
	LoadReport(ctx context.Context, path string) (*domain.SwotReport, error)
	LoadEntry(ctx context.Context, entry domain.AnalysisIndexEntry) (*domain.SwotReport, error)
}

// ReportLoader materializes report artifacts. Parsed reports are cached per
// (path, modification time) and returned as deep copies.
type ReportLoader struct {
	source artifacts.Source
	cache  *cache[*domain.SwotReport]
}

func NewLoader(source artifacts.Source) *ReportLoader {
	return &ReportLoader{
		source: source,
		cache:  newCache[*domain.SwotReport](),
	}
}

func (l *ReportLoader) LoadReport(ctx context.Context, path string) (*domain.SwotReport, error) {
	info, err := l.source.Stat(ctx, path)
	if errors.Is(err, artifacts.ErrNotExist) {
		l.cache.invalidate(path)
		return nil, fmt.Errorf("%w: %s", domain.ErrReportNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("stat report: %w", err)
	}

	if report, ok := l.cache.get(path, info); ok {
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("report served from cache")
		return cloneReport(report), nil
	}

	data, err := l.source.ReadFile(ctx, path)
	if errors.Is(err, artifacts.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrReportNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}

	report, err := ParseReport(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	l.cache.put(path, info, report)
	return cloneReport(report), nil
}

// LoadEntry loads the report an index entry points to and checks that its meta
// block describes the same filing.
func (l *ReportLoader) LoadEntry(ctx context.Context, entry domain.AnalysisIndexEntry) (*domain.SwotReport, error) {
	report, err := l.LoadReport(ctx, entry.JSONPath)
	if err != nil {
		return nil, err
	}

	if report.Meta.Accession != entry.Accession || !strings.EqualFold(report.Meta.Ticker, entry.Ticker) {
		return nil, fmt.Errorf("%w: %s describes %s/%s, index entry is %s/%s",
			domain.ErrReportMalformed, entry.JSONPath,
			report.Meta.Ticker, report.Meta.Accession, entry.Ticker, entry.Accession)
	}
	return report, nil
}

func (l *ReportLoader) Invalidate(path string) {
	l.cache.invalidate(path)
}

func (l *ReportLoader) Purge() {
	l.cache.purge()
}

// ParseReport decodes and validates a report artifact. Missing meta, report or
// any of the four categories is a malformed report, never a zero default.
func ParseReport(data []byte) (*domain.SwotReport, error) {
	var file store.ReportFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrReportMalformed, err)
	}
	if err := validate.Struct(file); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrReportMalformed, err)
	}

	return adapters.MapStoreReportToDomain(file), nil
}

// IndentReport re-renders a report artifact indented by two spaces. Keys the
// pipeline wrote beyond the known layout are kept, as are their values.
func IndentReport(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(data), "", "  "); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrReportMalformed, err)
	}
	return buf.Bytes(), nil
}

func cloneReport(report *domain.SwotReport) *domain.SwotReport {
	out := &domain.SwotReport{
		Meta:       report.Meta,
		Categories: make(map[domain.Category]domain.CategoryResult, len(report.Categories)),
	}
	if report.Meta.FilingDate != nil {
		date := *report.Meta.FilingDate
		out.Meta.FilingDate = &date
	}
	for category, result := range report.Categories {
		out.Categories[category] = domain.CategoryResult{
			Count:       result.Count,
			KeyThemes:   append([]string{}, result.KeyThemes...),
			KeyInsights: append([]string{}, result.KeyInsights...),
			TopBullets:  append([]string{}, result.TopBullets...),
		}
	}
	if report.ExecutiveOverview != nil {
		eo := *report.ExecutiveOverview
		out.ExecutiveOverview = &eo
	}
	return out
}
