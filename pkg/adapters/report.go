package adapters

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/de-tools/swot-atlas/pkg/models/domain"
	"github.com/de-tools/swot-atlas/pkg/models/store"
)

const DateLayout = "2006-01-02"

var ErrUnknownFilingDate = errors.New("unrecognised filing date")

// filingDateLayouts are tried in order. Fractional seconds are accepted after
// any seconds field.
var filingDateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"20060102",
}

// ParseFilingDate accepts a calendar date or one of the common timestamp forms.
// Empty means unknown.
func ParseFilingDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range filingDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownFilingDate, value)
}

func FormatFilingDate(date *time.Time) string {
	if date == nil {
		return ""
	}
	return date.Format(DateLayout)
}

// filingDateOrUnknown treats a date it cannot read as unknown.
func filingDateOrUnknown(value string) *time.Time {
	date, err := ParseFilingDate(value)
	if err != nil {
		return nil
	}
	return date
}

func MapStoreManifestEntryToDomain(entry store.ManifestEntry) domain.AnalysisIndexEntry {
	return domain.AnalysisIndexEntry{
		Ticker:     entry.Ticker,
		FilingDate: filingDateOrUnknown(entry.FilingDate),
		Accession:  entry.Accession,
		JSONPath:   entry.JSON,
		CSVPath:    entry.CSV,
	}
}

func MapStoreReportToDomain(file store.ReportFile) *domain.SwotReport {
	report := &domain.SwotReport{
		Meta: domain.ReportMeta{
			Ticker:     file.Meta.Ticker,
			FilingDate: filingDateOrUnknown(file.Meta.FilingDate),
			Accession:  file.Meta.Accession,
		},
		Categories: map[domain.Category]domain.CategoryResult{
			domain.CategoryStrength:    mapStoreCategoryToDomain(file.Report.Strength),
			domain.CategoryWeakness:    mapStoreCategoryToDomain(file.Report.Weakness),
			domain.CategoryOpportunity: mapStoreCategoryToDomain(file.Report.Opportunity),
			domain.CategoryThreat:      mapStoreCategoryToDomain(file.Report.Threat),
		},
	}

	if eo := file.Report.ExecutiveOverview; eo != nil {
		report.ExecutiveOverview = &domain.ExecutiveOverview{
			TotalIndicators:  eo.TotalIndicators,
			DominantCategory: eo.DominantCategory,
			AnalysisSummary:  eo.AnalysisSummary,
		}
	}

	return report
}

func mapStoreCategoryToDomain(result *store.CategoryResult) domain.CategoryResult {
	return domain.CategoryResult{
		Count:       *result.Count,
		KeyThemes:   cloneOrEmpty(result.KeyThemes),
		KeyInsights: cloneOrEmpty(result.KeyInsights),
		TopBullets:  cloneOrEmpty(result.TopBullets),
	}
}

func cloneOrEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return slices.Clone(values)
}
