package adapters

import (
	"github.com/de-tools/swot-atlas/pkg/models/api"
	"github.com/de-tools/swot-atlas/pkg/models/domain"
)

func MapIndexEntryDomainToApi(entry domain.AnalysisIndexEntry) api.IndexEntry {
	var filingDate *string
	if entry.FilingDate != nil {
		formatted := FormatFilingDate(entry.FilingDate)
		filingDate = &formatted
	}

	return api.IndexEntry{
		Ticker:     entry.Ticker,
		FilingDate: filingDate,
		Accession:  entry.Accession,
		Label:      EntryLabel(entry),
	}
}

func MapIndexDomainToApi(index domain.Index) []api.IndexEntry {
	response := make([]api.IndexEntry, 0, len(index))
	for _, entry := range index {
		response = append(response, MapIndexEntryDomainToApi(entry))
	}
	return response
}

func mapMetaDomainToApi(meta domain.ReportMeta) api.ReportMeta {
	return api.ReportMeta{
		Ticker:     meta.Ticker,
		FilingDate: FilingDateOrNA(meta.FilingDate),
		Accession:  meta.Accession,
	}
}

func mapOverviewDomainToApi(eo *domain.ExecutiveOverview) *api.ExecutiveOverview {
	if eo == nil {
		return nil
	}
	return &api.ExecutiveOverview{
		TotalIndicators:  eo.TotalIndicators,
		DominantCategory: eo.DominantCategory,
		AnalysisSummary:  eo.AnalysisSummary,
	}
}

func MapReportDomainToApi(report *domain.SwotReport) api.Report {
	categories := make(map[string]api.CategoryResult, len(report.Categories))
	for category, result := range report.Categories {
		categories[string(category)] = api.CategoryResult{
			Count:       result.Count,
			KeyThemes:   cloneOrEmpty(result.KeyThemes),
			KeyInsights: cloneOrEmpty(result.KeyInsights),
			TopBullets:  cloneOrEmpty(result.TopBullets),
		}
	}

	return api.Report{
		Meta:              mapMetaDomainToApi(report.Meta),
		Categories:        categories,
		ExecutiveOverview: mapOverviewDomainToApi(report.ExecutiveOverview),
	}
}

func MapSummaryDomainToApi(summary domain.SwotSummary) api.Summary {
	distribution := make([]api.DistributionSlice, 0, len(summary.Distribution))
	for _, cc := range summary.Distribution {
		distribution = append(distribution, api.DistributionSlice{
			Category: string(cc.Category),
			Count:    cc.Count,
			Color:    CategoryColors[cc.Category],
		})
	}

	categories := make(map[string]api.CategoryResult, len(summary.Counts))
	for _, category := range domain.Categories {
		categories[string(category)] = api.CategoryResult{
			Count:       summary.Counts[category],
			KeyThemes:   cloneOrEmpty(summary.KeyThemes[category]),
			KeyInsights: cloneOrEmpty(summary.KeyInsights[category]),
			TopBullets:  cloneOrEmpty(summary.TopBullets[category]),
		}
	}

	total, dominant, text := OverviewDisplayFields(summary.ExecutiveOverview)

	return api.Summary{
		Meta:              mapMetaDomainToApi(summary.Meta),
		Distribution:      distribution,
		CountTotal:        summary.CountTotal,
		DominantCategory:  summary.DominantCategory(),
		Categories:        categories,
		ExecutiveOverview: mapOverviewDomainToApi(summary.ExecutiveOverview),
		Overview: api.OverviewDisplay{
			TotalIndicators:  total,
			DominantCategory: dominant,
			AnalysisSummary:  text,
		},
		OverviewConsistent: summary.OverviewConsistent(),
	}
}
