package swot

import (
	"fmt"

	"github.com/de-tools/swot-atlas/pkg/models/domain"
)

// MaxBullets is the number of evidence bullets surfaced per category.
const MaxBullets = 3

// Summarize derives counts, distribution and per-category highlights from a report.
// The executive overview is passed through as produced upstream.
func Summarize(report *domain.SwotReport) (domain.SwotSummary, error) {
	if report == nil {
		return domain.SwotSummary{}, fmt.Errorf("%w: nil report", domain.ErrReportMalformed)
	}

	summary := domain.SwotSummary{
		Meta:         report.Meta,
		Counts:       make(map[domain.Category]int, len(domain.Categories)),
		Distribution: make([]domain.CategoryCount, 0, len(domain.Categories)),
		KeyThemes:    make(map[domain.Category][]string, len(domain.Categories)),
		KeyInsights:  make(map[domain.Category][]string, len(domain.Categories)),
		TopBullets:   make(map[domain.Category][]string, len(domain.Categories)),
	}

	for _, category := range domain.Categories {
		result, ok := report.Categories[category]
		if !ok {
			return domain.SwotSummary{}, fmt.Errorf("%w: missing category %s", domain.ErrReportMalformed, category)
		}

		summary.Counts[category] = result.Count
		summary.Distribution = append(summary.Distribution, domain.CategoryCount{
			Category: category,
			Count:    result.Count,
		})
		summary.CountTotal += result.Count
		summary.KeyThemes[category] = append([]string{}, result.KeyThemes...)
		summary.KeyInsights[category] = append([]string{}, result.KeyInsights...)
		summary.TopBullets[category] = TopBullets(result, MaxBullets)
	}

	if report.ExecutiveOverview != nil {
		eo := *report.ExecutiveOverview
		summary.ExecutiveOverview = &eo
	}

	return summary, nil
}

// TopBullets returns a copy of at most n bullets; the stored slice is untouched.
func TopBullets(result domain.CategoryResult, n int) []string {
	if n < 0 {
		n = 0
	}
	bullets := result.TopBullets
	if len(bullets) > n {
		bullets = bullets[:n]
	}
	return append([]string{}, bullets...)
}
