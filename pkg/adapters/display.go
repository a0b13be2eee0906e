package adapters

import (
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/de-tools/swot-atlas/pkg/models/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	NotAvailable      = "N/A"
	UnknownDate       = "Unknown Date"
	SummaryDisplayLen = 50
	AccessionLabelLen = 12
	displayEllipsis   = "..."
)

// CategoryColors are the chart slice colours, keyed by category.
var CategoryColors = map[domain.Category]string{
	domain.CategoryStrength:    "#38a169",
	domain.CategoryWeakness:    "#e53e3e",
	domain.CategoryOpportunity: "#4299e1",
	domain.CategoryThreat:      "#ed8936",
}

var titleCaser = cases.Title(language.English)

// Truncate shortens s to n runes and appends an ellipsis when anything was cut.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + displayEllipsis
}

// EntryLabel renders a selector label. The accession is always shown as a prefix.
func EntryLabel(entry domain.AnalysisIndexEntry) string {
	date := UnknownDate
	if entry.FilingDate != nil {
		date = FormatFilingDate(entry.FilingDate)
	}
	accession := []rune(entry.Accession)
	if len(accession) > AccessionLabelLen {
		accession = accession[:AccessionLabelLen]
	}
	return fmt.Sprintf("%s - %s (%s%s)", entry.Ticker, date, string(accession), displayEllipsis)
}

func FilingDateOrNA(date *time.Time) string {
	if date == nil {
		return NotAvailable
	}
	return FormatFilingDate(date)
}

// OverviewDisplayFields renders the executive overview cards, N/A when absent.
func OverviewDisplayFields(eo *domain.ExecutiveOverview) (total, dominant, summary string) {
	if eo == nil {
		return NotAvailable, NotAvailable, NotAvailable
	}

	total = strconv.Itoa(eo.TotalIndicators)
	dominant = NotAvailable
	if eo.DominantCategory != "" {
		dominant = titleCaser.String(eo.DominantCategory)
	}
	summary = NotAvailable
	if eo.AnalysisSummary != "" {
		summary = Truncate(eo.AnalysisSummary, SummaryDisplayLen)
	}
	return total, dominant, summary
}
