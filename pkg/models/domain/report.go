package domain

import "time"

type Category string

const (
	CategoryStrength    Category = "Strength"
	CategoryWeakness    Category = "Weakness"
	CategoryOpportunity Category = "Opportunity"
	CategoryThreat      Category = "Threat"
)

// Categories is the fixed SWOT order. Charts render slices in this order.
var Categories = []Category{
	CategoryStrength,
	CategoryWeakness,
	CategoryOpportunity,
	CategoryThreat,
}

// AnalysisIndexEntry describes one completed ticker/filing analysis listed in the manifest
type AnalysisIndexEntry struct {
	Ticker     string
	FilingDate *time.Time
	Accession  string
	JSONPath   string
	CSVPath    string
}

// Index is the ordered manifest content. Order is write order, not chronological.
type Index []AnalysisIndexEntry

func (idx Index) Find(accession string) (AnalysisIndexEntry, bool) {
	for _, entry := range idx {
		if entry.Accession == accession {
			return entry, true
		}
	}
	return AnalysisIndexEntry{}, false
}

type ReportMeta struct {
	Ticker     string
	FilingDate *time.Time
	Accession  string
}

type CategoryResult struct {
	Count       int // over the full evidence set, not len(TopBullets)
	KeyThemes   []string
	KeyInsights []string
	TopBullets  []string
}

type ExecutiveOverview struct {
	TotalIndicators  int
	DominantCategory string
	AnalysisSummary  string
}

// SwotReport is the full content of one report artifact
type SwotReport struct {
	Meta              ReportMeta
	Categories        map[Category]CategoryResult
	ExecutiveOverview *ExecutiveOverview
}

type CategoryCount struct {
	Category Category
	Count    int
}

// SwotSummary holds the views derived from a SwotReport
type SwotSummary struct {
	Meta         ReportMeta
	Counts       map[Category]int
	Distribution []CategoryCount
	CountTotal   int
	KeyThemes    map[Category][]string
	KeyInsights  map[Category][]string
	TopBullets   map[Category][]string

	// Passed through as produced upstream, never recomputed.
	ExecutiveOverview *ExecutiveOverview
}

// DominantCategory returns the upstream value when an executive overview exists.
// Otherwise it picks the first category reaching the maximum count in Categories order.
func (s SwotSummary) DominantCategory() string {
	if s.ExecutiveOverview != nil {
		return s.ExecutiveOverview.DominantCategory
	}
	if len(s.Distribution) == 0 {
		return ""
	}

	dominant := s.Distribution[0]
	for _, cc := range s.Distribution[1:] {
		if cc.Count > dominant.Count {
			dominant = cc
		}
	}
	return string(dominant.Category)
}

// OverviewConsistent reports whether the upstream total matches the category counts.
// A missing overview is trivially consistent.
func (s SwotSummary) OverviewConsistent() bool {
	if s.ExecutiveOverview == nil {
		return true
	}
	return s.ExecutiveOverview.TotalIndicators == s.CountTotal
}
