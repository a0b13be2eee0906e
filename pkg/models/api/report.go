package api

import "time"

type IndexEntry struct {
	Ticker     string  `json:"ticker"`
	FilingDate *string `json:"filing_date,omitempty"`
	Accession  string  `json:"accession"`
	Label      string  `json:"label"`
}

type CategoryResult struct {
	Count       int      `json:"count"`
	KeyThemes   []string `json:"key_themes"`
	KeyInsights []string `json:"key_insights"`
	TopBullets  []string `json:"top_bullets"`
}

type ReportMeta struct {
	Ticker     string `json:"ticker"`
	FilingDate string `json:"filing_date"`
	Accession  string `json:"accession"`
}

type ExecutiveOverview struct {
	TotalIndicators  int    `json:"total_indicators"`
	DominantCategory string `json:"dominant_category"`
	AnalysisSummary  string `json:"analysis_summary"`
}

type Report struct {
	Meta              ReportMeta                `json:"meta"`
	Categories        map[string]CategoryResult `json:"categories"`
	ExecutiveOverview *ExecutiveOverview        `json:"executive_overview,omitempty"`
}

type DistributionSlice struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Color    string `json:"color"`
}

// OverviewDisplay carries display-ready strings; absent values are "N/A".
type OverviewDisplay struct {
	TotalIndicators  string `json:"total_indicators"`
	DominantCategory string `json:"dominant_category"`
	AnalysisSummary  string `json:"analysis_summary"`
}

type Summary struct {
	Meta               ReportMeta                `json:"meta"`
	Distribution       []DistributionSlice       `json:"distribution"`
	CountTotal         int                       `json:"count_total"`
	DominantCategory   string                    `json:"dominant_category"`
	Categories         map[string]CategoryResult `json:"categories"`
	ExecutiveOverview  *ExecutiveOverview        `json:"executive_overview,omitempty"`
	Overview           OverviewDisplay           `json:"overview"`
	OverviewConsistent bool                      `json:"overview_consistent"`
}

type RunRequest struct {
	Ticker    string `json:"ticker"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type Run struct {
	ID        string    `json:"id"`
	Ticker    string    `json:"ticker"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	Forms     []string  `json:"forms"`
	Status    string    `json:"status"`
	Stage     string    `json:"stage,omitempty"`
	Progress  int       `json:"progress"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Error     *string   `json:"error,omitempty"`
}

type Error struct {
	Error string `json:"error"`
}
