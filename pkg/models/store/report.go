package store

// ManifestEntry is one element of the index.json array written by the analysis pipeline
type ManifestEntry struct {
	Ticker     string `json:"ticker" validate:"required"`
	FilingDate string `json:"filing_date,omitempty"`
	Accession  string `json:"accession" validate:"required"`
	JSON       string `json:"json" validate:"required"`
	CSV        string `json:"csv" validate:"required"`
}

type ReportFile struct {
	Meta   *ReportMeta `json:"meta" validate:"required"`
	Report *ReportBody `json:"report" validate:"required"`
}

type ReportMeta struct {
	Ticker     string `json:"ticker" validate:"required"`
	FilingDate string `json:"filing_date,omitempty"`
	Accession  string `json:"accession" validate:"required"`
}

// ReportBody has one required key per SWOT category.
type ReportBody struct {
	Strength          *CategoryResult    `json:"Strength" validate:"required"`
	Weakness          *CategoryResult    `json:"Weakness" validate:"required"`
	Opportunity       *CategoryResult    `json:"Opportunity" validate:"required"`
	Threat            *CategoryResult    `json:"Threat" validate:"required"`
	ExecutiveOverview *ExecutiveOverview `json:"executive_overview,omitempty"`
}

type CategoryResult struct {
	Count       *int     `json:"count" validate:"required,gte=0"`
	KeyThemes   []string `json:"key_themes"`
	KeyInsights []string `json:"key_insights"`
	TopBullets  []string `json:"top_bullets"`
}

type ExecutiveOverview struct {
	TotalIndicators  int    `json:"total_indicators"`
	DominantCategory string `json:"dominant_category"`
	AnalysisSummary  string `json:"analysis_summary"`
}
