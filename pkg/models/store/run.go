package store

import "time"

// AnalysisRun is the analysis_runs row layout
type AnalysisRun struct {
	ID        string
	Ticker    string
	StartDate time.Time
	EndDate   time.Time
	Forms     []string
	Status    string
	Stage     string
	Progress  int
	CreatedAt time.Time
	UpdatedAt time.Time
	Error     *string
}

type RunIdentity struct {
	ID string
}
