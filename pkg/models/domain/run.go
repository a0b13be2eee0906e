package domain

import "time"

type RunStatus string

const (
	RunStatusPending  RunStatus = "pending"
	RunStatusRunning  RunStatus = "running"
	RunStatusFinished RunStatus = "finished"
	RunStatusFailed   RunStatus = "failed"
)

type Stage string

const (
	StageInitializing Stage = "initializing"
	StageFetching     Stage = "fetching"
	StageProcessing   Stage = "processing"
	StageComplete     Stage = "complete"
)

// Milestone is an advisory progress report. It carries no transactional meaning.
type Milestone struct {
	Stage   Stage
	Percent int
	Message string
}

var (
	MilestoneInitializing = Milestone{Stage: StageInitializing, Percent: 20, Message: "Initializing analysis..."}
	MilestoneFetching     = Milestone{Stage: StageFetching, Percent: 40, Message: "Running SWOT analysis..."}
	MilestoneProcessing   = Milestone{Stage: StageProcessing, Percent: 60, Message: "Processing filings..."}
	MilestoneComplete     = Milestone{Stage: StageComplete, Percent: 100, Message: "Analysis complete!"}
)

type RunRequest struct {
	Ticker    string
	StartDate time.Time
	EndDate   time.Time
}

type AnalysisRun struct {
	ID        string
	Ticker    string
	StartDate time.Time
	EndDate   time.Time
	Forms     []string
	Status    RunStatus
	Stage     Stage
	Progress  int
	CreatedAt time.Time
	UpdatedAt time.Time
	Error     *string
}
