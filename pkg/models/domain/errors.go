package domain

import "errors"

var (
	ErrReportIndexCorrupt = errors.New("report index corrupt")
	ErrReportNotFound     = errors.New("report not found")
	ErrReportMalformed    = errors.New("report malformed")
	ErrInvalidDateRange   = errors.New("invalid date range")
	ErrInvalidTicker      = errors.New("invalid ticker")
	ErrAnalysisFailed     = errors.New("analysis failed")
	ErrRunInProgress      = errors.New("an analysis run is already in progress")
	ErrRunNotFound        = errors.New("analysis run not found")
)
