package adapters

import (
	"slices"

	"github.com/de-tools/swot-atlas/pkg/models/api"
	"github.com/de-tools/swot-atlas/pkg/models/domain"
	"github.com/de-tools/swot-atlas/pkg/models/store"
)

func MapStoreRunToDomain(r *store.AnalysisRun) *domain.AnalysisRun {
	if r == nil {
		return nil
	}

	return &domain.AnalysisRun{
		ID:        r.ID,
		Ticker:    r.Ticker,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Forms:     slices.Clone(r.Forms),
		Status:    domain.RunStatus(r.Status),
		Stage:     domain.Stage(r.Stage),
		Progress:  r.Progress,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		Error:     r.Error,
	}
}

func MapDomainRunToStore(r *domain.AnalysisRun) *store.AnalysisRun {
	return &store.AnalysisRun{
		ID:        r.ID,
		Ticker:    r.Ticker,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Forms:     slices.Clone(r.Forms),
		Status:    string(r.Status),
		Stage:     string(r.Stage),
		Progress:  r.Progress,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		Error:     r.Error,
	}
}

func MapRunDomainToApi(r *domain.AnalysisRun) api.Run {
	forms := r.Forms
	if forms == nil {
		forms = []string{}
	}
	return api.Run{
		ID:        r.ID,
		Ticker:    r.Ticker,
		StartDate: r.StartDate.Format(DateLayout),
		EndDate:   r.EndDate.Format(DateLayout),
		Forms:     forms,
		Status:    string(r.Status),
		Stage:     string(r.Stage),
		Progress:  r.Progress,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		Error:     r.Error,
	}
}
