package reports

import (
	"context"
	"fmt"
	"net/http"

	"github.com/de-tools/swot-atlas/pkg/adapters"
	"github.com/de-tools/swot-atlas/pkg/models/domain"
	"github.com/de-tools/swot-atlas/pkg/services/export"
	"github.com/de-tools/swot-atlas/pkg/services/swot"
	"github.com/de-tools/swot-atlas/pkg/store/reports"
	"github.com/go-chi/chi/v5"
)

type Handler struct {
	store     reports.Store
	loader    reports.Loader
	exporter  *export.Exporter
	outputDir string
}

func NewHandler(store reports.Store, loader reports.Loader, exporter *export.Exporter, outputDir string) *Handler {
	return &Handler{
		store:     store,
		loader:    loader,
		exporter:  exporter,
		outputDir: outputDir,
	}
}

func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	index, err := h.store.ListReports(r.Context(), h.outputDir)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapIndexDomainToApi(index))
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.load(r.Context(), chi.URLParam(r, "accession"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapReportDomainToApi(report))
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	report, err := h.load(r.Context(), chi.URLParam(r, "accession"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	summary, err := swot.Summarize(report)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapSummaryDomainToApi(summary))
}

func (h *Handler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, export.FormatJSON)
}

func (h *Handler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, export.FormatCSV)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request, format export.Format) {
	ctx := r.Context()

	entry, err := h.find(ctx, chi.URLParam(r, "accession"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	artifact, err := h.exporter.Export(ctx, entry, format)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.FileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact.Data)
}

func (h *Handler) find(ctx context.Context, accession string) (domain.AnalysisIndexEntry, error) {
	index, err := h.store.ListReports(ctx, h.outputDir)
	if err != nil {
		return domain.AnalysisIndexEntry{}, err
	}
	entry, ok := index.Find(accession)
	if !ok {
		return domain.AnalysisIndexEntry{}, fmt.Errorf("%w: no index entry for accession %s", domain.ErrReportNotFound, accession)
	}
	return entry, nil
}

func (h *Handler) load(ctx context.Context, accession string) (*domain.SwotReport, error) {
	entry, err := h.find(ctx, accession)
	if err != nil {
		return nil, err
	}
	return h.loader.LoadEntry(ctx, entry)
}
