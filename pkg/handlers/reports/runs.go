package reports

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/de-tools/swot-atlas/pkg/adapters"
	"github.com/de-tools/swot-atlas/pkg/models/api"
	"github.com/de-tools/swot-atlas/pkg/models/domain"
	"github.com/de-tools/swot-atlas/pkg/services/analysis"
	"github.com/go-chi/chi/v5"
)

type RunsHandler struct {
	controller analysis.Controller
}

func NewRunsHandler(controller analysis.Controller) *RunsHandler {
	return &RunsHandler{controller: controller}
}

func (h *RunsHandler) StartRun(w http.ResponseWriter, r *http.Request) {
	var body api.RunRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, fmt.Errorf("%w: invalid request body: %v", ErrBadRequest, err))
		return
	}

	start, err := time.Parse(adapters.DateLayout, body.StartDate)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: invalid 'start_date' format. Expected format: YYYY-MM-DD", domain.ErrInvalidDateRange))
		return
	}
	end, err := time.Parse(adapters.DateLayout, body.EndDate)
	if err != nil {
		writeError(w, r, fmt.Errorf("%w: invalid 'end_date' format. Expected format: YYYY-MM-DD", domain.ErrInvalidDateRange))
		return
	}

	run, err := h.controller.Start(r.Context(), domain.RunRequest{
		Ticker:    body.Ticker,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/runs/"+run.ID)
	writeJSON(w, r, http.StatusAccepted, adapters.MapRunDomainToApi(run))
}

func (h *RunsHandler) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.controller.ListRuns(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	response := make([]api.Run, 0, len(runs))
	for _, run := range runs {
		response = append(response, adapters.MapRunDomainToApi(run))
	}
	writeJSON(w, r, http.StatusOK, response)
}

func (h *RunsHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.controller.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapRunDomainToApi(run))
}
