package httpx

import (
	"errors"
	"io"
	"net/http"

	"github.com/betabounty/betabounty-api/internal/service"
)

// JobHandlers provides HTTP handlers for dispatcher and job operations.
type JobHandlers struct {
	Svc *service.DispatcherService
	// ResetAttemptsOnRetry controls whether an operator retry zeroes the
	// attempt counter or resumes the remaining budget.
	ResetAttemptsOnRetry bool
}

type runBatchRequest struct {
	Limit int `json:"limit,omitempty"`
}

// RunBatch triggers one dispatcher batch run. The caller (a scheduler or an
// operator) authenticates with the shared run token; see RequireBearerToken.
func (h *JobHandlers) RunBatch(w http.ResponseWriter, r *http.Request) {
	var req runBatchRequest
	// An empty body means "use the configured batch limit".
	if r.Body != nil && r.ContentLength != 0 {
		if !DecodeJSON(w, r, &req) {
			return
		}
	} else if r.Body != nil {
		_, _ = io.Copy(io.Discard, r.Body)
	}

	result, err := h.Svc.RunBatch(r.Context(), req.Limit)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// RetryJob resets a failed or dead job back to pending.
func (h *JobHandlers) RetryJob(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")})
		return
	}

	job, err := h.Svc.Retry(r.Context(), id, h.ResetAttemptsOnRetry)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

// GetJob returns one job for operator inspection.
func (h *JobHandlers) GetJob(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("job id is required")})
		return
	}

	job, err := h.Svc.GetJob(r.Context(), id)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

// JobStats returns per-status queue counts.
func (h *JobHandlers) JobStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Svc.Stats(r.Context())
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, stats)
}

func registerJobRoutes(mux *http.ServeMux, h *JobHandlers, runToken string) {
	guard := RequireBearerToken(runToken)
	mux.Handle("POST /api/jobs/run", guard(http.HandlerFunc(h.RunBatch)))
	mux.HandleFunc("POST /api/jobs/{id}/retry", h.RetryJob)
	mux.HandleFunc("GET /api/jobs/stats", h.JobStats)
	mux.HandleFunc("GET /api/jobs/{id}", h.GetJob)
}
