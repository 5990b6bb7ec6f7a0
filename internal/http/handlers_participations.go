package httpx

import (
	"errors"
	"net/http"

	"github.com/betabounty/betabounty-api/internal/domain/model"
	"github.com/betabounty/betabounty-api/internal/service"
)

// ParticipationHandlers provides HTTP handlers for submissions and reviews.
type ParticipationHandlers struct {
	Svc *service.ParticipationService
}

// Submit creates a participation with its assets and verification jobs.
func (h *ParticipationHandlers) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.SubmitParticipationRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	sub, err := h.Svc.Submit(r.Context(), &req)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, sub.Participation)
}

// Get returns one participation.
func (h *ParticipationHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	p, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, p)
}

// Signals returns the fraud signal audit trail of one participation.
func (h *ParticipationHandlers) Signals(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	signals, err := h.Svc.Signals(r.Context(), id)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, signals)
}

// Approve accepts a submission: status flip, wallet debit and reward creation
// happen atomically.
func (h *ParticipationHandlers) Approve(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req model.ReviewRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	outcome, err := h.Svc.Approve(r.Context(), id, &req)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"participation": outcome.Participation,
		"transaction":   outcome.Transaction,
		"reward":        outcome.Reward,
	})
}

// Reject declines a submission with a required reason.
func (h *ParticipationHandlers) Reject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req model.ReviewRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	p, err := h.Svc.Reject(r.Context(), id, &req)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, p)
}

func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("id is required")})
		return "", false
	}
	return id, true
}

func registerParticipationRoutes(mux *http.ServeMux, h *ParticipationHandlers) {
	mux.HandleFunc("POST /api/participations", h.Submit)
	mux.HandleFunc("GET /api/participations/{id}", h.Get)
	mux.HandleFunc("GET /api/participations/{id}/signals", h.Signals)
	mux.HandleFunc("POST /api/participations/{id}/approve", h.Approve)
	mux.HandleFunc("POST /api/participations/{id}/reject", h.Reject)
}
