package httpx

import (
	"net/http"

	"github.com/betabounty/betabounty-api/internal/domain/model"
	"github.com/betabounty/betabounty-api/internal/service"
)

// RewardHandlers provides HTTP handlers for payout tracking.
type RewardHandlers struct {
	Svc *service.RewardService
}

// Get returns one reward.
func (h *RewardHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	reward, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, reward)
}

// MarkSent records a delivered payout with its proof reference.
func (h *RewardHandlers) MarkSent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req model.MarkSentRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	reward, err := h.Svc.MarkSent(r.Context(), id, &req)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, reward)
}

// MarkFailed records a payout failure with its reason.
func (h *RewardHandlers) MarkFailed(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req model.MarkFailedRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	reward, err := h.Svc.MarkFailed(r.Context(), id, &req)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, reward)
}

func registerRewardRoutes(mux *http.ServeMux, h *RewardHandlers) {
	mux.HandleFunc("GET /api/rewards/{id}", h.Get)
	mux.HandleFunc("POST /api/rewards/{id}/sent", h.MarkSent)
	mux.HandleFunc("POST /api/rewards/{id}/failed", h.MarkFailed)
}
