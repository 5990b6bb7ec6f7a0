package httpx

import (
	"net/http"
	"strconv"

	"github.com/betabounty/betabounty-api/internal/domain/model"
	"github.com/betabounty/betabounty-api/internal/service"
)

// WalletHandlers provides HTTP handlers for the credit ledger.
type WalletHandlers struct {
	Svc *service.WalletService
}

// Get returns one wallet with its balance and running totals.
func (h *WalletHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	wallet, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, wallet)
}

// Transactions lists a wallet's most recent ledger entries.
func (h *WalletHandlers) Transactions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	limit := parseIntQuery(r, "limit", 50)
	txns, err := h.Svc.Transactions(r.Context(), id, limit)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, txns)
}

// Topup verifies the payment reference and credits the wallet.
func (h *WalletHandlers) Topup(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req model.TopupRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	txn, err := h.Svc.Topup(r.Context(), id, &req)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, txn)
}

// Adjust applies an administrative refund, adjustment or bonus.
func (h *WalletHandlers) Adjust(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req model.LedgerEntryRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	txn, err := h.Svc.Adjust(r.Context(), id, &req)
	if err != nil {
		RenderError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, txn)
}

func parseIntQuery(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func registerWalletRoutes(mux *http.ServeMux, h *WalletHandlers) {
	mux.HandleFunc("GET /api/wallets/{id}", h.Get)
	mux.HandleFunc("GET /api/wallets/{id}/transactions", h.Transactions)
	mux.HandleFunc("POST /api/wallets/{id}/topup", h.Topup)
	mux.HandleFunc("POST /api/wallets/{id}/adjust", h.Adjust)
}
