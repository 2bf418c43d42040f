package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/bifroggame1-create/FastPayAI/internal/service"
)

type PromoHandler struct {
	promos  *service.PromoService
	timeout time.Duration
}

func NewPromoHandler(promos *service.PromoService, timeout time.Duration) *PromoHandler {
	return &PromoHandler{
		promos:  promos,
		timeout: timeout,
	}
}

type ValidatePromoRequestDTO struct {
	Code        string `json:"code"`
	OrderAmount int64  `json:"orderAmount"`
}

// Validate answers with 200 for both outcomes: a rejected code is a business
// answer for the shopper, not a transport error.
func (h *PromoHandler) Validate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ValidatePromoRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.Code == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "code is required")
		return
	}
	if req.OrderAmount < 0 {
		respondError(w, http.StatusBadRequest, "invalid_request", "orderAmount must not be negative")
		return
	}

	result, err := h.promos.Validate(ctx, req.Code, req.OrderAmount)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to validate promo code")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (h *PromoHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	promos, err := h.promos.ListActive(ctx)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list promo codes")
		return
	}

	respondJSON(w, http.StatusOK, promos)
}
