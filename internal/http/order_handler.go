package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/bifroggame1-create/FastPayAI/internal/domain"
	"github.com/bifroggame1-create/FastPayAI/internal/repository"
	"github.com/bifroggame1-create/FastPayAI/internal/service"
	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	orders  *service.OrderService
	timeout time.Duration
}

func NewOrderHandler(orders *service.OrderService, timeout time.Duration) *OrderHandler {
	return &OrderHandler{
		orders:  orders,
		timeout: timeout,
	}
}

type CreateOrderRequestDTO struct {
	UserID    string             `json:"userId"`
	Products  []domain.OrderItem `json:"products"`
	PromoCode string             `json:"promoCode"`
}

func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CreateOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.orders.Create(ctx, service.CreateOrderRequest{
		UserID:    req.UserID,
		Items:     req.Products,
		PromoCode: req.PromoCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyOrder):
			respondError(w, http.StatusBadRequest, "invalid_order", "Invalid order data")
		case errors.Is(err, service.ErrPromoRejected):
			respondError(w, http.StatusUnprocessableEntity, "promo_rejected", err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "internal_error", "failed to create order")
		}
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

func (h *OrderHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orders, err := h.orders.ListByUser(ctx, chi.URLParam(r, "userId"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to list orders")
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	order, err := h.orders.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "Order not found")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to get order")
		return
	}

	respondJSON(w, http.StatusOK, order)
}
