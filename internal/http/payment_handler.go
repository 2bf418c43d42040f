package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/bifroggame1-create/FastPayAI/internal/cryptopay"
	"github.com/bifroggame1-create/FastPayAI/internal/currency"
	"github.com/bifroggame1-create/FastPayAI/internal/service"
	"github.com/go-chi/chi/v5"
)

type PaymentHandler struct {
	payments *service.PaymentService
	timeout  time.Duration
}

func NewPaymentHandler(payments *service.PaymentService, timeout time.Duration) *PaymentHandler {
	return &PaymentHandler{
		payments: payments,
		timeout:  timeout,
	}
}

type CreateInvoiceRequestDTO struct {
	Amount      int64  `json:"amount"`
	Description string `json:"description"`
	ProductID   string `json:"productId"`
	VariantID   string `json:"variantId"`
	Asset       string `json:"asset"`
}

type InvoiceResponseDTO struct {
	Success bool                    `json:"success"`
	Invoice *service.InvoiceDetails `json:"invoice,omitempty"`
	Error   string                  `json:"error,omitempty"`
}

type BalanceResponseDTO struct {
	Success bool                `json:"success"`
	Balance []cryptopay.Balance `json:"balance,omitempty"`
	Error   string              `json:"error,omitempty"`
}

type QuoteResponseDTO struct {
	Amount string `json:"amount"`
	Asset  string `json:"asset"`
}

func (h *PaymentHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CreateInvoiceRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, InvoiceResponseDTO{Success: false, Error: "invalid JSON body"})
		return
	}

	if req.ProductID == "" {
		respondJSON(w, http.StatusBadRequest, InvoiceResponseDTO{Success: false, Error: "productId is required"})
		return
	}

	invoice, err := h.payments.CreateInvoice(ctx, service.CreateInvoiceRequest{
		Amount:      req.Amount,
		Description: req.Description,
		ProductID:   req.ProductID,
		VariantID:   req.VariantID,
		Asset:       req.Asset,
	})
	if err != nil {
		status, message := paymentErrorStatus(err)
		respondJSON(w, status, InvoiceResponseDTO{Success: false, Error: message})
		return
	}

	respondJSON(w, http.StatusOK, InvoiceResponseDTO{Success: true, Invoice: invoice})
}

func (h *PaymentHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	invoiceID, err := strconv.ParseInt(chi.URLParam(r, "invoiceId"), 10, 64)
	if err != nil || invoiceID <= 0 {
		respondJSON(w, http.StatusBadRequest, InvoiceResponseDTO{Success: false, Error: "invoiceId must be a positive integer"})
		return
	}

	invoice, err := h.payments.GetInvoiceStatus(ctx, invoiceID)
	if err != nil {
		status, message := paymentErrorStatus(err)
		respondJSON(w, status, InvoiceResponseDTO{Success: false, Error: message})
		return
	}

	respondJSON(w, http.StatusOK, InvoiceResponseDTO{Success: true, Invoice: invoice})
}

func (h *PaymentHandler) Balance(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	balances, err := h.payments.Balance(ctx)
	if err != nil {
		status, message := paymentErrorStatus(err)
		respondJSON(w, status, BalanceResponseDTO{Success: false, Error: message})
		return
	}

	respondJSON(w, http.StatusOK, BalanceResponseDTO{Success: true, Balance: balances})
}

// Quote converts a RUB amount into crypto for display on the checkout page.
func (h *PaymentHandler) Quote(w http.ResponseWriter, r *http.Request) {
	amount, err := strconv.ParseInt(r.URL.Query().Get("amount"), 10, 64)
	if err != nil || amount <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_request", "amount must be a positive integer")
		return
	}

	asset := r.URL.Query().Get("asset")
	converted, err := h.payments.Quote(amount, asset)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unknown_asset", "no such asset: "+asset)
		return
	}

	respondJSON(w, http.StatusOK, QuoteResponseDTO{Amount: converted, Asset: asset})
}

// paymentErrorStatus separates caller mistakes from provider failures so
// operators can tell "bad request" from "provider down" at a glance.
func paymentErrorStatus(err error) (int, string) {
	var provErr *cryptopay.ProviderError
	switch {
	case errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrAmountBelowMinimum),
		errors.Is(err, currency.ErrUnknownAsset):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, cryptopay.ErrInvoiceNotFound):
		return http.StatusNotFound, err.Error()
	case errors.As(err, &provErr):
		// The provider's error name travels to the client verbatim.
		return http.StatusBadGateway, provErr.Name
	default:
		return http.StatusBadGateway, "payment provider unavailable"
	}
}
