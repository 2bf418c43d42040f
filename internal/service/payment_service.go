package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/bifroggame1-create/FastPayAI/internal/cryptopay"
	"github.com/bifroggame1-create/FastPayAI/internal/currency"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const defaultAsset = currency.USDT

var (
	ErrInvalidAmount      = errors.New("invoice amount must be positive")
	ErrAmountBelowMinimum = errors.New("invoice amount is below the asset minimum")
)

// PaymentProvider is the slice of the CryptoBot API the orchestrator needs.
// Injected so tests can substitute a fake without touching the network.
type PaymentProvider interface {
	CreateInvoice(ctx context.Context, params cryptopay.CreateInvoiceParams) (*cryptopay.Invoice, error)
	GetInvoice(ctx context.Context, invoiceID int64) (*cryptopay.Invoice, error)
	GetBalance(ctx context.Context) ([]cryptopay.Balance, error)
}

type CreateInvoiceRequest struct {
	Amount      int64
	Description string
	ProductID   string
	VariantID   string
	Asset       string
}

// InvoiceDetails is the locally observed view of a provider-owned invoice.
// The system holds no authoritative copy, status is re-fetched on demand.
type InvoiceDetails struct {
	ID     int64  `json:"id"`
	Hash   string `json:"hash,omitempty"`
	PayURL string `json:"payUrl,omitempty"`
	Amount string `json:"amount"`
	Asset  string `json:"asset"`
	Status string `json:"status"`
}

type invoicePayload struct {
	ProductID     string `json:"productId"`
	VariantID     string `json:"variantId,omitempty"`
	CorrelationID string `json:"correlationId"`
}

type PaymentService struct {
	provider    PaymentProvider
	callbackURL string
	logger      zerolog.Logger
}

func NewPaymentService(provider PaymentProvider, callbackURL string, logger zerolog.Logger) *PaymentService {
	return &PaymentService{
		provider:    provider,
		callbackURL: callbackURL,
		logger:      logger.With().Str("component", "payments").Logger(),
	}
}

// CreateInvoice asks the provider for a payment invoice and relays the pay
// URL. The amount crosses the wire as a decimal string. There is no
// idempotency key: a client retry creates a second invoice at the provider,
// a known gap inherited from the storefront's checkout contract.
func (s *PaymentService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*InvoiceDetails, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	asset := currency.Asset(req.Asset)
	if asset == "" {
		asset = defaultAsset
	}
	if !currency.Supported(asset) {
		return nil, fmt.Errorf("%w: %s", currency.ErrUnknownAsset, asset)
	}

	// The provider minimum is denominated in asset units, so the RUB amount
	// has to be converted before the comparison means anything.
	converted, err := currency.Convert(req.Amount, asset)
	if err != nil {
		return nil, err
	}
	units, err := decimal.NewFromString(converted)
	if err != nil {
		return nil, fmt.Errorf("failed to parse converted amount %q: %w", converted, err)
	}
	min, err := currency.MinimumAmount(asset)
	if err != nil {
		return nil, err
	}
	if units.LessThan(min) {
		return nil, fmt.Errorf("%w: %d₽ is %s, minimum for %s is %s", ErrAmountBelowMinimum, req.Amount, currency.Format(converted, asset), asset, min)
	}

	description := req.Description
	if description == "" {
		description = "Оплата заказа FastPay"
	}

	payload, err := json.Marshal(invoicePayload{
		ProductID:     req.ProductID,
		VariantID:     req.VariantID,
		CorrelationID: uuid.NewString(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build invoice payload: %w", err)
	}

	invoice, err := s.provider.CreateInvoice(ctx, cryptopay.CreateInvoiceParams{
		Asset:          string(asset),
		Amount:         strconv.FormatInt(req.Amount, 10),
		Description:    description,
		PaidBtnName:    "callback",
		PaidBtnURL:     s.callbackURL,
		Payload:        string(payload),
		AllowComments:  false,
		AllowAnonymous: true,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("invoiceId", invoice.InvoiceID).
		Str("asset", invoice.Asset).
		Str("amount", invoice.Amount).
		Str("productId", req.ProductID).
		Msg("invoice created")

	return &InvoiceDetails{
		ID:     invoice.InvoiceID,
		Hash:   invoice.Hash,
		PayURL: invoice.BotInvoiceURL,
		Amount: invoice.Amount,
		Asset:  invoice.Asset,
		Status: invoice.Status,
	}, nil
}

// GetInvoiceStatus is a read-through query: every call re-fetches from the
// provider because invoice status changes asynchronously there. Payment
// completion is confirmed by polling alone, there is no webhook.
func (s *PaymentService) GetInvoiceStatus(ctx context.Context, invoiceID int64) (*InvoiceDetails, error) {
	invoice, err := s.provider.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return &InvoiceDetails{
		ID:     invoice.InvoiceID,
		Amount: invoice.Amount,
		Asset:  invoice.Asset,
		Status: invoice.Status,
	}, nil
}

func (s *PaymentService) Balance(ctx context.Context) ([]cryptopay.Balance, error) {
	return s.provider.GetBalance(ctx)
}

// Quote converts a RUB amount into the asset's units for display.
func (s *PaymentService) Quote(rubAmount int64, asset string) (string, error) {
	return currency.Convert(rubAmount, currency.Asset(asset))
}
