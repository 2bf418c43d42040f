package cryptopay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"
)

const DefaultAPIURL = "https://pay.crypt.bot/api"

var (
	// ErrMissingToken is a configuration error: the client refuses to be
	// constructed without an API token, so a misconfigured deployment fails
	// at startup instead of looking like a provider outage.
	ErrMissingToken = errors.New("cryptopay: API token is not set")

	ErrInvoiceNotFound = errors.New("cryptopay: invoice not found")
)

// ProviderError is a structured rejection from the CryptoBot API. The name is
// propagated verbatim so callers see the provider's own error identifier.
type ProviderError struct {
	Code int    `json:"code"`
	Name string `json:"name"`
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("cryptopay: provider error %d %s", e.Code, e.Name)
}

// Invoice mirrors the provider's invoice object. The amount stays a string:
// it is a high-precision decimal owned by the provider.
type Invoice struct {
	InvoiceID     int64  `json:"invoice_id"`
	Hash          string `json:"hash"`
	CurrencyType  string `json:"currency_type,omitempty"`
	Asset         string `json:"asset"`
	Amount        string `json:"amount"`
	PayURL        string `json:"pay_url"`
	BotInvoiceURL string `json:"bot_invoice_url"`
	Description   string `json:"description,omitempty"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at,omitempty"`
}

type CreateInvoiceParams struct {
	Asset          string `json:"asset"`
	Amount         string `json:"amount"`
	Description    string `json:"description,omitempty"`
	PaidBtnName    string `json:"paid_btn_name,omitempty"`
	PaidBtnURL     string `json:"paid_btn_url,omitempty"`
	Payload        string `json:"payload,omitempty"`
	AllowComments  bool   `json:"allow_comments"`
	AllowAnonymous bool   `json:"allow_anonymous"`
}

type Balance struct {
	CurrencyCode string `json:"currency_code"`
	Available    string `json:"available"`
	Onhold       string `json:"onhold,omitempty"`
}

type apiResponse struct {
	Ok     bool            `json:"ok"`
	Result json.RawMessage `json:"result"`
	Error  *ProviderError  `json:"error"`
}

// Client talks to the CryptoBot payment API. Calls go through a circuit
// breaker so an unreachable provider fails fast instead of hanging checkouts.
type Client struct {
	token   string
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[json.RawMessage]
	logger  zerolog.Logger
}

func NewClient(token, baseURL string, timeout time.Duration, logger zerolog.Logger) (*Client, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}

	breaker := gobreaker.NewCircuitBreaker[json.RawMessage](gobreaker.Settings{
		Name:    "cryptobot",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &Client{
		token:   token,
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		breaker: breaker,
		logger:  logger.With().Str("component", "cryptopay").Logger(),
	}, nil
}

func (c *Client) CreateInvoice(ctx context.Context, params CreateInvoiceParams) (*Invoice, error) {
	result, err := c.request(ctx, http.MethodPost, "/createInvoice", params)
	if err != nil {
		return nil, err
	}

	var invoice Invoice
	if err := json.Unmarshal(result, &invoice); err != nil {
		return nil, fmt.Errorf("cryptopay: decoding invoice: %w", err)
	}
	return &invoice, nil
}

// GetInvoice re-fetches a single invoice from the provider. Results are never
// cached: invoice status changes asynchronously on the provider side.
func (c *Client) GetInvoice(ctx context.Context, invoiceID int64) (*Invoice, error) {
	endpoint := fmt.Sprintf("/getInvoices?invoice_ids=%d", invoiceID)
	result, err := c.request(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var listing struct {
		Items []Invoice `json:"items"`
	}
	if err := json.Unmarshal(result, &listing); err != nil {
		return nil, fmt.Errorf("cryptopay: decoding invoices: %w", err)
	}
	if len(listing.Items) == 0 {
		return nil, ErrInvoiceNotFound
	}
	return &listing.Items[0], nil
}

func (c *Client) GetBalance(ctx context.Context) ([]Balance, error) {
	result, err := c.request(ctx, http.MethodGet, "/getBalance", nil)
	if err != nil {
		return nil, err
	}

	var balances []Balance
	if err := json.Unmarshal(result, &balances); err != nil {
		return nil, fmt.Errorf("cryptopay: decoding balance: %w", err)
	}
	return balances, nil
}

func (c *Client) request(ctx context.Context, method, endpoint string, body any) (json.RawMessage, error) {
	return c.breaker.Execute(func() (json.RawMessage, error) {
		reqBody := bytes.NewBuffer(nil)
		if body != nil {
			if err := json.NewEncoder(reqBody).Encode(body); err != nil {
				return nil, fmt.Errorf("cryptopay: encoding request: %w", err)
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
		if err != nil {
			return nil, fmt.Errorf("cryptopay: creating request: %w", err)
		}
		req.Header.Set("Crypto-Pay-API-Token", c.token)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("cryptopay: request failed: %w", err)
		}
		defer resp.Body.Close()

		var envelope apiResponse
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			return nil, fmt.Errorf("cryptopay: decoding response: %w", err)
		}

		if !envelope.Ok {
			if envelope.Error != nil {
				c.logger.Warn().Int("code", envelope.Error.Code).Str("name", envelope.Error.Name).Msg("provider rejected request")
				return nil, envelope.Error
			}
			return nil, fmt.Errorf("cryptopay: provider returned not-ok status %d", resp.StatusCode)
		}

		return envelope.Result, nil
	})
}
