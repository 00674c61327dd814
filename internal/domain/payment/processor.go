// internal/domain/payment/processor.go
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/your-org/shopapp-backend/internal/config"
)

// ProcessorIntent is the processor's view of a payment intent
type ProcessorIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}

// ProcessorRefund is the processor's view of a refund
type ProcessorRefund struct {
	ID            string `json:"id"`
	PaymentIntent string `json:"payment_intent"`
	Amount        int64  `json:"amount"`
	Status        string `json:"status"`
}

// ProcessorCard carries card details into a server-side confirmation call
type ProcessorCard struct {
	Number   string
	ExpMonth int
	ExpYear  int
	CVC      string
}

// ProcessorError is an error answer from the processor API, surfaced with
// its message intact.
type ProcessorError struct {
	StatusCode int
	Message    string
}

func (e *ProcessorError) Error() string {
	return e.Message
}

// Processor is the payment processor API surface this service depends on
type Processor interface {
	// CreateIntent registers a new payment intent for amount minor units.
	CreateIntent(ctx context.Context, amount int64, currency, idempotencyKey string) (*ProcessorIntent, error)

	// ConfirmIntent confirms an intent server-side with card details.
	ConfirmIntent(ctx context.Context, intentID string, card ProcessorCard) (*ProcessorIntent, error)

	// Refund refunds the full captured amount of an intent.
	Refund(ctx context.Context, intentID string) (*ProcessorRefund, error)
}

// StripeClient calls the Stripe REST API. Requests are form encoded and
// authenticated with the secret key via basic auth.
type StripeClient struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

// NewStripeClient creates a Stripe API client from configuration
func NewStripeClient(cfg *config.Config) *StripeClient {
	return &StripeClient{
		secretKey: cfg.Stripe.SecretKey,
		baseURL:   cfg.Stripe.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Stripe.Timeout,
		},
	}
}

// CreateIntent registers a new payment intent with automatic payment methods
func (c *StripeClient) CreateIntent(ctx context.Context, amount int64, currency, idempotencyKey string) (*ProcessorIntent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(amount, 10))
	form.Set("currency", currency)
	form.Set("automatic_payment_methods[enabled]", "true")

	var intent ProcessorIntent
	if err := c.makeAPICall(ctx, http.MethodPost, "/payment_intents", form, idempotencyKey, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

// ConfirmIntent confirms an intent server-side with card details
func (c *StripeClient) ConfirmIntent(ctx context.Context, intentID string, card ProcessorCard) (*ProcessorIntent, error) {
	form := url.Values{}
	form.Set("payment_method_data[type]", "card")
	form.Set("payment_method_data[card][number]", card.Number)
	form.Set("payment_method_data[card][exp_month]", strconv.Itoa(card.ExpMonth))
	form.Set("payment_method_data[card][exp_year]", strconv.Itoa(card.ExpYear))
	form.Set("payment_method_data[card][cvc]", card.CVC)

	var intent ProcessorIntent
	endpoint := fmt.Sprintf("/payment_intents/%s/confirm", intentID)
	if err := c.makeAPICall(ctx, http.MethodPost, endpoint, form, "", &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

// Refund refunds the full captured amount of an intent
func (c *StripeClient) Refund(ctx context.Context, intentID string) (*ProcessorRefund, error) {
	form := url.Values{}
	form.Set("payment_intent", intentID)

	var refund ProcessorRefund
	if err := c.makeAPICall(ctx, http.MethodPost, "/refunds", form, "", &refund); err != nil {
		return nil, err
	}
	return &refund, nil
}

// makeAPICall makes an HTTP call to the processor API and decodes the answer
// into out.
func (c *StripeClient) makeAPICall(ctx context.Context, method, endpoint string, form url.Values, idempotencyKey string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.secretKey, "")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make API call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeProcessorError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse processor response: %w", err)
	}
	return nil
}

// decodeProcessorError extracts the processor's error message from an error
// response body.
func decodeProcessorError(resp *http.Response) error {
	var body struct {
		Error struct {
			Message string `json:"message"`
			Type    string `json:"type"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error.Message == "" {
		return &ProcessorError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("processor returned status %d", resp.StatusCode),
		}
	}
	return &ProcessorError{
		StatusCode: resp.StatusCode,
		Message:    body.Error.Message,
	}
}
