// internal/domain/checkout/gateway.go
package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/your-org/shopapp-backend/internal/config"
)

// Intent is the payment service's answer to an intent-creation request
type Intent struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

// GatewayClient obtains a client secret from the payment service
type GatewayClient interface {
	// CreateIntent asks the payment service for a payment intent covering
	// amount minor units in the given currency. The idempotency key is
	// forwarded to the processor.
	CreateIntent(ctx context.Context, amount int64, currency, idempotencyKey string) (*Intent, error)
}

// WalletOptions carries the merchant metadata handed to the device wallet
// confirmation routine.
type WalletOptions struct {
	MerchantName    string
	MerchantCountry string
	Currency        string
	BillingAddress  bool
}

// CardDetails carries collected card input to the processor confirmation
// call. Field values pass through; nothing is retained.
type CardDetails struct {
	Number     string
	NameOnCard string
	Expiration string
	CVV        string
}

// Confirmer completes a payment intent with the processor, either through
// the device wallet or with collected card details.
type Confirmer interface {
	// WalletSupported reports whether the wallet payment method can be
	// offered at all.
	WalletSupported(ctx context.Context) bool

	// ConfirmWallet confirms the intent behind clientSecret via the device
	// wallet and returns the confirmed payment intent id.
	ConfirmWallet(ctx context.Context, clientSecret string, opts WalletOptions) (string, error)

	// ConfirmCard confirms the intent behind clientSecret with card details
	// and returns the confirmed payment intent id.
	ConfirmCard(ctx context.Context, clientSecret string, card CardDetails) (string, error)
}

// HTTPGatewayClient talks to the payment service over HTTP
type HTTPGatewayClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPGatewayClient creates a gateway client for the configured payment
// service base URL.
func NewHTTPGatewayClient(cfg *config.Config) *HTTPGatewayClient {
	return &HTTPGatewayClient{
		baseURL: cfg.Checkout.PaymentServiceURL,
		httpClient: &http.Client{
			Timeout: cfg.Checkout.GatewayTimeout,
		},
	}
}

// CreateIntent requests a client secret from the payment service
func (g *HTTPGatewayClient) CreateIntent(ctx context.Context, amount int64, currency, idempotencyKey string) (*Intent, error) {
	body, err := json.Marshal(map[string]interface{}{
		"amount":   amount,
		"currency": currency,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode intent request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/create-payment-intent", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			return nil, fmt.Errorf("%w: %v", ErrGatewayTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Surface the backend's error text verbatim
		var errBody struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errBody); decodeErr != nil || errBody.Error == "" {
			errBody.Error = fmt.Sprintf("payment service returned status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("%w: %s", ErrGatewayUnavailable, errBody.Error)
	}

	var intent Intent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrGatewayUnavailable, err)
	}
	if intent.ClientSecret == "" {
		return nil, fmt.Errorf("%w: missing client secret", ErrGatewayUnavailable)
	}

	return &intent, nil
}

// isTimeout reports whether err is a network timeout
func isTimeout(err error) bool {
	var timeoutErr interface{ Timeout() bool }
	return errors.As(err, &timeoutErr) && timeoutErr.Timeout()
}
