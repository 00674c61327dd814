// internal/domain/checkout/gateway_test.go
package checkout

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/shopapp-backend/internal/config"
)

func gatewayTestClient(serverURL string, timeout time.Duration) *HTTPGatewayClient {
	cfg := &config.Config{
		Checkout: config.CheckoutConfig{
			PaymentServiceURL: serverURL,
			GatewayTimeout:    timeout,
		},
	}
	return NewHTTPGatewayClient(cfg)
}

func TestHTTPGatewayClientCreateIntent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/create-payment-intent", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "idem-1", r.Header.Get("Idempotency-Key"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"clientSecret":"pi_123_secret_abc","paymentIntentId":"pi_123"}`))
	}))
	defer server.Close()

	client := gatewayTestClient(server.URL, 5*time.Second)
	intent, err := client.CreateIntent(context.Background(), 12960, "usd", "idem-1")
	require.NoError(t, err)

	assert.Equal(t, "pi_123_secret_abc", intent.ClientSecret)
	assert.Equal(t, "pi_123", intent.PaymentIntentID)
}

func TestHTTPGatewayClientSurfacesBackendError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Your card was declined."}`))
	}))
	defer server.Close()

	client := gatewayTestClient(server.URL, 5*time.Second)
	_, err := client.CreateIntent(context.Background(), 100, "usd", "")
	require.ErrorIs(t, err, ErrGatewayUnavailable)

	// The backend's message passes through verbatim
	assert.Contains(t, err.Error(), "Your card was declined.")
}

func TestHTTPGatewayClientTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := gatewayTestClient(server.URL, 20*time.Millisecond)
	_, err := client.CreateIntent(context.Background(), 100, "usd", "")
	require.ErrorIs(t, err, ErrGatewayTimeout)
}

func TestHTTPGatewayClientMissingSecret(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"paymentIntentId":"pi_123"}`))
	}))
	defer server.Close()

	client := gatewayTestClient(server.URL, 5*time.Second)
	_, err := client.CreateIntent(context.Background(), 100, "usd", "")
	require.ErrorIs(t, err, ErrGatewayUnavailable)
	assert.Contains(t, err.Error(), "missing client secret")
}
