// internal/domain/payment/processor_test.go
package payment

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

func stripeTestClient(serverURL string) *StripeClient {
	cfg := &config.Config{
		Stripe: config.StripeConfig{
			SecretKey: "sk_test_123",
			BaseURL:   serverURL,
			Timeout:   5 * time.Second,
		},
	}
	return NewStripeClient(cfg)
}

func TestStripeClientCreateIntent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payment_intents", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.Equal(t, "idem-1", r.Header.Get("Idempotency-Key"))

		user, _, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "sk_test_123", user)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "12960", r.PostForm.Get("amount"))
		assert.Equal(t, "usd", r.PostForm.Get("currency"))
		assert.Equal(t, "true", r.PostForm.Get("automatic_payment_methods[enabled]"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_123","client_secret":"pi_123_secret_abc","amount":12960,"currency":"usd","status":"requires_payment_method"}`))
	}))
	defer server.Close()

	client := stripeTestClient(server.URL)
	intent, err := client.CreateIntent(context.Background(), 12960, "usd", "idem-1")
	require.NoError(t, err)

	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, "pi_123_secret_abc", intent.ClientSecret)
	assert.Equal(t, int64(12960), intent.Amount)
}

func TestStripeClientSurfacesProcessorErrorMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Amount must be at least $0.50 usd","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	client := stripeTestClient(server.URL)
	_, err := client.CreateIntent(context.Background(), 10, "usd", "")
	require.Error(t, err)

	var procErr *ProcessorError
	require.ErrorAs(t, err, &procErr)
	assert.Equal(t, http.StatusBadRequest, procErr.StatusCode)
	assert.Equal(t, "Amount must be at least $0.50 usd", procErr.Message)
}

func TestStripeClientErrorWithoutBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := stripeTestClient(server.URL)
	_, err := client.CreateIntent(context.Background(), 100, "usd", "")
	require.Error(t, err)

	var procErr *ProcessorError
	require.ErrorAs(t, err, &procErr)
	assert.Equal(t, http.StatusInternalServerError, procErr.StatusCode)
	assert.Contains(t, procErr.Message, "500")
}

func TestStripeClientRefund(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/refunds", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "pi_123", r.PostForm.Get("payment_intent"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"re_456","payment_intent":"pi_123","amount":12960,"status":"succeeded"}`))
	}))
	defer server.Close()

	client := stripeTestClient(server.URL)
	refund, err := client.Refund(context.Background(), "pi_123")
	require.NoError(t, err)

	assert.Equal(t, "re_456", refund.ID)
	assert.Equal(t, "succeeded", refund.Status)
}

func TestStripeClientConfirmIntent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payment_intents/pi_123/confirm", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "card", r.PostForm.Get("payment_method_data[type]"))
		assert.Equal(t, "4242424242424242", r.PostForm.Get("payment_method_data[card][number]"))
		assert.Equal(t, "12", r.PostForm.Get("payment_method_data[card][exp_month]"))
		assert.Equal(t, "2030", r.PostForm.Get("payment_method_data[card][exp_year]"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"pi_123","status":"succeeded"}`))
	}))
	defer server.Close()

	client := stripeTestClient(server.URL)
	intent, err := client.ConfirmIntent(context.Background(), "pi_123", ProcessorCard{
		Number:   "4242424242424242",
		ExpMonth: 12,
		ExpYear:  2030,
		CVC:      "123",
	})
	require.NoError(t, err)
	assert.Equal(t, "succeeded", intent.Status)
}
