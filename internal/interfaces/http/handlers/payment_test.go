// internal/interfaces/http/handlers/payment_test.go
package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/shopapp-backend/internal/config"
	"github.com/your-org/shopapp-backend/internal/domain/payment"
)

// stubProcessor counts calls and returns canned intents
type stubProcessor struct {
	createCalls int
	refundCalls int
	lastKey     string
	err         error
}

func (p *stubProcessor) CreateIntent(ctx context.Context, amount int64, currency, idempotencyKey string) (*payment.ProcessorIntent, error) {
	p.createCalls++
	p.lastKey = idempotencyKey
	if p.err != nil {
		return nil, p.err
	}
	return &payment.ProcessorIntent{
		ID:           "pi_123",
		ClientSecret: "pi_123_secret_abc",
		Amount:       amount,
		Currency:     currency,
	}, nil
}

func (p *stubProcessor) ConfirmIntent(ctx context.Context, intentID string, card payment.ProcessorCard) (*payment.ProcessorIntent, error) {
	return &payment.ProcessorIntent{ID: intentID, Status: "succeeded"}, nil
}

func (p *stubProcessor) Refund(ctx context.Context, intentID string) (*payment.ProcessorRefund, error) {
	p.refundCalls++
	if p.err != nil {
		return nil, p.err
	}
	return &payment.ProcessorRefund{ID: "re_456", PaymentIntent: intentID, Status: "succeeded"}, nil
}

func paymentTestRouter(processor payment.Processor) *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := &config.Config{
		Checkout: config.CheckoutConfig{Currency: "usd"},
	}

	service := payment.NewService(cfg, processor, payment.NewMemoryRecordStore(), logger)
	handler := NewPaymentHandler(service)

	router := gin.New()
	router.POST("/payment/create-payment-intent", handler.CreatePaymentIntent)
	router.POST("/payment/refund-payment", handler.RefundPayment)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreatePaymentIntentEndpoint(t *testing.T) {
	processor := &stubProcessor{}
	router := paymentTestRouter(processor)

	req := httptest.NewRequest(http.MethodPost, "/payment/create-payment-intent",
		strings.NewReader(`{"amount":12960,"currency":"usd"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", "idem-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp payment.IntentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "pi_123_secret_abc", resp.ClientSecret)
	assert.Equal(t, "pi_123", resp.PaymentIntentID)
	assert.Equal(t, "idem-1", processor.lastKey)
}

func TestCreatePaymentIntentRejectsBadAmount(t *testing.T) {
	processor := &stubProcessor{}
	router := paymentTestRouter(processor)

	for _, body := range []string{
		`{"amount":0,"currency":"usd"}`,
		`{"amount":-100,"currency":"usd"}`,
		`{"currency":"usd"}`,
		`not json`,
	} {
		w := postJSON(t, router, "/payment/create-payment-intent", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.JSONEq(t, `{"error":"Invalid amount provided"}`, w.Body.String(), body)
	}

	// The processor is never called on a rejected request
	assert.Equal(t, 0, processor.createCalls)
}

func TestCreatePaymentIntentProcessorFailure(t *testing.T) {
	processor := &stubProcessor{err: &payment.ProcessorError{StatusCode: 500, Message: "An error occurred with our API"}}
	router := paymentTestRouter(processor)

	w := postJSON(t, router, "/payment/create-payment-intent", `{"amount":100,"currency":"usd"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"An error occurred with our API"}`, w.Body.String())
}

func TestRefundPaymentEndpoint(t *testing.T) {
	processor := &stubProcessor{}
	router := paymentTestRouter(processor)

	w := postJSON(t, router, "/payment/refund-payment", `{"paymentIntentId":"pi_123"}`)
	require.Equal(t, http.StatusOK, w.Code)

	// The success shape is wire visible: success, message and the processor's
	// refund object.
	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Contains(t, resp, "success")
	require.Contains(t, resp, "message")
	require.Contains(t, resp, "refund")
	assert.JSONEq(t, `true`, string(resp["success"]))
	assert.JSONEq(t, `"Refund successful"`, string(resp["message"]))

	var refund payment.ProcessorRefund
	require.NoError(t, json.Unmarshal(resp["refund"], &refund))
	assert.Equal(t, "re_456", refund.ID)
	assert.Equal(t, "pi_123", refund.PaymentIntent)
	assert.Equal(t, "succeeded", refund.Status)
}

func TestRefundPaymentRequiresIntentID(t *testing.T) {
	processor := &stubProcessor{}
	router := paymentTestRouter(processor)

	for _, body := range []string{`{}`, `{"paymentIntentId":""}`} {
		w := postJSON(t, router, "/payment/refund-payment", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.JSONEq(t, `{"error":"Payment Intent ID is required"}`, w.Body.String(), body)
	}

	assert.Equal(t, 0, processor.refundCalls)
}
