// internal/domain/payment/service_test.go
package payment

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/shopapp-backend/internal/config"
)

// fakeProcessor records calls and returns canned answers
type fakeProcessor struct {
	createCalls  int
	confirmCalls int
	refundCalls  int
	lastKey      string
	lastAmount   int64
	lastCurrency string
	err          error
}

func (p *fakeProcessor) CreateIntent(ctx context.Context, amount int64, currency, idempotencyKey string) (*ProcessorIntent, error) {
	p.createCalls++
	p.lastKey = idempotencyKey
	p.lastAmount = amount
	p.lastCurrency = currency
	if p.err != nil {
		return nil, p.err
	}
	return &ProcessorIntent{
		ID:           "pi_123",
		ClientSecret: "pi_123_secret_abc",
		Amount:       amount,
		Currency:     currency,
		Status:       "requires_payment_method",
	}, nil
}

func (p *fakeProcessor) ConfirmIntent(ctx context.Context, intentID string, card ProcessorCard) (*ProcessorIntent, error) {
	p.confirmCalls++
	if p.err != nil {
		return nil, p.err
	}
	return &ProcessorIntent{ID: intentID, Status: "succeeded"}, nil
}

func (p *fakeProcessor) Refund(ctx context.Context, intentID string) (*ProcessorRefund, error) {
	p.refundCalls++
	if p.err != nil {
		return nil, p.err
	}
	return &ProcessorRefund{ID: "re_456", PaymentIntent: intentID, Status: "succeeded"}, nil
}

func testService(processor Processor, records RecordStore) *Service {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := &config.Config{
		Checkout: config.CheckoutConfig{Currency: "usd"},
	}
	return NewService(cfg, processor, records, logger)
}

func TestCreateIntent(t *testing.T) {
	processor := &fakeProcessor{}
	records := NewMemoryRecordStore()
	service := testService(processor, records)

	resp, err := service.CreateIntent(context.Background(), &CreateIntentRequest{
		Amount:   12960,
		Currency: "usd",
	}, "key-1")
	require.NoError(t, err)

	assert.Equal(t, "pi_123_secret_abc", resp.ClientSecret)
	assert.Equal(t, "pi_123", resp.PaymentIntentID)
	assert.Equal(t, "key-1", processor.lastKey)
	assert.Equal(t, int64(12960), processor.lastAmount)

	record, ok := records.Get("pi_123")
	require.True(t, ok)
	assert.Equal(t, IntentStatusCreated, record.Status)
	assert.Equal(t, int64(12960), record.Amount)
	assert.Equal(t, "key-1", record.IdempotencyKey)
}

func TestCreateIntentDefaultsCurrency(t *testing.T) {
	processor := &fakeProcessor{}
	service := testService(processor, NewMemoryRecordStore())

	_, err := service.CreateIntent(context.Background(), &CreateIntentRequest{Amount: 100}, "")
	require.NoError(t, err)
	assert.Equal(t, "usd", processor.lastCurrency)
}

func TestCreateIntentRejectsNonPositiveAmount(t *testing.T) {
	processor := &fakeProcessor{}
	service := testService(processor, NewMemoryRecordStore())

	for _, amount := range []int64{0, -1, -12960} {
		_, err := service.CreateIntent(context.Background(), &CreateIntentRequest{
			Amount:   amount,
			Currency: "usd",
		}, "key-1")
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}

	// The processor is never reached on a rejected amount
	assert.Equal(t, 0, processor.createCalls)
}

func TestCreateIntentProcessorErrorPassesThrough(t *testing.T) {
	processor := &fakeProcessor{err: &ProcessorError{StatusCode: 402, Message: "Your card was declined."}}
	service := testService(processor, NewMemoryRecordStore())

	_, err := service.CreateIntent(context.Background(), &CreateIntentRequest{Amount: 100}, "")
	require.Error(t, err)
	assert.Equal(t, "Your card was declined.", err.Error())
	assert.Equal(t, 1, processor.createCalls)
}

func TestRefund(t *testing.T) {
	processor := &fakeProcessor{}
	records := NewMemoryRecordStore()
	service := testService(processor, records)

	_, err := service.CreateIntent(context.Background(), &CreateIntentRequest{Amount: 100}, "")
	require.NoError(t, err)

	resp, err := service.Refund(context.Background(), &RefundRequest{PaymentIntentID: "pi_123"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "Refund successful", resp.Message)
	require.NotNil(t, resp.Refund)
	assert.Equal(t, "re_456", resp.Refund.ID)
	assert.Equal(t, "succeeded", resp.Refund.Status)

	record, ok := records.Get("pi_123")
	require.True(t, ok)
	assert.Equal(t, IntentStatusRefunded, record.Status)
	assert.Equal(t, "re_456", record.RefundID)
}

func TestRefundRequiresIntentID(t *testing.T) {
	processor := &fakeProcessor{}
	service := testService(processor, NewMemoryRecordStore())

	_, err := service.Refund(context.Background(), &RefundRequest{})
	assert.ErrorIs(t, err, ErrMissingIntentID)
	assert.Equal(t, 0, processor.refundCalls)
}

func TestRefundWithoutRecordStillSucceeds(t *testing.T) {
	processor := &fakeProcessor{}
	service := testService(processor, NewMemoryRecordStore())

	resp, err := service.Refund(context.Background(), &RefundRequest{PaymentIntentID: "pi_unknown"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Refund)
	assert.Equal(t, "re_456", resp.Refund.ID)
}

func TestIntentIDFromClientSecret(t *testing.T) {
	id, err := IntentIDFromClientSecret("pi_123_secret_abc")
	require.NoError(t, err)
	assert.Equal(t, "pi_123", id)

	_, err = IntentIDFromClientSecret("garbage")
	assert.Error(t, err)

	_, err = IntentIDFromClientSecret("_secret_abc")
	assert.Error(t, err)
}
