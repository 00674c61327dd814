// internal/domain/payment/service.go
package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/your-org/shopapp-backend/internal/config"
)

// Request validation errors. The texts are wire visible and fixed.
var (
	// ErrInvalidAmount means the requested amount is not a positive number
	// of minor units.
	ErrInvalidAmount = errors.New("Invalid amount provided")

	// ErrMissingIntentID means a refund request carried no payment intent id.
	ErrMissingIntentID = errors.New("Payment Intent ID is required")
)

// CreateIntentRequest is a request to create a payment intent
type CreateIntentRequest struct {
	Amount   int64  `json:"amount" binding:"required"`
	Currency string `json:"currency"`
}

// IntentResponse is the answer to a successful intent creation
type IntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

// RefundRequest is a request to refund a payment in full
type RefundRequest struct {
	PaymentIntentID string `json:"paymentIntentId"`
}

// RefundResponse is the answer to a successful refund. The refund object is
// the processor's, passed through as received.
type RefundResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Refund  *ProcessorRefund `json:"refund"`
}

// Service fronts the payment processor: it validates requests, forwards them
// to the processor exactly once and keeps an intent record per created
// intent. Processor calls are never retried here; retry policy belongs to
// the caller.
type Service struct {
	config    *config.Config
	processor Processor
	records   RecordStore
	logger    *logrus.Logger
}

// NewService creates a new payment service
func NewService(cfg *config.Config, processor Processor, records RecordStore, logger *logrus.Logger) *Service {
	return &Service{
		config:    cfg,
		processor: processor,
		records:   records,
		logger:    logger,
	}
}

// CreateIntent validates the request and registers a payment intent with the
// processor. The amount must be a positive number of minor units.
func (s *Service) CreateIntent(ctx context.Context, req *CreateIntentRequest, idempotencyKey string) (*IntentResponse, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	currency := req.Currency
	if currency == "" {
		currency = s.config.Checkout.Currency
	}

	intent, err := s.processor.CreateIntent(ctx, req.Amount, currency, idempotencyKey)
	if err != nil {
		return nil, err
	}

	record := &IntentRecord{
		PaymentIntentID: intent.ID,
		Amount:          intent.Amount,
		Currency:        intent.Currency,
		Status:          IntentStatusCreated,
		IdempotencyKey:  idempotencyKey,
	}
	if err := s.records.Create(ctx, record); err != nil {
		// The intent exists at the processor; losing the trace row must not
		// fail the checkout.
		s.logger.WithError(err).WithField("payment_intent_id", intent.ID).
			Warn("failed to record payment intent")
	}

	s.logger.WithFields(logrus.Fields{
		"payment_intent_id": intent.ID,
		"amount":            intent.Amount,
		"currency":          intent.Currency,
	}).Info("payment intent created")

	return &IntentResponse{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
	}, nil
}

// Refund refunds the full captured amount of a payment intent
func (s *Service) Refund(ctx context.Context, req *RefundRequest) (*RefundResponse, error) {
	if req.PaymentIntentID == "" {
		return nil, ErrMissingIntentID
	}

	refund, err := s.processor.Refund(ctx, req.PaymentIntentID)
	if err != nil {
		return nil, err
	}

	if err := s.records.MarkRefunded(ctx, req.PaymentIntentID, refund.ID); err != nil {
		// Intents refunded out of band have no record row
		if !errors.Is(err, ErrRecordNotFound) {
			s.logger.WithError(err).WithField("payment_intent_id", req.PaymentIntentID).
				Warn("failed to mark intent refunded")
		}
	}

	s.logger.WithFields(logrus.Fields{
		"payment_intent_id": req.PaymentIntentID,
		"refund_id":         refund.ID,
	}).Info("payment refunded")

	return &RefundResponse{
		Success: true,
		Message: "Refund successful",
		Refund:  refund,
	}, nil
}

// IntentIDFromClientSecret derives the payment intent id from a client
// secret of the form "<intent id>_secret_<nonce>".
func IntentIDFromClientSecret(clientSecret string) (string, error) {
	idx := strings.Index(clientSecret, "_secret")
	if idx <= 0 {
		return "", fmt.Errorf("malformed client secret")
	}
	return clientSecret[:idx], nil
}
