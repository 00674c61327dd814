// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/shopapp-backend/internal/config"
	"github.com/your-org/shopapp-backend/internal/domain/cart"
	"github.com/your-org/shopapp-backend/internal/domain/order"
	"github.com/your-org/shopapp-backend/internal/domain/pricing"
)

// Service orchestrates the checkout flow: it drives the session state
// machine, computes totals, runs the payment sequence and finalizes the
// order.
type Service struct {
	config    *config.Config
	carts     cart.Store
	orders    order.Store
	gateway   GatewayClient
	confirmer Confirmer
	sessions  *Manager
	logger    *logrus.Logger
}

// NewService creates a new checkout service
func NewService(cfg *config.Config, carts cart.Store, orders order.Store, gateway GatewayClient, confirmer Confirmer, logger *logrus.Logger) *Service {
	return &Service{
		config:    cfg,
		carts:     carts,
		orders:    orders,
		gateway:   gateway,
		confirmer: confirmer,
		sessions:  NewManager(cfg.Checkout.SessionTTL),
		logger:    logger,
	}
}

// Sessions exposes the session manager
func (s *Service) Sessions() *Manager {
	return s.sessions
}

// WalletSupported reports whether the wallet method can be offered
func (s *Service) WalletSupported(ctx context.Context) bool {
	return s.confirmer.WalletSupported(ctx)
}

// Summary represents the order summary shown alongside both checkout steps
type Summary struct {
	Items  []cart.LineItem `json:"items"`
	Totals pricing.Totals  `json:"totals"`
}

// StartSession opens a checkout session for the user. The cart must not be
// empty.
func (s *Service) StartSession(ctx context.Context, userID uint, userName string) (*Session, error) {
	items, err := s.carts.Items(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}
	if len(items) == 0 {
		return nil, cart.ErrEmptyCart
	}

	session := s.sessions.Create(userID, userName)

	// Wallet support is probed once per session; unsupported devices are
	// silently kept on the card method.
	if !s.confirmer.WalletSupported(ctx) {
		s.logger.WithField("session_id", session.ID).
			Info("wallet payments not supported, card method only")
	}

	return session, nil
}

// GetSummary computes the live order summary for a session
func (s *Service) GetSummary(ctx context.Context, session *Session) (*Summary, error) {
	items, err := s.carts.Items(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	_, _, express, _, _, _ := session.snapshot()
	return &Summary{
		Items:  items,
		Totals: pricing.ComputeTotals(cart.Subtotal(items), express),
	}, nil
}

// SelectMethod sets the session's payment method, applying the silent
// wallet-to-card fallback when the device lacks wallet support.
func (s *Service) SelectMethod(ctx context.Context, session *Session, method PaymentMethod) error {
	return session.SelectMethod(method, s.confirmer.WalletSupported(ctx))
}

// PlaceOrderResult carries the finalized order and the confirmation message
// shown to the user.
type PlaceOrderResult struct {
	Order   *order.Order `json:"order"`
	Message string       `json:"message"`
}

// PlaceOrder runs the full payment and finalization sequence for a session:
// amount computation, intent creation, processor confirmation, order
// creation, cart clearing. Strictly in that order, at most one in flight per
// session.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string) (*PlaceOrderResult, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	if err := session.beginSubmit(); err != nil {
		return nil, err
	}

	result, err := s.placeOrder(ctx, session)
	if err != nil {
		// Rotate the idempotency key only after the processor saw the
		// intent; a fresh attempt must not replay a declined confirmation.
		session.finishSubmit(false, isDecline(err))
		return nil, err
	}

	session.finishSubmit(true, false)

	// Success exits the flow entirely; the session is discarded.
	s.sessions.Delete(session.ID)

	return result, nil
}

// placeOrder holds the body of the submission sequence; the caller owns the
// submit-state bookkeeping.
func (s *Service) placeOrder(ctx context.Context, session *Session) (*PlaceOrderResult, error) {
	step, method, express, shippingForm, paymentForm, idempotencyKey := session.snapshot()

	if step != StepPayment {
		return nil, ErrWrongStep
	}

	// Card fields are the local guard for the card method
	if method == MethodCard {
		if err := paymentForm.Validate(); err != nil {
			return nil, err
		}
	}

	items, err := s.carts.Items(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}
	if len(items) == 0 {
		return nil, cart.ErrEmptyCart
	}

	totals := pricing.ComputeTotals(cart.Subtotal(items), express)
	if totals.Total <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidAmount, totals.Total)
	}

	// Intent creation strictly precedes confirmation
	currency := s.config.Checkout.Currency
	intent, err := s.gateway.CreateIntent(ctx, totals.Total, currency, idempotencyKey)
	if err != nil {
		return nil, err
	}

	intentID, err := s.confirmIntent(ctx, session, method, intent, paymentForm)
	if err != nil {
		return nil, err
	}
	session.setPaymentIntentID(intentID)

	o := s.buildOrder(session, items, totals, express, shippingForm, method, paymentForm, intentID)

	// Order creation must succeed before the cart is touched
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.carts.Clear(ctx, session.UserID); err != nil {
		// The order exists; a stale cart is recoverable
		s.logger.WithError(err).WithField("order_number", o.OrderNumber).
			Warn("failed to clear cart after order creation")
	}

	s.logger.WithFields(logrus.Fields{
		"order_number":      o.OrderNumber,
		"user_id":           o.UserID,
		"total_amount":      o.TotalAmount,
		"payment_method":    string(method),
		"payment_intent_id": intentID,
	}).Info("order placed")

	return &PlaceOrderResult{
		Order: o,
		Message: fmt.Sprintf("Your order #%s has been placed and is being processed.",
			o.OrderNumber),
	}, nil
}

// confirmIntent completes the payment intent with the processor via the
// method-appropriate confirmation routine.
func (s *Service) confirmIntent(ctx context.Context, session *Session, method PaymentMethod, intent *Intent, paymentForm PaymentForm) (string, error) {
	if method == MethodWallet {
		intentID, err := s.confirmer.ConfirmWallet(ctx, intent.ClientSecret, WalletOptions{
			MerchantName:    s.config.Checkout.MerchantName,
			MerchantCountry: s.config.Checkout.MerchantCountry,
			Currency:        s.config.Checkout.Currency,
			BillingAddress:  true,
		})
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrPaymentDeclined, err)
		}
		return intentID, nil
	}

	intentID, err := s.confirmer.ConfirmCard(ctx, intent.ClientSecret, CardDetails{
		Number:     paymentForm.CardNumber,
		NameOnCard: paymentForm.NameOnCard,
		Expiration: paymentForm.Expiration,
		CVV:        paymentForm.CVV,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPaymentDeclined, err)
	}
	return intentID, nil
}

// buildOrder assembles the order record from a snapshot of the cart and the
// session's form state.
func (s *Service) buildOrder(session *Session, items []cart.LineItem, totals pricing.Totals, express bool, shippingForm ShippingForm, method PaymentMethod, paymentForm PaymentForm, intentID string) *order.Order {
	orderItems := make([]order.OrderItem, len(items))
	for i, item := range items {
		orderItems[i] = order.OrderItem{
			ProductID:  item.ProductID,
			Name:       item.Name,
			Image:      item.Image,
			Quantity:   item.Quantity,
			Price:      item.UnitPrice,
			TotalPrice: item.UnitPrice * int64(item.Quantity),
		}
	}

	shippingMethod := "Standard"
	if express {
		shippingMethod = "Express"
	}

	return &order.Order{
		UserID:         session.UserID,
		Status:         order.OrderStatusProcessing,
		SubtotalAmount: totals.Subtotal,
		ShippingAmount: totals.Shipping,
		TaxAmount:      totals.Tax,
		TotalAmount:    totals.Total,
		Currency:       s.config.Checkout.Currency,
		ShippingAddress: order.Address{
			Name:    shippingForm.Name,
			Street:  shippingForm.Street,
			City:    shippingForm.City,
			State:   shippingForm.State,
			Zip:     shippingForm.Zip,
			Country: shippingForm.Country,
		},
		ShippingMethod:  shippingMethod,
		PaymentMethod:   paymentDescriptor(method, paymentForm),
		PaymentIntentID: intentID,
		Items:           orderItems,
	}
}

// paymentDescriptor builds the display-only payment method string
func paymentDescriptor(method PaymentMethod, paymentForm PaymentForm) string {
	if method == MethodWallet {
		return "Wallet"
	}
	return fmt.Sprintf("Credit Card (ending in %s)", paymentForm.Last4())
}

// isDecline reports whether err is a processor decline
func isDecline(err error) bool {
	return err != nil && errors.Is(err, ErrPaymentDeclined)
}
