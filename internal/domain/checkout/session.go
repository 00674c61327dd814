// internal/domain/checkout/session.go
package checkout

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Step represents the active checkout step
type Step string

const (
	StepShipping Step = "shipping"
	StepPayment  Step = "payment"
)

// PaymentMethod represents the selected payment method
type PaymentMethod string

const (
	MethodCard   PaymentMethod = "card"
	MethodWallet PaymentMethod = "wallet"
)

// SubmitState tracks the single-slot place-order submission for a session
type SubmitState string

const (
	SubmitIdle      SubmitState = "idle"
	SubmitInFlight  SubmitState = "submitting"
	SubmitSucceeded SubmitState = "succeeded"
	SubmitFailed    SubmitState = "failed"
)

// ShippingForm holds the shipping address input. All fields except country
// are required before the payment step is reachable.
type ShippingForm struct {
	Name    string `json:"name"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// Validate checks that all required shipping fields are present
func (f *ShippingForm) Validate() error {
	if f.Name == "" || f.Street == "" || f.City == "" || f.State == "" || f.Zip == "" {
		return fmt.Errorf("%w: please fill in all shipping details", ErrValidationFailed)
	}
	return nil
}

// PaymentForm holds card input. Only required when the card method is
// selected; never persisted beyond the session.
type PaymentForm struct {
	CardNumber string `json:"card_number"`
	NameOnCard string `json:"name_on_card"`
	Expiration string `json:"expiration"`
	CVV        string `json:"cvv"`
}

// Validate checks that all required card fields are present
func (f *PaymentForm) Validate() error {
	if f.CardNumber == "" || f.NameOnCard == "" || f.Expiration == "" || f.CVV == "" {
		return fmt.Errorf("%w: please fill in all payment details", ErrValidationFailed)
	}
	return nil
}

// Last4 returns the trailing four digits of the card number
func (f *PaymentForm) Last4() string {
	if len(f.CardNumber) < 4 {
		return f.CardNumber
	}
	return f.CardNumber[len(f.CardNumber)-4:]
}

// Session tracks a single user's progress through the shipping and payment
// steps. One session exists per active checkout; it lives in process memory
// and is discarded on exit.
type Session struct {
	mu sync.Mutex

	ID       string
	UserID   uint
	UserName string

	Step            Step
	Method          PaymentMethod
	ExpressShipping bool

	Shipping ShippingForm
	Payment  PaymentForm

	// IdempotencyKey is forwarded to the payment service so a retried
	// submission cannot create a duplicate charge.
	IdempotencyKey  string
	PaymentIntentID string

	submitState SubmitState

	CreatedAt time.Time
	ExpiresAt time.Time
}

// newSession creates a session in the shipping step with the user's display
// name prefilled, matching the original form behavior.
func newSession(userID uint, userName string, ttl time.Duration) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:       uuid.New().String(),
		UserID:   userID,
		UserName: userName,
		Step:     StepShipping,
		Method:   MethodCard,
		Shipping: ShippingForm{
			Name:    userName,
			Country: "United States",
		},
		Payment: PaymentForm{
			NameOnCard: userName,
		},
		IdempotencyKey: uuid.New().String(),
		submitState:    SubmitIdle,
		CreatedAt:      now,
		ExpiresAt:      now.Add(ttl),
	}
}

// UpdateShipping replaces the shipping form and express flag. Rejected while
// a submission is in flight.
func (s *Session) UpdateShipping(form ShippingForm, express bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitState == SubmitInFlight {
		return ErrProcessing
	}

	// Country is fixed in this design
	form.Country = "United States"
	s.Shipping = form
	s.ExpressShipping = express
	return nil
}

// UpdatePayment replaces the card form. Rejected while a submission is in
// flight.
func (s *Session) UpdatePayment(form PaymentForm) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitState == SubmitInFlight {
		return ErrProcessing
	}

	s.Payment = form
	return nil
}

// SelectMethod sets the payment method. Selecting the wallet when the device
// does not support it silently falls back to card.
func (s *Session) SelectMethod(method PaymentMethod, walletSupported bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitState == SubmitInFlight {
		return ErrProcessing
	}

	if method == MethodWallet && !walletSupported {
		method = MethodCard
	}
	s.Method = method
	return nil
}

// ContinueToPayment transitions shipping -> payment, guarded by the shipping
// form being complete. On guard failure the session stays in shipping.
func (s *Session) ContinueToPayment() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitState == SubmitInFlight {
		return ErrProcessing
	}
	if s.Step != StepShipping {
		return ErrWrongStep
	}
	if err := s.Shipping.Validate(); err != nil {
		return err
	}

	s.Step = StepPayment
	return nil
}

// Back transitions payment -> shipping. Entered payment fields are kept for
// the lifetime of the session. Back is rejected while a submission is in
// flight rather than cancelling the gateway call.
func (s *Session) Back() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.submitState == SubmitInFlight {
		return ErrProcessing
	}
	if s.Step != StepPayment {
		return ErrWrongStep
	}

	s.Step = StepShipping
	return nil
}

// beginSubmit moves the session into the in-flight submit state. The
// compare-and-swap under the session lock is the mutual-exclusion mechanism:
// two rapid place-order triggers yield at most one gateway attempt.
func (s *Session) beginSubmit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Step != StepPayment {
		return ErrWrongStep
	}

	switch s.submitState {
	case SubmitIdle, SubmitFailed:
		s.submitState = SubmitInFlight
		return nil
	case SubmitInFlight:
		return ErrProcessing
	default: // SubmitSucceeded
		return fmt.Errorf("%w: order already placed", ErrProcessing)
	}
}

// finishSubmit records the outcome of an in-flight submission. A declined
// payment rotates the idempotency key: the failed intent must not be
// replayed on the next attempt.
func (s *Session) finishSubmit(succeeded bool, rotateKey bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if succeeded {
		s.submitState = SubmitSucceeded
		return
	}

	s.submitState = SubmitFailed
	if rotateKey {
		s.IdempotencyKey = uuid.New().String()
	}
}

// SubmitStatus returns the current submission state
func (s *Session) SubmitStatus() SubmitState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitState
}

// setPaymentIntentID records the confirmed intent id on the session
func (s *Session) setPaymentIntentID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.PaymentIntentID = id
}

// View is the serializable state of a session handed to API callers. Card
// number and CVV are never echoed back; only the display fields are.
type View struct {
	ID              string        `json:"id"`
	Step            Step          `json:"step"`
	Method          PaymentMethod `json:"payment_method"`
	ExpressShipping bool          `json:"express_shipping"`
	Shipping        ShippingForm  `json:"shipping"`
	NameOnCard      string        `json:"name_on_card"`
	CardLast4       string        `json:"card_last4"`
	SubmitState     SubmitState   `json:"submit_state"`
	ExpiresAt       time.Time     `json:"expires_at"`
}

// View returns the session's current state for API responses
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	return View{
		ID:              s.ID,
		Step:            s.Step,
		Method:          s.Method,
		ExpressShipping: s.ExpressShipping,
		Shipping:        s.Shipping,
		NameOnCard:      s.Payment.NameOnCard,
		CardLast4:       s.Payment.Last4(),
		SubmitState:     s.submitState,
		ExpiresAt:       s.ExpiresAt,
	}
}

// snapshot returns copies of the fields PlaceOrder needs, taken under the
// session lock.
func (s *Session) snapshot() (Step, PaymentMethod, bool, ShippingForm, PaymentForm, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Step, s.Method, s.ExpressShipping, s.Shipping, s.Payment, s.IdempotencyKey
}
