// internal/domain/checkout/errors.go
package checkout

import "errors"

// Checkout error taxonomy. Validation errors are resolved locally by keeping
// the session where it is and prompting the user; gateway and processor
// errors leave the session recoverable so the user may retry.
var (
	// ErrValidationFailed means required form fields are missing.
	ErrValidationFailed = errors.New("missing required fields")

	// ErrInvalidAmount means the computed charge amount is not a positive
	// number of minor units.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrGatewayUnavailable means the payment service could not be reached
	// or answered with an error. The wrapped message carries the backend's
	// error text verbatim.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")

	// ErrGatewayTimeout means a gateway call exceeded its deadline.
	ErrGatewayTimeout = errors.New("payment gateway timed out")

	// ErrPaymentDeclined means the processor rejected the confirmation. The
	// wrapped message carries the processor's reason.
	ErrPaymentDeclined = errors.New("payment declined")

	// ErrProcessing means a place-order submission is already in flight for
	// this session.
	ErrProcessing = errors.New("order submission already in progress")

	// ErrSessionNotFound means the checkout session does not exist or has
	// expired.
	ErrSessionNotFound = errors.New("checkout session not found")

	// ErrWrongStep means the requested action is not valid for the
	// session's current step.
	ErrWrongStep = errors.New("action not valid for current checkout step")
)
