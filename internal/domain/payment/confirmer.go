// internal/domain/payment/confirmer.go
package payment

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/your-org/shopapp-backend/internal/domain/checkout"
)

// ServerConfirmer completes payment intents from the server side. Card
// payments are confirmed directly with the processor. Device wallets cannot
// be driven from a server process, so the wallet method is reported as
// unsupported and checkout falls back to card.
type ServerConfirmer struct {
	processor Processor
}

// NewServerConfirmer creates a confirmer backed by the processor API
func NewServerConfirmer(processor Processor) *ServerConfirmer {
	return &ServerConfirmer{processor: processor}
}

// WalletSupported reports whether wallet payments can be confirmed here
func (c *ServerConfirmer) WalletSupported(ctx context.Context) bool {
	return false
}

// ConfirmWallet rejects wallet confirmation; it requires a device wallet
func (c *ServerConfirmer) ConfirmWallet(ctx context.Context, clientSecret string, opts checkout.WalletOptions) (string, error) {
	return "", fmt.Errorf("wallet confirmation requires a device wallet")
}

// ConfirmCard confirms the intent behind clientSecret with card details
func (c *ServerConfirmer) ConfirmCard(ctx context.Context, clientSecret string, card checkout.CardDetails) (string, error) {
	intentID, err := IntentIDFromClientSecret(clientSecret)
	if err != nil {
		return "", err
	}

	expMonth, expYear, err := parseExpiration(card.Expiration)
	if err != nil {
		return "", err
	}

	intent, err := c.processor.ConfirmIntent(ctx, intentID, ProcessorCard{
		Number:   strings.ReplaceAll(card.Number, " ", ""),
		ExpMonth: expMonth,
		ExpYear:  expYear,
		CVC:      card.CVV,
	})
	if err != nil {
		return "", err
	}
	return intent.ID, nil
}

// parseExpiration splits an "MM/YY" expiration into month and full year
func parseExpiration(expiration string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(expiration), "/")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expiration must be in MM/YY format")
	}

	month, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid expiration month")
	}

	year, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || year < 0 {
		return 0, 0, fmt.Errorf("invalid expiration year")
	}
	if year < 100 {
		year += 2000
	}
	return month, year, nil
}
