// internal/domain/payment/confirmer_test.go
package payment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/shopapp-backend/internal/domain/checkout"
)

func TestServerConfirmerWalletUnsupported(t *testing.T) {
	c := NewServerConfirmer(&fakeProcessor{})

	assert.False(t, c.WalletSupported(context.Background()))

	_, err := c.ConfirmWallet(context.Background(), "pi_123_secret_abc", checkout.WalletOptions{})
	assert.Error(t, err)
}

func TestServerConfirmerConfirmCard(t *testing.T) {
	processor := &fakeProcessor{}
	c := NewServerConfirmer(processor)

	id, err := c.ConfirmCard(context.Background(), "pi_123_secret_abc", checkout.CardDetails{
		Number:     "4242 4242 4242 4242",
		NameOnCard: "Jane Doe",
		Expiration: "12/30",
		CVV:        "123",
	})
	require.NoError(t, err)
	assert.Equal(t, "pi_123", id)
	assert.Equal(t, 1, processor.confirmCalls)
}

func TestServerConfirmerConfirmCardBadSecret(t *testing.T) {
	processor := &fakeProcessor{}
	c := NewServerConfirmer(processor)

	_, err := c.ConfirmCard(context.Background(), "garbage", checkout.CardDetails{
		Number:     "4242424242424242",
		Expiration: "12/30",
		CVV:        "123",
	})
	assert.Error(t, err)
	assert.Equal(t, 0, processor.confirmCalls)
}

func TestParseExpiration(t *testing.T) {
	tests := []struct {
		input   string
		month   int
		year    int
		wantErr bool
	}{
		{input: "12/30", month: 12, year: 2030},
		{input: "01/25", month: 1, year: 2025},
		{input: " 6 / 29 ", month: 6, year: 2029},
		{input: "12/2030", month: 12, year: 2030},
		{input: "13/30", wantErr: true},
		{input: "0/30", wantErr: true},
		{input: "1230", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		month, year, err := parseExpiration(tt.input)
		if tt.wantErr {
			assert.Error(t, err, tt.input)
			continue
		}
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.month, month, tt.input)
		assert.Equal(t, tt.year, year, tt.input)
	}
}
