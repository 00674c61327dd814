// internal/domain/pricing/calculator.go
package pricing

// All amounts are integer minor units (cents). Working in cents keeps the
// subtotal/shipping/tax/total identity exact with no floating-point drift.

const (
	// TaxRatePercent is the flat tax rate applied to the cart subtotal.
	TaxRatePercent = 8

	// FreeShippingThreshold is the subtotal above which standard shipping
	// is free. The threshold is exclusive: a subtotal of exactly $100.00
	// still pays the standard fee.
	FreeShippingThreshold int64 = 10000

	// StandardShippingFee is the flat standard shipping fee.
	StandardShippingFee int64 = 1000

	// ExpressShippingFee is charged for express delivery regardless of
	// subtotal.
	ExpressShippingFee int64 = 8000
)

// Totals represents the computed pricing breakdown for a checkout
type Totals struct {
	Subtotal int64 `json:"subtotal"`
	Shipping int64 `json:"shipping"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`
}

// ComputeTotals calculates shipping, tax and total from the cart subtotal
// and the selected shipping method. Pure and deterministic.
func ComputeTotals(subtotal int64, express bool) Totals {
	shipping := shippingFee(subtotal, express)
	tax := taxAmount(subtotal)

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
	}
}

// shippingFee returns the shipping cost for the given subtotal and method
func shippingFee(subtotal int64, express bool) int64 {
	if express {
		return ExpressShippingFee
	}
	if subtotal > FreeShippingThreshold {
		return 0
	}
	return StandardShippingFee
}

// taxAmount returns the tax on the subtotal, rounded half-up to the cent
func taxAmount(subtotal int64) int64 {
	return (subtotal*TaxRatePercent + 50) / 100
}
