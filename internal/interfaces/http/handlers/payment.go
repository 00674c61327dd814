// internal/interfaces/http/handlers/payment.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/shopapp-backend/internal/domain/payment"
)

// PaymentHandler handles payment service endpoints
type PaymentHandler struct {
	paymentService *payment.Service
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *payment.Service) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// CreatePaymentIntent handles POST /payment/create-payment-intent
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	var req payment.CreateIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// A missing or zero amount fails binding; the answer matches the
		// service's own amount check.
		c.JSON(http.StatusBadRequest, gin.H{
			"error": payment.ErrInvalidAmount.Error(),
		})
		return
	}

	idempotencyKey := c.GetHeader("Idempotency-Key")

	resp, err := h.paymentService.CreateIntent(c.Request.Context(), &req, idempotencyKey)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RefundPayment handles POST /payment/refund-payment
func (h *PaymentHandler) RefundPayment(c *gin.Context) {
	var req payment.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": payment.ErrMissingIntentID.Error(),
		})
		return
	}

	resp, err := h.paymentService.Refund(c.Request.Context(), &req)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// renderError maps payment service errors onto HTTP status codes. Processor
// failures are surfaced with the processor's message intact.
func (h *PaymentHandler) renderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, payment.ErrInvalidAmount),
		errors.Is(err, payment.ErrMissingIntentID):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
	}
}
