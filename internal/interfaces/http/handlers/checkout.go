// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/shopapp-backend/internal/config"
	"github.com/your-org/shopapp-backend/internal/domain/cart"
	"github.com/your-org/shopapp-backend/internal/domain/checkout"
	"github.com/your-org/shopapp-backend/internal/interfaces/http/middleware"
)

// CheckoutHandler handles checkout session endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
	config          *config.Config
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkoutService *checkout.Service, cfg *config.Config) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		config:          cfg,
	}
}

// StartSession handles POST /checkout/session
func (h *CheckoutHandler) StartSession(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}
	userName := middleware.GetUserNameFromContext(c)

	session, err := h.checkoutService.StartSession(c.Request.Context(), userID, userName)
	if err != nil {
		h.renderError(c, err)
		return
	}

	summary, err := h.checkoutService.GetSummary(c.Request.Context(), session)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Checkout session started",
		"data": gin.H{
			"session":          session.View(),
			"summary":          summary,
			"wallet_supported": h.checkoutService.WalletSupported(c.Request.Context()),
		},
	})
}

// GetSession handles GET /checkout/session/:id
func (h *CheckoutHandler) GetSession(c *gin.Context) {
	session, ok := h.sessionFromRequest(c)
	if !ok {
		return
	}

	summary, err := h.checkoutService.GetSummary(c.Request.Context(), session)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"session": session.View(),
			"summary": summary,
		},
	})
}

// UpdateShipping handles PUT /checkout/session/:id/shipping
func (h *CheckoutHandler) UpdateShipping(c *gin.Context) {
	session, ok := h.sessionFromRequest(c)
	if !ok {
		return
	}

	var req struct {
		Shipping checkout.ShippingForm `json:"shipping"`
		Express  bool                  `json:"express"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := session.UpdateShipping(req.Shipping, req.Express); err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Shipping details updated",
		"data":    gin.H{"session": session.View()},
	})
}

// UpdatePayment handles PUT /checkout/session/:id/payment
func (h *CheckoutHandler) UpdatePayment(c *gin.Context) {
	session, ok := h.sessionFromRequest(c)
	if !ok {
		return
	}

	var req struct {
		Method  checkout.PaymentMethod `json:"method"`
		Payment *checkout.PaymentForm  `json:"payment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if req.Method != "" {
		if err := h.checkoutService.SelectMethod(c.Request.Context(), session, req.Method); err != nil {
			h.renderError(c, err)
			return
		}
	}
	if req.Payment != nil {
		if err := session.UpdatePayment(*req.Payment); err != nil {
			h.renderError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment details updated",
		"data":    gin.H{"session": session.View()},
	})
}

// ContinueToPayment handles POST /checkout/session/:id/continue
func (h *CheckoutHandler) ContinueToPayment(c *gin.Context) {
	session, ok := h.sessionFromRequest(c)
	if !ok {
		return
	}

	if err := session.ContinueToPayment(); err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Proceeded to payment step",
		"data":    gin.H{"session": session.View()},
	})
}

// Back handles POST /checkout/session/:id/back
func (h *CheckoutHandler) Back(c *gin.Context) {
	session, ok := h.sessionFromRequest(c)
	if !ok {
		return
	}

	if err := session.Back(); err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Returned to shipping step",
		"data":    gin.H{"session": session.View()},
	})
}

// PlaceOrder handles POST /checkout/session/:id/place-order
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	session, ok := h.sessionFromRequest(c)
	if !ok {
		return
	}

	result, err := h.checkoutService.PlaceOrder(c.Request.Context(), session.ID)
	if err != nil {
		h.renderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": result.Message,
		"data":    gin.H{"order": result.Order},
	})
}

// sessionFromRequest resolves the session in the :id parameter and verifies
// it belongs to the authenticated user.
func (h *CheckoutHandler) sessionFromRequest(c *gin.Context) (*checkout.Session, bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return nil, false
	}

	session, err := h.checkoutService.Sessions().Get(c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return nil, false
	}

	if session.UserID != userID {
		// Do not reveal other users' sessions
		c.JSON(http.StatusNotFound, gin.H{
			"error": checkout.ErrSessionNotFound.Error(),
		})
		return nil, false
	}

	return session, true
}

// renderError maps checkout domain errors onto HTTP status codes
func (h *CheckoutHandler) renderError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, checkout.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, checkout.ErrValidationFailed),
		errors.Is(err, checkout.ErrInvalidAmount),
		errors.Is(err, cart.ErrEmptyCart):
		status = http.StatusBadRequest
	case errors.Is(err, checkout.ErrProcessing),
		errors.Is(err, checkout.ErrWrongStep):
		status = http.StatusConflict
	case errors.Is(err, checkout.ErrPaymentDeclined):
		status = http.StatusPaymentRequired
	case errors.Is(err, checkout.ErrGatewayTimeout):
		status = http.StatusGatewayTimeout
	case errors.Is(err, checkout.ErrGatewayUnavailable):
		status = http.StatusBadGateway
	}

	c.JSON(status, gin.H{
		"error": err.Error(),
	})
}
