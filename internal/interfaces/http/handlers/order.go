// internal/interfaces/http/handlers/order.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/shopapp-backend/internal/domain/order"
	"github.com/your-org/shopapp-backend/internal/interfaces/http/middleware"
)

// OrderHandler handles order history endpoints
type OrderHandler struct {
	orderStore order.Store
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderStore order.Store) *OrderHandler {
	return &OrderHandler{
		orderStore: orderStore,
	}
}

// ListOrders handles GET /orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	orders, err := h.orderStore.ListByUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"orders": orders},
	})
}

// GetOrder handles GET /orders/:number
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	o, err := h.orderStore.GetByNumber(c.Request.Context(), userID, c.Param("number"))
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get order",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"order": o},
	})
}
