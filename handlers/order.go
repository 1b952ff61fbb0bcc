package handlers

import (
	"encoding/json"
	"net/http"

	"pizza-harness/dtos"
	"pizza-harness/fixtures"
	"pizza-harness/models"
	"pizza-harness/utils"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	History  models.OrderHistory
	Response *dtos.OrderResponseOverride
	Error    *dtos.OrderError
	Reporter utils.Reporter
}

// GetOrders handles GET /api/order
func (h *OrderHandler) GetOrders(c *gin.Context) {
	c.JSON(http.StatusOK, h.History)
}

// CreateOrder places an order. A configured order error wins over any body;
// otherwise the request fields come back with the order id and pizza JWT.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	if h.Error != nil {
		fail(c, BusinessFailure, statusOr(h.Error.Status, http.StatusInternalServerError),
			gin.H{"message": h.Error.Message})
		return
	}

	var order models.PlacedOrder
	if err := c.ShouldBindJSON(&order); err != nil {
		h.Reporter.Errorf("POST /api/order: malformed body: %v", err)
		fail(c, ValidationFailure, http.StatusBadRequest, gin.H{"message": utils.SanitizeValidationError(err)})
		return
	}
	if order == nil {
		order = models.PlacedOrder{}
	}

	id, jwt := fixtures.DefaultOrderID, fixtures.DefaultOrderJWT
	if h.Response != nil {
		if h.Response.Order.ID != "" {
			id = h.Response.Order.ID
		}
		if h.Response.JWT != "" {
			jwt = h.Response.JWT
		}
	}

	rawID, err := json.Marshal(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to build order"})
		return
	}
	order["id"] = rawID

	c.JSON(http.StatusOK, models.OrderResponse{Order: order, JWT: jwt})
}
