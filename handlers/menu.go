package handlers

import (
	"net/http"

	"pizza-harness/models"

	"github.com/gin-gonic/gin"
)

type MenuHandler struct {
	Menu []models.MenuItem
}

// GetMenu handles GET /api/order/menu
func (h *MenuHandler) GetMenu(c *gin.Context) {
	c.JSON(http.StatusOK, h.Menu)
}
