package handlers

import (
	"net/http"

	"pizza-harness/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	Session *utils.Session
}

// Me returns the current user, or JSON null for an anonymous session.
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := h.Session.CurrentUser()
	if !ok {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, user)
}
