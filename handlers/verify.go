package handlers

import (
	"net/http"

	"pizza-harness/dtos"
	"pizza-harness/models"

	"github.com/gin-gonic/gin"
)

type VerifyHandler struct {
	Response models.JWTPayload
	Error    *dtos.VerifyError
}

// Verify handles /api/order/verify for any method
func (h *VerifyHandler) Verify(c *gin.Context) {
	if h.Error != nil {
		body := gin.H{"message": h.Error.Message}
		if h.Error.Payload != nil {
			body["payload"] = h.Error.Payload
		}
		fail(c, VerificationFailure, statusOr(h.Error.Status, http.StatusBadRequest), body)
		return
	}
	c.JSON(http.StatusOK, h.Response)
}
