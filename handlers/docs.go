package handlers

import (
	"net/http"

	"pizza-harness/models"

	"github.com/gin-gonic/gin"
)

type DocsHandler struct {
	Docs models.Endpoints
}

// GetDocs handles /api/docs for any method
func (h *DocsHandler) GetDocs(c *gin.Context) {
	c.JSON(http.StatusOK, h.Docs)
}
