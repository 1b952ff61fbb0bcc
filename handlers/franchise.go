package handlers

import (
	"encoding/json"
	"net/http"

	"pizza-harness/models"
	"pizza-harness/utils"

	"github.com/gin-gonic/gin"
)

// FranchiseHandler serves franchise fixtures. Mutations succeed without
// changing what later reads return.
type FranchiseHandler struct {
	List     models.FranchiseList
	Details  []models.Franchise
	Reporter utils.Reporter
}

// ListFranchises handles GET /api/franchise
func (h *FranchiseHandler) ListFranchises(c *gin.Context) {
	c.JSON(http.StatusOK, h.List)
}

// GetFranchise serves the same detail fixture for every franchise id.
func (h *FranchiseHandler) GetFranchise(c *gin.Context) {
	c.JSON(http.StatusOK, h.Details)
}

// CreateFranchise echoes the body back; it is also used for store creation.
func (h *FranchiseHandler) CreateFranchise(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.Reporter.Errorf("POST %s: read body: %v", c.Request.URL.Path, err)
		fail(c, ValidationFailure, http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	if len(body) == 0 {
		body = []byte("null")
	}
	if !json.Valid(body) {
		h.Reporter.Errorf("POST %s: body is not JSON", c.Request.URL.Path)
		fail(c, ValidationFailure, http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	c.Data(http.StatusCreated, "application/json; charset=utf-8", body)
}

// Delete acknowledges removal of a franchise or store.
func (h *FranchiseHandler) Delete(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Unhandled rejects franchise routes no other row matched.
func (h *FranchiseHandler) Unhandled(c *gin.Context) {
	fail(c, RouteNotFound, http.StatusNotFound, gin.H{"message": "Unhandled franchise route"})
}
