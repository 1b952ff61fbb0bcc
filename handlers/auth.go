package handlers

import (
	"encoding/json"
	"net/http"

	"pizza-harness/dtos"
	"pizza-harness/fixtures"
	"pizza-harness/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type AuthHandler struct {
	Session       *utils.Session
	Tokens        utils.TokenIssuer
	Reporter      utils.Reporter
	RegisterError *dtos.RegisterError
}

// Register handles POST /api/auth
func (h *AuthHandler) Register(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		h.malformed(c, err)
		return
	}

	// A configured failure wins over body validation.
	var target struct {
		Email string `json:"email"`
	}
	_ = json.Unmarshal(body, &target)
	if h.RegisterError.Matches(target.Email) {
		fail(c, ValidationFailure, statusOr(h.RegisterError.Status, http.StatusBadRequest),
			gin.H{"message": h.RegisterError.Message})
		return
	}

	var req dtos.RegisterRequest
	if err := binding.JSON.BindBody(body, &req); err != nil {
		h.malformed(c, err)
		return
	}

	user, err := h.Session.Register(req.Name, req.Email, req.Password)
	if err != nil {
		h.Reporter.Errorf("POST /api/auth: register %s: %v", req.Email, err)
		fail(c, ValidationFailure, http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	token, err := h.Tokens.Issue(user, fixtures.RegisterToken)
	if err != nil {
		h.Reporter.Errorf("POST /api/auth: issue token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dtos.AuthResponse{User: user, Token: token})
}

// Login handles PUT /api/auth
func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.malformed(c, err)
		return
	}

	user, ok := h.Session.Login(req.Email, req.Password)
	if !ok {
		fail(c, AuthenticationFailure, http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	token, err := h.Tokens.Issue(user, fixtures.LoginToken)
	if err != nil {
		h.Reporter.Errorf("PUT /api/auth: issue token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dtos.AuthResponse{User: user, Token: token})
}

// Logout handles DELETE /api/auth
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Session.Logout()
	c.Status(http.StatusNoContent)
}

// Unsupported answers any other method on /api/auth.
func (h *AuthHandler) Unsupported(c *gin.Context) {
	h.Reporter.Errorf("%s /api/auth: expected POST, PUT or DELETE", c.Request.Method)
	c.JSON(http.StatusMethodNotAllowed, gin.H{"message": "Method not allowed"})
}

func (h *AuthHandler) malformed(c *gin.Context, err error) {
	msg := utils.SanitizeValidationError(err)
	h.Reporter.Errorf("%s %s: malformed body: %s", c.Request.Method, c.Request.URL.Path, msg)
	fail(c, ValidationFailure, http.StatusBadRequest, gin.H{"message": msg})
}
