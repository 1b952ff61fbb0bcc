package handlers

import (
	"github.com/gin-gonic/gin"
)

// FailureKind classifies an error response. Every failure except
// RouteNotFound is injected by a scenario override.
type FailureKind string

const (
	AuthenticationFailure FailureKind = "authentication"
	ValidationFailure     FailureKind = "validation"
	BusinessFailure       FailureKind = "business"
	VerificationFailure   FailureKind = "verification"
	RouteNotFound         FailureKind = "route_not_found"
)

// FailureKey is the gin context key a failing handler stores its FailureKind under.
const FailureKey = "failure"

func fail(c *gin.Context, kind FailureKind, status int, body gin.H) {
	c.Set(FailureKey, kind)
	c.JSON(status, body)
}

// statusOr returns status, or fallback when the override left it unset.
func statusOr(status, fallback int) int {
	if status == 0 {
		return fallback
	}
	return status
}
