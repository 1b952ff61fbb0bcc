package utils

import (
	"time"

	"pizza-harness/models"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	UserID string        `json:"user_id"`
	Email  string        `json:"email"`
	Roles  []models.Role `json:"roles"`
	jwt.RegisteredClaims
}

const tokenIssuer = "pizza-harness"

// TokenIssuer hands out session tokens. Without a secret it returns the fixed
// opaque token the caller supplies; with one it signs an HS256 JWT for the user.
type TokenIssuer struct {
	Secret string
	TTL    time.Duration
}

func (ti TokenIssuer) Issue(user models.User, fixed string) (string, error) {
	if ti.Secret == "" {
		return fixed, nil
	}

	ttl := ti.TTL
	if ttl == 0 {
		ttl = 2 * time.Hour
	}

	roles := make([]models.Role, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, r.Role)
	}

	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(ti.Secret))
}
