package utils

import (
	"testing"

	"pizza-harness/models"

	"github.com/golang-jwt/jwt/v5"
)

var kai = models.User{
	ID:    "3",
	Name:  "Kai Chen",
	Email: "d@jwt.com",
	Roles: []models.RoleAssignment{{Role: models.RoleDiner}},
}

func TestIssueWithoutSecretReturnsFixedToken(t *testing.T) {
	token, err := TokenIssuer{}.Issue(kai, "abcdef")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token != "abcdef" {
		t.Errorf("expected fixed token abcdef, got %s", token)
	}
}

func TestIssueWithSecretSignsClaims(t *testing.T) {
	issuer := TokenIssuer{Secret: "test-secret-key-for-unit-tests"}

	token, err := issuer.Issue(kai, "abcdef")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if token == "abcdef" {
		t.Fatal("expected a signed token, got the fixed one")
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(issuer.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		t.Fatalf("token should be valid, got error: %v", err)
	}
	if claims.Email != "d@jwt.com" {
		t.Errorf("expected email d@jwt.com in claims, got %s", claims.Email)
	}
	if claims.UserID != "3" {
		t.Errorf("expected user id 3 in claims, got %s", claims.UserID)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != models.RoleDiner {
		t.Errorf("expected diner role in claims, got %v", claims.Roles)
	}
	if claims.Issuer != "pizza-harness" {
		t.Errorf("expected issuer pizza-harness, got %s", claims.Issuer)
	}
}

func TestIssueWithWrongSecretFailsValidation(t *testing.T) {
	token, err := TokenIssuer{Secret: "one"}.Issue(kai, "")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	_, err = jwt.ParseWithClaims(token, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return []byte("two"), nil
	})
	if err == nil {
		t.Error("expected signature error with the wrong secret")
	}
}
