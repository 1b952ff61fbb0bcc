package utils

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestSanitizeValidationErrorRequired(t *testing.T) {
	validate := validator.New()

	type TestReq struct {
		Email    string `validate:"required"`
		Password string `validate:"required"`
	}

	err := validate.Struct(TestReq{})
	if err == nil {
		t.Fatal("expected validation error for missing required fields")
	}

	msg := SanitizeValidationError(err)
	if !strings.Contains(msg, "email is required") {
		t.Errorf("expected message to mention email, got: %s", msg)
	}
	if !strings.Contains(msg, "password is required") {
		t.Errorf("expected message to mention password, got: %s", msg)
	}
	if strings.Contains(msg, "TestReq") {
		t.Errorf("message leaks struct name: %s", msg)
	}
}

func TestSanitizeValidationErrorEmail(t *testing.T) {
	validate := validator.New()

	type TestReq struct {
		Email string `validate:"required,email"`
	}

	msg := SanitizeValidationError(validate.Struct(TestReq{Email: "not-an-email"}))
	if !strings.Contains(msg, "valid email address") {
		t.Errorf("expected email error, got: %s", msg)
	}
}

func TestSanitizeValidationErrorNilReturnsEmpty(t *testing.T) {
	if msg := SanitizeValidationError(nil); msg != "" {
		t.Errorf("expected empty string for nil error, got: %s", msg)
	}
}

func TestSanitizeValidationErrorJSONSyntax(t *testing.T) {
	var v map[string]any
	err := json.Unmarshal([]byte("{not json"), &v)

	if msg := SanitizeValidationError(err); msg != "Invalid request body" {
		t.Errorf("expected generic message, got: %s", msg)
	}
}
