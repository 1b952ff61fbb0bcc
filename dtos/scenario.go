package dtos

import (
	"encoding/json"
	"fmt"
	"os"

	"pizza-harness/models"
)

// SeedUser is a user supplied by a scenario, password included. It is only
// ever read by the gateway; responses are built from models.User.
type SeedUser struct {
	ID       string                  `json:"id"`
	Name     string                  `json:"name"`
	Email    string                  `json:"email"`
	Password string                  `json:"password"`
	Roles    []models.RoleAssignment `json:"roles"`
}

// Record returns the sanitized form of the seed user.
func (u SeedUser) Record() models.User {
	return models.User{ID: u.ID, Name: u.Name, Email: u.Email, Roles: u.Roles}.Clone()
}

// RegisterError makes registration fail. When Email is set only registrations
// for that address fail.
type RegisterError struct {
	Status  int    `json:"status,omitempty"`
	Message string `json:"message"`
	Email   string `json:"email,omitempty"`
}

// Matches reports whether the override applies to a registration for email.
func (e *RegisterError) Matches(email string) bool {
	return e != nil && (e.Email == "" || e.Email == email)
}

// OrderError makes every order placement fail, e.g. a declined payment.
type OrderError struct {
	Status  int    `json:"status,omitempty"`
	Message string `json:"message"`
}

type VerifyError struct {
	Status  int    `json:"status,omitempty"`
	Message string `json:"message"`
	Payload any    `json:"payload,omitempty"`
}

// OrderResponseOverride supplies the id and jwt of placed orders.
type OrderResponseOverride struct {
	Order models.Order `json:"order"`
	JWT   string       `json:"jwt"`
}

// Scenario configures one gateway session. Every field is optional; a nil
// field falls back to the built-in fixture. A Scenario is never modified by
// the gateway.
type Scenario struct {
	Users            map[string]SeedUser    `json:"users,omitempty"`
	Menu             []models.MenuItem      `json:"menu,omitempty"`
	Franchises       *models.FranchiseList  `json:"franchises,omitempty"`
	FranchiseDetails []models.Franchise     `json:"franchiseDetails,omitempty"`
	OrderHistory     *models.OrderHistory   `json:"orderHistory,omitempty"`
	OrderResponse    *OrderResponseOverride `json:"orderResponse,omitempty"`
	OrderError       *OrderError            `json:"orderError,omitempty"`
	Docs             *models.Endpoints      `json:"docs,omitempty"`
	RegisterError    *RegisterError         `json:"registerError,omitempty"`
	VerifyResponse   *models.JWTPayload     `json:"verifyResponse,omitempty"`
	VerifyError      *VerifyError           `json:"verifyError,omitempty"`
}

// LoadScenario reads a scenario from a JSON file.
func LoadScenario(path string) (Scenario, error) {
	var s Scenario
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read scenario: %w", err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	return s, nil
}
