package models

// Endpoint documents one API endpoint. Response is an example payload of
// arbitrary shape.
type Endpoint struct {
	RequiresAuth bool   `json:"requiresAuth"`
	Method       string `json:"method"`
	Path         string `json:"path"`
	Description  string `json:"description"`
	Example      string `json:"example"`
	Response     any    `json:"response"`
}

type Endpoints struct {
	Endpoints []Endpoint `json:"endpoints"`
}

// JWTPayload is the result of verifying a pizza JWT.
type JWTPayload struct {
	Message string `json:"message"`
	Payload any    `json:"payload"`
}
