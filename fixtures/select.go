package fixtures

import (
	"pizza-harness/dtos"
	"pizza-harness/models"
)

// Set is the fixture data one session serves: each field is the scenario's
// override when present, else the built-in default.
type Set struct {
	Users            map[string]dtos.SeedUser
	Menu             []models.MenuItem
	Franchises       models.FranchiseList
	FranchiseDetails []models.Franchise
	OrderHistory     models.OrderHistory
	Docs             models.Endpoints
	VerifyResponse   models.JWTPayload
}

// Select resolves the fixtures for a scenario. Scenario users are added to the
// seed diner and replace it when they share its email.
func Select(s dtos.Scenario) Set {
	set := Set{
		Users:            SeedUsers(),
		Menu:             Menu(),
		Franchises:       Franchises(),
		FranchiseDetails: FranchiseDetails(),
		OrderHistory:     OrderHistory(),
		Docs:             Docs(Menu()),
		VerifyResponse:   VerifyResponse(),
	}

	for email, u := range s.Users {
		set.Users[email] = u
	}
	if s.Menu != nil {
		set.Menu = s.Menu
	}
	if s.Franchises != nil {
		set.Franchises = *s.Franchises
	}
	if s.FranchiseDetails != nil {
		set.FranchiseDetails = s.FranchiseDetails
	}
	if s.OrderHistory != nil {
		set.OrderHistory = *s.OrderHistory
	}
	if s.Docs != nil {
		set.Docs = *s.Docs
	}
	if s.VerifyResponse != nil {
		set.VerifyResponse = *s.VerifyResponse
	}
	return set
}
