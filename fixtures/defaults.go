// Package fixtures holds the built-in payloads served when a scenario does not
// override them. Every function returns a fresh value, so callers may keep or
// modify the result without affecting other sessions.
package fixtures

import (
	"pizza-harness/dtos"
	"pizza-harness/models"
)

const (
	DefaultOrderID  = "23"
	DefaultOrderJWT = "eyJpYXQ"
	LoginToken      = "abcdef"
	RegisterToken   = "registered-token"
)

// SeedUsers returns the diner every session knows about, keyed by email.
func SeedUsers() map[string]dtos.SeedUser {
	return map[string]dtos.SeedUser{
		"d@jwt.com": {
			ID:       "3",
			Name:     "Kai Chen",
			Email:    "d@jwt.com",
			Password: "a",
			Roles:    []models.RoleAssignment{{Role: models.RoleDiner}},
		},
	}
}

func Menu() []models.MenuItem {
	return []models.MenuItem{
		{ID: 1, Title: "Veggie", Image: "pizza1.png", Price: 0.0038, Description: "A garden of delight"},
		{ID: 2, Title: "Pepperoni", Image: "pizza2.png", Price: 0.0042, Description: "Spicy treat"},
	}
}

func Franchises() models.FranchiseList {
	return models.FranchiseList{
		Franchises: []models.Franchise{
			{
				ID:     models.NumericID(2),
				Name:   "LotaPizza",
				Admins: []models.FranchiseAdmin{{ID: "10", Email: "fran@jwt.com", Name: "Francine Franchisee"}},
				Stores: []models.Store{
					{ID: models.NumericID(4), Name: "Lehi", TotalRevenue: models.Revenue(1.23)},
					{ID: models.NumericID(5), Name: "Springville", TotalRevenue: models.Revenue(0.57)},
					{ID: models.NumericID(6), Name: "American Fork", TotalRevenue: models.Revenue(0.91)},
				},
			},
			{
				ID:     models.NumericID(3),
				Name:   "PizzaCorp",
				Stores: []models.Store{{ID: models.NumericID(7), Name: "Spanish Fork", TotalRevenue: models.Revenue(0.25)}},
			},
			{ID: models.NumericID(4), Name: "topSpot", Stores: []models.Store{}},
		},
		More: false,
	}
}

// FranchiseDetails is served for every franchise id.
func FranchiseDetails() []models.Franchise {
	return []models.Franchise{
		{
			ID:   models.StringID("200"),
			Name: "Rocket Slice",
			Stores: []models.Store{
				{ID: models.StringID("900"), Name: "Downtown", TotalRevenue: models.Revenue(1.23)},
				{ID: models.StringID("901"), Name: "Uptown", TotalRevenue: models.Revenue(0.87)},
			},
		},
	}
}

func OrderHistory() models.OrderHistory {
	return models.OrderHistory{ID: "history-1", DinerID: "3", Orders: []models.Order{}}
}

// Docs describes the menu endpoint, using menu as its example response.
func Docs(menu []models.MenuItem) models.Endpoints {
	return models.Endpoints{
		Endpoints: []models.Endpoint{
			{
				RequiresAuth: false,
				Method:       "GET",
				Path:         "/api/order/menu",
				Description:  "List the available pizzas.",
				Example:      "GET /api/order/menu",
				Response:     menu,
			},
		},
	}
}

func VerifyResponse() models.JWTPayload {
	return models.JWTPayload{Message: "valid", Payload: map[string]string{"status": "ok"}}
}
