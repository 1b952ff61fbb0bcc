package models

import "encoding/json"

type OrderItem struct {
	MenuID      int64   `json:"menuId"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type Order struct {
	ID          string      `json:"id"`
	FranchiseID string      `json:"franchiseId"`
	StoreID     string      `json:"storeId"`
	Date        string      `json:"date"`
	Items       []OrderItem `json:"items"`
}

type OrderHistory struct {
	ID      string  `json:"id"`
	DinerID string  `json:"dinerId"`
	Orders  []Order `json:"orders"`
}

// PlacedOrder is the order echoed back by a successful order placement: the
// caller's request fields as sent, plus the assigned id.
type PlacedOrder map[string]json.RawMessage

// OrderResponse is the body of a successful POST /api/order.
type OrderResponse struct {
	Order PlacedOrder `json:"order"`
	JWT   string      `json:"jwt"`
}
