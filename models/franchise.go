package models

type FranchiseAdmin struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type Store struct {
	ID           ID       `json:"id"`
	Name         string   `json:"name"`
	TotalRevenue *float64 `json:"totalRevenue,omitempty"`
}

// Franchise is used both for entries of the franchise listing and for the
// franchise detail lookup.
type Franchise struct {
	ID     ID               `json:"id"`
	Name   string           `json:"name"`
	Admins []FranchiseAdmin `json:"admins,omitempty"`
	Stores []Store          `json:"stores"`
}

// FranchiseList is the paginated franchise listing. More reports whether
// another page exists.
type FranchiseList struct {
	Franchises []Franchise `json:"franchises"`
	More       bool        `json:"more"`
}

// Revenue is a convenience for building fixtures with a store revenue.
func Revenue(v float64) *float64 {
	return &v
}
