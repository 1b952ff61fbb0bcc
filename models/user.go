package models

// Role is the kind of a role assignment carried by a user.
type Role string

const (
	RoleDiner      Role = "diner"
	RoleAdmin      Role = "admin"
	RoleFranchisee Role = "franchisee"
)

// RoleAssignment binds a role to an optional scoping object, e.g. the
// franchise a franchisee manages.
type RoleAssignment struct {
	Role     Role   `json:"role"`
	ObjectID string `json:"objectId,omitempty"`
}

// User is the sanitized user record served by the API. It has no password
// field, so no response built from it can leak one.
type User struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Email string           `json:"email"`
	Roles []RoleAssignment `json:"roles"`
}

// HasRole reports whether the user holds the given role kind.
func (u *User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r.Role == role {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no slices with u.
func (u User) Clone() User {
	roles := make([]RoleAssignment, len(u.Roles))
	copy(roles, u.Roles)
	u.Roles = roles
	return u
}
