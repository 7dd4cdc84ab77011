package models

import "time"

// DefaultRole is assigned when a stored user carries no roles.
const DefaultRole = "Employee"

// User is an account record. Password holds the bcrypt hash and is never
// serialized to clients.
type User struct {
	ID        string    `json:"_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	Roles     []string  `json:"roles"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
