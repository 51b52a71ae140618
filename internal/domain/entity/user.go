package entity

import "time"

// User is a portal account. Role gates which API surfaces the holder may
// call; status pending means an admin has not yet activated the account.
type User struct {
	UID          string    `json:"uid"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	Role         string    `json:"role"`
	Status       string    `json:"status"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsValidRole reports whether r is one of the four portal roles.
func IsValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleEmployee, RoleSecurity, RoleReceptionist:
		return true
	}
	return false
}
