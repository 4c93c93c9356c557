package user

import "strings"

// Roles recognized by the storefront. Role comparison is case-insensitive;
// the backend has been observed to return both "ADMIN" and "admin".
const (
	RoleClient = "CLIENT"
	RoleAdmin  = "ADMIN"
)

// User is the authenticated profile returned by the backend and persisted
// alongside the session token.
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// IsAdmin reports whether the user carries the administrator role.
func (u User) IsAdmin() bool {
	return strings.EqualFold(strings.TrimSpace(u.Role), RoleAdmin)
}
