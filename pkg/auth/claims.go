package auth

import (
	"slices"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the JWT claims issued to Cliquéalo users.
type Claims struct {
	jwt.RegisteredClaims
	UserID string   `json:"user_id"`
	Email  string   `json:"email,omitempty"`
	Roles  []string `json:"roles"`
}

// HasRole checks if the claims include the specified role.
func (c Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

// HasAnyRole reports whether at least one of roles is present.
func (c Claims) HasAnyRole(roles ...string) bool {
	for _, r := range roles {
		if c.HasRole(r) {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the caller may manage lenders and review applications.
func (c Claims) IsAdmin() bool {
	return c.HasAnyRole(RoleAdmin, RoleSuperAdmin)
}

// Role constants
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)
