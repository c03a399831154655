package domain

import "github.com/golang-jwt/jwt/v5"

const (
	RoleAuthenticated = "authenticated"
	RoleServiceRole   = "service_role"
)

// Claims segue o formato dos JWTs emitidos pelo Supabase Auth
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() string {
	return c.Subject
}
