package models

import "github.com/golang-jwt/jwt/v5"

// Roles recognised by the gateway.
const (
	RoleInstructor = "INSTRUCTOR"
	RoleAdmin      = "ADMIN"
)

// JWTClaims carries the authenticated user identity issued by the platform.
type JWTClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
