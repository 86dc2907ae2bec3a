package models

import "github.com/golang-jwt/jwt/v5"

// UserRole represents the available roles for the RBAC system.
type UserRole string

const (
	RoleAdmin       UserRole = "admin"
	RoleCoordinator UserRole = "coordinator"
	RoleUser        UserRole = "user"
)

// JWTClaims represents the JWT payload of access tokens issued by the
// administration backend.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Role     UserRole `json:"role"`
	Email    string   `json:"email"`
	FullName string   `json:"full_name"`
	jwt.RegisteredClaims
}
