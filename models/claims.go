package models

import "github.com/golang-jwt/jwt/v5"

// Claims is the access token payload issued by the session provider and
// verified by the notes API.
type Claims struct {
	jwt.RegisteredClaims

	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
}
