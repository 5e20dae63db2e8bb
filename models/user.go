package models

// AuthUser is the user record embedded in a session provider token response.
type AuthUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
