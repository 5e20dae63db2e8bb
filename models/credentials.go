package models

// Credentials are the email/password pair submitted on the login page.
type Credentials struct {
	Email    string
	Password string
}
