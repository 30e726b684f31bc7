package models

import "strings"

// User represents a registered member of the app. The normalized email
// address is the login credential; this design carries no password.
type User struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"size:100;not null" validate:"required"`
	Email string `json:"email" gorm:"size:255;uniqueIndex;not null" validate:"required,email"`
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
// Every email comparison and every stored email goes through this first.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
