package models

import "time"

// User is an account that owns habits. PasswordHash is the salted digest
// produced by the auth package, never the raw password.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}
