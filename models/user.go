package models

import "time"

// User represents a registered account. The bcrypt hash is never serialized;
// only the id, name, email and creation time appear in API responses.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}
