package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is a domain entity representing a registered user.
// PasswordHash is excluded from JSON so it can never leak through a response.
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Avatar       string    `json:"avatar"`
	CreatedAt    time.Time `json:"createdAt"`
}
