// Package models defines the records stored by the gallery and the JSON
// projections the API returns.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the account role recorded for a user. Roles are stored but no
// endpoint is gated on them.
type Role string

// RoleAdmin is the role given to the seeded administrator.
const RoleAdmin Role = "admin"

// User is the account content is attributed to. Uploads only record the
// uploader's id; the username is joined in as uploader_name.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
