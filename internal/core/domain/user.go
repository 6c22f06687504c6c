package domain

import (
	"time"

	"github.com/google/uuid"
)

// Roles carried by the external auth collaborator's tokens.
const (
	RoleAdmin = "admin"
	RoleVoter = "voter"
)

type User struct {
	ID              uuid.UUID  `json:"id"`
	Email           string     `json:"email"`
	Name            string     `json:"name"`
	Role            string     `json:"role"`
	ProfileImageURL string     `json:"profile_image_url,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty"`
}
