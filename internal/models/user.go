package models

import (
	"time"

	"github.com/google/uuid"
)

// Role constants
const (
	RoleAgent      = "agent"
	RoleSupervisor = "supervisor"
	RoleAdmin      = "admin"
)

// User represents a staff member authenticated via OIDC.
type User struct {
	ID        uuid.UUID `json:"id"`
	Sub       string    `json:"sub"` // OIDC subject identifier
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"` // agent, supervisor, admin
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsAdmin returns true if the user is an admin.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsSupervisor returns true if the user can review feedback and manage reports.
func (u *User) IsSupervisor() bool {
	return u.Role == RoleSupervisor || u.Role == RoleAdmin
}
