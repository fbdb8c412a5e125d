package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
)

// ValidRole indica si role es admin o manager.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleManager
}

// User representa un usuario del sistema.
type User struct {
	ID           string
	Name         string
	Email        string
	Role         string // admin, manager
	Phone        string
	PasswordHash string // bcrypt
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
