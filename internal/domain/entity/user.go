package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// User representa un usuario del sistema. Su ID alimenta el campo CreatedBy
// de movimientos y traslados (trazabilidad de quién ejecutó cada operación).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin | manager | staff
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
