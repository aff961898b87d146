package entity

import "time"

// Roles válidos para Admin.
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
)

// Admin usuario del panel de administración.
type Admin struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // superadmin, admin
	CreatedAt    time.Time
}

// IsSuperAdmin informa si el administrador tiene rol superadmin.
func (a *Admin) IsSuperAdmin() bool {
	return a.Role == RoleSuperAdmin
}

// ValidRole informa si role es uno de los roles soportados.
func ValidRole(role string) bool {
	return role == RoleSuperAdmin || role == RoleAdmin
}

// Actor quién ejecuta una acción administrativa; se copia al registro de auditoría.
type Actor struct {
	ID   int64
	Name string
	Role string
}
