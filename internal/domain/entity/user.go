package entity

import "time"

// Roles válidos para User. "owner" es el dueño del sub-account; "admin" es
// rol de operador de plataforma (solo dominio principal).
const (
	RoleOwner   = "owner"
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// Estados de cuenta de usuario.
const (
	UserActive    = "active"
	UserInactive  = "inactive"
	UserSuspended = "suspended"
)

// User representa un usuario de la plataforma.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, solo en el backend; nunca viaja al cliente
	Name         string
	Role         string // owner, admin, manager, staff
	Mobile       string
	Address      string
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanManage indica si el rol del usuario domina al rol dado
// (owner > admin > manager > staff).
func (u User) CanManage(role string) bool {
	return roleRank(u.Role) > roleRank(role)
}

func roleRank(role string) int {
	switch role {
	case RoleOwner:
		return 4
	case RoleAdmin:
		return 3
	case RoleManager:
		return 2
	case RoleStaff:
		return 1
	default:
		return 0
	}
}
