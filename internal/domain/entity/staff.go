package entity

import "time"

// Estados de membresía de staff en una tienda.
const (
	StaffPending   = "pending"
	StaffActive    = "active"
	StaffInactive  = "inactive"
	StaffSuspended = "suspended"
)

// StaffMember vincula un usuario con una tienda, con rol y estado propios
// de esa membresía (un mismo usuario puede ser manager en una tienda y
// staff en otra).
type StaffMember struct {
	ID        string
	StoreID   string
	UserID    string
	Email     string
	Name      string
	Role      string // staff, manager, admin, owner
	Status    string // pending, active, inactive, suspended
	InvitedBy string // user ID del que envió la invitación
	CreatedAt time.Time
	UpdatedAt time.Time
}
