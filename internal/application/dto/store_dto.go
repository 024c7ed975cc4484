package dto

import "time"

// StoreRequest alta o edición de una tienda dentro del tenant.
type StoreRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=120"`
	Code    string `json:"code" validate:"omitempty,alphanum,max=20"`
	Address string `json:"address" validate:"omitempty,max=250"`
	Status  string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// StoreResponse tienda expuesta al cliente (_id por compatibilidad).
type StoreResponse struct {
	ID        string    `json:"_id"`
	TenantID  string    `json:"tenantId"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Address   string    `json:"address,omitempty"`
	Status    string    `json:"status"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StoreListResponse listado paginado de tiendas.
type StoreListResponse struct {
	Items []StoreResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// InviteStaffRequest invitación de un usuario a una tienda.
type InviteStaffRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"omitempty,min=2,max=120"`
	Role  string `json:"role" validate:"required,oneof=staff manager admin owner"`
}

// UpdateStaffRequest cambio de rol o estado de una membresía.
type UpdateStaffRequest struct {
	Role   string `json:"role" validate:"omitempty,oneof=staff manager admin owner"`
	Status string `json:"status" validate:"omitempty,oneof=pending active inactive suspended"`
}

// StaffResponse membresía de staff expuesta al cliente.
type StaffResponse struct {
	ID        string    `json:"_id"`
	StoreID   string    `json:"storeId"`
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	InvitedBy string    `json:"invitedBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StaffListResponse listado de staff de una tienda.
type StaffListResponse struct {
	Items []StaffResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
