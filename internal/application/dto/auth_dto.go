package dto

import "time"

// LoginRequest credenciales de inicio de sesión.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Remember bool   `json:"remember,omitempty"`
}

// LoginResponse tokens emitidos más el usuario autenticado.
type LoginResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

// RefreshRequest intercambio de refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// RefreshResponse par de tokens renovado.
type RefreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// UserResponse usuario expuesto al cliente (sin hash de password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Mobile    string    `json:"mobile,omitempty"`
	Address   string    `json:"address,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpdateProfileRequest edición de perfil propio.
type UpdateProfileRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=120"`
	Mobile  string `json:"mobile" validate:"omitempty,min=7,max=20"`
	Address string `json:"address" validate:"omitempty,max=250"`
}

// ChangePasswordRequest cambio de contraseña propio.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,nefield=CurrentPassword"`
}
