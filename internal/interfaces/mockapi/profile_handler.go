package mockapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/mypos-admin/internal/application/dto"
	"github.com/jhoicas/mypos-admin/internal/domain/repository"
)

// ProfileHandler maneja el perfil propio y el cambio de contraseña.
type ProfileHandler struct {
	users repository.UserRepository
}

// NewProfileHandler construye el handler de perfil.
func NewProfileHandler(users repository.UserRepository) *ProfileHandler {
	return &ProfileHandler{users: users}
}

// Get devuelve el perfil del usuario autenticado.
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.GetByID(GetUserID(c))
	if err != nil {
		return failDomain(c, err)
	}
	return c.JSON(toUserResponse(user))
}

// Update edita nombre, móvil y dirección.
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	user, err := h.users.GetByID(GetUserID(c))
	if err != nil {
		return failDomain(c, err)
	}
	user.Name = in.Name
	user.Mobile = in.Mobile
	user.Address = in.Address
	user.UpdatedAt = time.Now()
	if err := h.users.Update(user); err != nil {
		return failDomain(c, err)
	}
	return c.JSON(toUserResponse(user))
}

// ChangePassword verifica la contraseña actual y guarda la nueva.
func (h *ProfileHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	user, err := h.users.GetByID(GetUserID(c))
	if err != nil {
		return failDomain(c, err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)) != nil {
		return failValidation(c, []string{"currentPassword: no coincide con la contraseña actual"})
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "no se pudo actualizar la contraseña", err.Error())
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = time.Now()
	if err := h.users.Update(user); err != nil {
		return failDomain(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
