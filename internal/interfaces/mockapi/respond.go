package mockapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mypos-admin/internal/domain"
	"github.com/jhoicas/mypos-admin/internal/domain/apierror"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// fail escribe el cuerpo de error normalizado de la plataforma:
// {success:false, message, data:null, error}.
func fail(c *fiber.Ctx, status int, message, detail string) error {
	return c.Status(status).JSON(apierror.Body{
		Success: false,
		Message: message,
		Data:    nil,
		Detail:  detail,
	})
}

// failValidation escribe el error de validación con la lista de mensajes
// "campo: detalle" que el cliente parte por el primer dos puntos.
func failValidation(c *fiber.Ctx, msgs []string) error {
	return c.Status(fiber.StatusBadRequest).JSON(apierror.Body{
		Success: false,
		Message: "Validation failed",
		Data:    nil,
		Errors:  msgs,
	})
}

// parseAndValidate parsea el body JSON y valida los tags del DTO.
// Devuelve false si ya respondió el error.
func parseAndValidate(c *fiber.Ctx, in any) bool {
	if err := c.BodyParser(in); err != nil {
		_ = fail(c, fiber.StatusBadRequest, "cuerpo inválido", err.Error())
		return false
	}
	if err := validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: %s", fieldName(fe), ruleMessage(fe)))
			}
			_ = failValidation(c, msgs)
			return false
		}
		_ = fail(c, fiber.StatusBadRequest, "Validation failed", err.Error())
		return false
	}
	return true
}

func fieldName(fe validator.FieldError) string {
	// json-style: primera letra en minúscula, suficiente para estos DTOs.
	f := fe.Field()
	return strings.ToLower(f[:1]) + f[1:]
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "email":
		return "debe ser un email válido"
	case "min":
		return "mínimo " + fe.Param()
	case "max":
		return "máximo " + fe.Param()
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "nefield":
		return "debe ser distinto de " + fe.Param()
	default:
		return "no cumple la regla " + fe.Tag()
	}
}

// failDomain mapea errores de dominio a HTTP.
func failDomain(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fail(c, fiber.StatusNotFound, "recurso no encontrado", "")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return fail(c, fiber.StatusConflict, "el email ya está registrado", "")
	case errors.Is(err, domain.ErrSubdomainTaken):
		return fail(c, fiber.StatusConflict, "el subdominio ya está en uso", "")
	case errors.Is(err, domain.ErrDuplicate):
		return fail(c, fiber.StatusConflict, "recurso duplicado", "")
	case errors.Is(err, domain.ErrUnauthorized):
		return fail(c, fiber.StatusUnauthorized, "no autorizado", "")
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrAccountInactive):
		return fail(c, fiber.StatusForbidden, "acceso denegado", "")
	default:
		return fail(c, fiber.StatusInternalServerError, "error interno", err.Error())
	}
}
