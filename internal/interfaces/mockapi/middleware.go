package mockapi

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mypos-admin/internal/domain/entity"
	"github.com/jhoicas/mypos-admin/internal/domain/repository"
	"github.com/jhoicas/mypos-admin/pkg/jwt"
)

// Locals keys en Fiber.
const (
	LocalUserID   = "user_id"
	LocalUserRole = "user_role"
	LocalTenantID = "tenant_id"
	LocalTenant   = "tenant"
)

// AuthMiddleware valida el Bearer Token (access) y deja user_id y rol en
// c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fail(c, fiber.StatusUnauthorized, "Authorization header requerido", "")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fail(c, fiber.StatusUnauthorized, "formato: Bearer <token>", "")
		}
		claims, err := jwt.Parse(jwtSecret, strings.TrimSpace(parts[1]))
		if err != nil || claims.TokenType != jwt.TypeAccess {
			return fail(c, fiber.StatusUnauthorized, "token inválido o expirado", "")
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalUserRole, claims.Role)
		return c.Next()
	}
}

// RequireRole autoriza solo a los roles listados (después de AuthMiddleware).
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return fail(c, fiber.StatusUnauthorized, "token sin rol", "")
		}
		if _, ok := allowed[role]; !ok {
			return fail(c, fiber.StatusForbidden, "rol sin permiso", role)
		}
		return c.Next()
	}
}

// TenantMiddleware resuelve el header X-Tenant-Subdomain a su tenant y lo
// deja en c.Locals. Las rutas de tenant no funcionan sin él.
func TenantMiddleware(tenants repository.TenantRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sub := c.Get("X-Tenant-Subdomain")
		if sub == "" {
			return fail(c, fiber.StatusBadRequest, "header X-Tenant-Subdomain requerido", "")
		}
		t, err := tenants.GetBySubdomain(sub)
		if err != nil {
			return fail(c, fiber.StatusNotFound, "el subdominio no existe", sub)
		}
		if !t.Active() {
			return fail(c, fiber.StatusForbidden, "la cuenta no está activa", sub)
		}
		c.Locals(LocalTenantID, t.ID)
		c.Locals(LocalTenant, t)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol del contexto.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserRole).(string)
	return s
}

// GetTenantID devuelve el tenant resuelto por TenantMiddleware.
func GetTenantID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalTenantID).(string)
	return s
}

// GetTenant devuelve el tenant completo resuelto por TenantMiddleware.
func GetTenant(c *fiber.Ctx) *entity.Tenant {
	t, _ := c.Locals(LocalTenant).(*entity.Tenant)
	return t
}
