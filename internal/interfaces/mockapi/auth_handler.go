package mockapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/mypos-admin/internal/application/dto"
	"github.com/jhoicas/mypos-admin/internal/domain/entity"
	"github.com/jhoicas/mypos-admin/internal/domain/repository"
	"github.com/jhoicas/mypos-admin/pkg/jwt"
)

// TokenConfig parámetros de emisión de tokens del mock.
type TokenConfig struct {
	Secret     string
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// AuthHandler maneja login, refresh y la resolución de subdominios.
type AuthHandler struct {
	users   repository.UserRepository
	tenants repository.TenantRepository
	cfg     TokenConfig
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(users repository.UserRepository, tenants repository.TenantRepository, cfg TokenConfig) *AuthHandler {
	return &AuthHandler{users: users, tenants: tenants, cfg: cfg}
}

// Login verifica credenciales y emite el par access/refresh.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if !parseAndValidate(c, &in) {
		return nil
	}

	// En subdominio el login exige que la cuenta del tenant esté activa.
	sub := c.Get("X-Tenant-Subdomain")
	if sub != "" {
		t, err := h.tenants.GetBySubdomain(sub)
		if err != nil {
			return fail(c, fiber.StatusNotFound, "el subdominio no existe", sub)
		}
		if !t.Active() {
			return fail(c, fiber.StatusForbidden, "la cuenta no está activa", sub)
		}
	}

	user, err := h.users.FindByEmail(in.Email)
	if err != nil {
		return fail(c, fiber.StatusUnauthorized, "credenciales inválidas", "")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return fail(c, fiber.StatusUnauthorized, "credenciales inválidas", "")
	}
	if user.Status != entity.UserActive {
		return fail(c, fiber.StatusForbidden, "cuenta inactiva o suspendida", "")
	}

	access, refresh, err := h.issuePair(user, sub)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "emisión de token falló", err.Error())
	}
	return c.JSON(dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         toUserResponse(user),
	})
}

// Refresh intercambia un refresh token vigente por un par nuevo (rotación).
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var in dto.RefreshRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	claims, err := jwt.Parse(h.cfg.Secret, in.RefreshToken)
	if err != nil || claims.TokenType != jwt.TypeRefresh {
		return fail(c, fiber.StatusUnauthorized, "refresh token inválido o expirado", "")
	}
	user, err := h.users.GetByID(claims.UserID)
	if err != nil || user.Status != entity.UserActive {
		return fail(c, fiber.StatusUnauthorized, "sesión no renovable", "")
	}
	access, refresh, err := h.issuePair(user, claims.Subdomain)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "emisión de token falló", err.Error())
	}
	return c.JSON(dto.RefreshResponse{AccessToken: access, RefreshToken: refresh})
}

// Subdomain resuelve GET /subdomain/:name. 404 si no existe, 403 si la
// cuenta no está activa.
func (h *AuthHandler) Subdomain(c *fiber.Ctx) error {
	name := c.Params("name")
	t, err := h.tenants.GetBySubdomain(name)
	if err != nil {
		return fail(c, fiber.StatusNotFound, "el subdominio no existe", name)
	}
	if !t.Active() {
		return fail(c, fiber.StatusForbidden, "la cuenta no está activa", name)
	}
	return c.JSON(dto.SubdomainAccountResponse{
		ID:        t.ID,
		Name:      t.Name,
		Subdomain: t.Subdomain,
		Status:    t.Status,
	})
}

func (h *AuthHandler) issuePair(user *entity.User, sub string) (access, refresh string, err error) {
	access, err = jwt.Generate(h.cfg.Secret, jwt.TypeAccess, user.ID, user.Email, user.Role, sub, h.cfg.Issuer, h.cfg.AccessTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = jwt.Generate(h.cfg.Secret, jwt.TypeRefresh, user.ID, user.Email, user.Role, sub, h.cfg.Issuer, h.cfg.RefreshTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Mobile:    u.Mobile,
		Address:   u.Address,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
