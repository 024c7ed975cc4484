package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jhoicas/mypos-admin/internal/application/dto"
)

// Login autentica contra el backend. Nunca lleva bearer token.
func (c *Client) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	var out dto.LoginResponse
	if err := c.do(ctx, http.MethodPost, "auth/login", false, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh intercambia el refresh token por un par nuevo. Usado por flujos
// manuales; el interceptor tiene su propio camino directo.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*dto.RefreshResponse, error) {
	var out dto.RefreshResponse
	in := dto.RefreshRequest{RefreshToken: refreshToken}
	if err := c.do(ctx, http.MethodPost, "auth/refresh", false, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profile devuelve el perfil del usuario autenticado.
func (c *Client) Profile(ctx context.Context) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := c.do(ctx, http.MethodGet, "profile", true, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile actualiza nombre, móvil y dirección del usuario.
func (c *Client) UpdateProfile(ctx context.Context, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	var out dto.UserResponse
	if err := c.do(ctx, http.MethodPut, "profile", true, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword cambia la contraseña del usuario autenticado.
func (c *Client) ChangePassword(ctx context.Context, in dto.ChangePasswordRequest) error {
	return c.do(ctx, http.MethodPut, "profile/password", true, in, nil)
}

// GetSubdomain resuelve un subdominio a su cuenta de tenant. Endpoint
// público: lo consumen el login y los guards antes de autenticar.
func (c *Client) GetSubdomain(ctx context.Context, name string) (*dto.SubdomainAccountResponse, error) {
	var out dto.SubdomainAccountResponse
	if err := c.do(ctx, http.MethodGet, "subdomain/"+url.PathEscape(name), false, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
