package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jhoicas/mypos-admin/internal/application/dto"
)

// CreateTenant da de alta un sub-account (solo dominio principal).
func (c *Client) CreateTenant(ctx context.Context, in dto.CreateTenantRequest) (*dto.TenantResponse, error) {
	var out dto.TenantResponse
	if err := c.do(ctx, http.MethodPost, "tenant/create", true, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListTenants lista los sub-accounts de la plataforma.
func (c *Client) ListTenants(ctx context.Context, page dto.PageRequest) (*dto.TenantListResponse, error) {
	page.DefaultPage()
	var out dto.TenantListResponse
	if err := c.do(ctx, http.MethodGet, pagePath("tenants", page.Limit, page.Offset), true, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TenantSettings devuelve la configuración del tenant identificado por su
// subdominio.
func (c *Client) TenantSettings(ctx context.Context, subdomain string) (*dto.TenantSettingResponse, error) {
	var out dto.TenantSettingResponse
	if err := c.do(ctx, http.MethodGet, "tenants/settings/"+url.PathEscape(subdomain), true, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTenantSettings reemplaza la configuración del tenant.
func (c *Client) UpdateTenantSettings(ctx context.Context, subdomain string, in dto.TenantSettingRequest) (*dto.TenantSettingResponse, error) {
	var out dto.TenantSettingResponse
	if err := c.do(ctx, http.MethodPut, "tenants/settings/"+url.PathEscape(subdomain), true, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
