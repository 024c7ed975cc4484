package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jhoicas/mypos-admin/internal/application/dto"
)

// ListStores lista las tiendas del tenant actual.
func (c *Client) ListStores(ctx context.Context, page dto.PageRequest) (*dto.StoreListResponse, error) {
	page.DefaultPage()
	var out dto.StoreListResponse
	if err := c.do(ctx, http.MethodGet, pagePath("tenants/stores", page.Limit, page.Offset), true, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateStore crea una tienda en el tenant actual.
func (c *Client) CreateStore(ctx context.Context, in dto.StoreRequest) (*dto.StoreResponse, error) {
	var out dto.StoreResponse
	if err := c.do(ctx, http.MethodPost, "tenants/stores", true, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStore edita una tienda.
func (c *Client) UpdateStore(ctx context.Context, storeID string, in dto.StoreRequest) (*dto.StoreResponse, error) {
	var out dto.StoreResponse
	if err := c.do(ctx, http.MethodPut, "tenants/stores/"+url.PathEscape(storeID), true, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteStore elimina una tienda.
func (c *Client) DeleteStore(ctx context.Context, storeID string) error {
	return c.do(ctx, http.MethodDelete, "tenants/stores/"+url.PathEscape(storeID), true, nil, nil)
}

// ListStaff lista las membresías de una tienda.
func (c *Client) ListStaff(ctx context.Context, storeID string, page dto.PageRequest) (*dto.StaffListResponse, error) {
	page.DefaultPage()
	var out dto.StaffListResponse
	p := "tenants/stores/" + url.PathEscape(storeID) + "/staff"
	if err := c.do(ctx, http.MethodGet, pagePath(p, page.Limit, page.Offset), true, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// InviteStaff invita un usuario a una tienda (membresía en estado pending).
func (c *Client) InviteStaff(ctx context.Context, storeID string, in dto.InviteStaffRequest) (*dto.StaffResponse, error) {
	var out dto.StaffResponse
	if err := c.do(ctx, http.MethodPost, "tenants/stores/"+url.PathEscape(storeID)+"/staff", true, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStaff cambia rol o estado de una membresía.
func (c *Client) UpdateStaff(ctx context.Context, storeID, staffID string, in dto.UpdateStaffRequest) (*dto.StaffResponse, error) {
	var out dto.StaffResponse
	p := "tenants/stores/" + url.PathEscape(storeID) + "/staff/" + url.PathEscape(staffID)
	if err := c.do(ctx, http.MethodPut, p, true, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveStaff elimina una membresía de la tienda.
func (c *Client) RemoveStaff(ctx context.Context, storeID, staffID string) error {
	p := "tenants/stores/" + url.PathEscape(storeID) + "/staff/" + url.PathEscape(staffID)
	return c.do(ctx, http.MethodDelete, p, true, nil, nil)
}
