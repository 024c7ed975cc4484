package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/jhoicas/mypos-admin/internal/application/dto"
)

// ListCategories lista las categorías del catálogo del tenant.
func (c *Client) ListCategories(ctx context.Context, page dto.PageRequest) (*dto.CategoryListResponse, error) {
	page.DefaultPage()
	var out dto.CategoryListResponse
	if err := c.do(ctx, http.MethodGet, pagePath("catalog/categories", page.Limit, page.Offset), true, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCategory crea una categoría.
func (c *Client) CreateCategory(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	var out dto.CategoryResponse
	if err := c.do(ctx, http.MethodPost, "catalog/categories", true, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCategory edita una categoría.
func (c *Client) UpdateCategory(ctx context.Context, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	var out dto.CategoryResponse
	if err := c.do(ctx, http.MethodPut, "catalog/categories/"+url.PathEscape(id), true, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCategory elimina una categoría sin materiales asociados.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "catalog/categories/"+url.PathEscape(id), true, nil, nil)
}

// ListMaterials lista los materiales del catálogo del tenant.
func (c *Client) ListMaterials(ctx context.Context, page dto.PageRequest) (*dto.MaterialListResponse, error) {
	page.DefaultPage()
	var out dto.MaterialListResponse
	if err := c.do(ctx, http.MethodGet, pagePath("catalog/materials", page.Limit, page.Offset), true, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateMaterial crea un material.
func (c *Client) CreateMaterial(ctx context.Context, in dto.MaterialRequest) (*dto.MaterialResponse, error) {
	var out dto.MaterialResponse
	if err := c.do(ctx, http.MethodPost, "catalog/materials", true, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateMaterial edita un material.
func (c *Client) UpdateMaterial(ctx context.Context, id string, in dto.MaterialRequest) (*dto.MaterialResponse, error) {
	var out dto.MaterialResponse
	if err := c.do(ctx, http.MethodPut, "catalog/materials/"+url.PathEscape(id), true, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteMaterial elimina un material.
func (c *Client) DeleteMaterial(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "catalog/materials/"+url.PathEscape(id), true, nil, nil)
}
