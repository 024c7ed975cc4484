package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryRequest alta o edición de categoría de materiales.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=120"`
	Description string `json:"description" validate:"omitempty,max=500"`
	Status      string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// CategoryResponse categoría expuesta al cliente.
type CategoryResponse struct {
	ID          string    `json:"_id"`
	TenantID    string    `json:"tenantId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CategoryListResponse listado de categorías.
type CategoryListResponse struct {
	Items []CategoryResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// MaterialRequest alta o edición de material del catálogo.
type MaterialRequest struct {
	CategoryID string          `json:"categoryId" validate:"required"`
	Name       string          `json:"name" validate:"required,min=2,max=120"`
	SKU        string          `json:"sku" validate:"omitempty,alphanum,max=40"`
	Unit       string          `json:"unit" validate:"required,max=10"`
	Price      decimal.Decimal `json:"price"`
	Cost       decimal.Decimal `json:"cost"`
	Status     string          `json:"status" validate:"omitempty,oneof=active inactive"`
}

// MaterialResponse material expuesto al cliente.
type MaterialResponse struct {
	ID         string          `json:"_id"`
	TenantID   string          `json:"tenantId"`
	CategoryID string          `json:"categoryId"`
	Name       string          `json:"name"`
	SKU        string          `json:"sku,omitempty"`
	Unit       string          `json:"unit"`
	Price      decimal.Decimal `json:"price"`
	Cost       decimal.Decimal `json:"cost"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// MaterialListResponse listado de materiales.
type MaterialListResponse struct {
	Items []MaterialResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
