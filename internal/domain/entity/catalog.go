package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category agrupa materiales del catálogo de un tenant.
type Category struct {
	ID          string
	TenantID    string
	Name        string
	Description string
	Status      string // active, inactive
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Material es un insumo del catálogo. Precios con decimal para evitar
// errores de redondeo binario.
type Material struct {
	ID         string
	TenantID   string
	CategoryID string
	Name       string
	SKU        string
	Unit       string // kg, lt, un, ...
	Price      decimal.Decimal
	Cost       decimal.Decimal
	Status     string // active, inactive
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Margin devuelve el margen unitario (precio - costo).
func (m Material) Margin() decimal.Decimal {
	return m.Price.Sub(m.Cost)
}
