package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTenantRequest alta de un sub-account de plataforma (solo dominio
// principal). Si Subdomain viene vacío el backend lo deriva del nombre.
type CreateTenantRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=120"`
	Subdomain  string `json:"subdomain" validate:"omitempty,hostname_rfc1123,max=63"`
	OwnerEmail string `json:"ownerEmail" validate:"required,email"`
}

// TenantResponse sub-account expuesto al cliente. El campo _id se conserva
// por compatibilidad con el front histórico.
type TenantResponse struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Subdomain string    `json:"subdomain"`
	Status    string    `json:"status"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TenantListResponse listado paginado de tenants.
type TenantListResponse struct {
	Items []TenantResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// SubdomainAccountResponse resultado de GET subdomain/{name}.
type SubdomainAccountResponse struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Subdomain string `json:"subdomain"`
	Status    string `json:"status"`
}

// TenantSettingRequest edición de configuración del tenant.
type TenantSettingRequest struct {
	BusinessName  string          `json:"businessName" validate:"required,min=2,max=120"`
	Currency      string          `json:"currency" validate:"required,iso4217"`
	Timezone      string          `json:"timezone" validate:"required,timezone"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	ReceiptFooter string          `json:"receiptFooter" validate:"omitempty,max=500"`
}

// TenantSettingResponse configuración vigente del tenant.
type TenantSettingResponse struct {
	TenantID      string          `json:"tenantId"`
	Subdomain     string          `json:"subdomain"`
	BusinessName  string          `json:"businessName"`
	Currency      string          `json:"currency"`
	Timezone      string          `json:"timezone"`
	TaxRate       decimal.Decimal `json:"taxRate"`
	ReceiptFooter string          `json:"receiptFooter,omitempty"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
