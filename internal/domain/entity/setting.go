package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TenantSetting configuración operativa de un tenant, editable desde la
// consola de administración del sub-account.
type TenantSetting struct {
	TenantID      string
	Subdomain     string
	BusinessName  string
	Currency      string // ISO 4217, ej. COP, USD
	Timezone      string // IANA, ej. America/Bogota
	TaxRate       decimal.Decimal
	ReceiptFooter string
	UpdatedAt     time.Time
}
