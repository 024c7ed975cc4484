package entity

import "time"

// Estados de Account (aplica a Tenant y Store).
const (
	AccountActive   = "active"
	AccountInactive = "inactive"
)

// Account es la forma común de Tenant y Store. La plataforma histórica usa
// la misma estructura para ambos conceptos; aquí se comparte por embedding
// y cada entidad añade lo suyo.
type Account struct {
	ID        string
	Name      string
	Code      string
	Status    string // active, inactive
	CreatedBy string // user ID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Active indica si la cuenta está operativa.
func (a Account) Active() bool {
	return a.Status == AccountActive
}

// Tenant es el sub-account de plataforma, accesible vía su propio
// subdominio ({subdomain}.{mainDomain}).
type Tenant struct {
	Account
	Subdomain  string
	OwnerEmail string
}

// Store es una unidad operativa dentro de un tenant (un local físico).
type Store struct {
	Account
	TenantID string
	Address  string
}
