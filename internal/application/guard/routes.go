package guard

import "github.com/jhoicas/mypos-admin/internal/domain/entity"

// Rutas de la consola de administración.
const (
	RouteProfile      = "/profile"
	RouteTenants      = "/tenants"
	RouteTenantCreate = "/tenant-create"
	RouteSettings     = "/settings"
	RouteStores       = "/stores"
	RouteStaff        = "/staff"
	RouteCategories   = "/catalog/categories"
	RouteMaterials    = "/catalog/materials"
)

// Conjuntos de roles por pantalla. Un solo guard Role parametrizado por
// conjunto, en vez de un guard por rol.
var (
	rolesOwner   = []string{entity.RoleOwner}
	rolesManager = []string{entity.RoleOwner, entity.RoleManager}
	rolesStaff   = []string{entity.RoleOwner, entity.RoleManager, entity.RoleStaff}
	rolesAdmin   = []string{entity.RoleAdmin}
)

// DefaultRoutes arma la tabla de rutas de la consola con su cadena de
// guards, equivalente a la configuración del router del front histórico.
func DefaultRoutes() []Route {
	return []Route{
		{Path: RouteLogin, Name: "login", Guards: []Guard{Login()}},
		{Path: RouteSubdomainError, Name: "subdomain-error"},
		{Path: RouteDashboard, Name: "dashboard", Guards: []Guard{Auth()}},
		{Path: RouteProfile, Name: "profile", Guards: []Guard{Auth()}},

		// Gestión de sub-accounts: solo operador de plataforma, en dominio
		// principal.
		{Path: RouteTenants, Name: "tenants", Guards: []Guard{Auth(), NoSubdomain(), Role("admin-only", rolesAdmin, "")}},
		{Path: RouteTenantCreate, Name: "tenant-create", Guards: []Guard{Auth(), NoSubdomain(), Role("admin-only", rolesAdmin, "")}},

		// Pantallas de tenant: requieren subdominio.
		{Path: RouteSettings, Name: "settings", Guards: []Guard{Auth(), Subdomain(), Role("owner", rolesOwner, "")}},
		{Path: RouteStaff, Name: "staff", Guards: []Guard{Auth(), Subdomain(), Role("manager", rolesManager, "")}},
		{Path: RouteCategories, Name: "categories", Guards: []Guard{Auth(), Subdomain(), Role("staff", rolesStaff, "")}},
		{Path: RouteMaterials, Name: "materials", Guards: []Guard{Auth(), Subdomain(), Role("staff", rolesStaff, "")}},

		// Tiendas: owner dentro del tenant, sin restricción de rol para el
		// operador en dominio principal.
		{Path: RouteStores, Name: "stores", Guards: []Guard{Auth(), ConditionalOwner()}},
	}
}
