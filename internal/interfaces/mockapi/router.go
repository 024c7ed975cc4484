package mockapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mypos-admin/internal/domain/entity"
	"github.com/jhoicas/mypos-admin/internal/domain/repository"
)

// RouterDeps dependencias para el router del mock.
type RouterDeps struct {
	Users    repository.UserRepository
	Tenants  repository.TenantRepository
	Stores   repository.StoreRepository
	Staff    repository.StaffRepository
	Catalog  repository.CatalogRepository
	Settings repository.SettingRepository
	Tokens   TokenConfig
	LoginRL  *RateLimiter
}

// Router registra las rutas del backend de desarrollo. Los paths replican
// el contrato que consume el cliente.
func Router(app *fiber.App, deps RouterDeps) {
	authHandler := NewAuthHandler(deps.Users, deps.Tenants, deps.Tokens)
	profileHandler := NewProfileHandler(deps.Users)
	tenantHandler := NewTenantHandler(deps.Tenants, deps.Settings)
	storeHandler := NewStoreHandler(deps.Stores, deps.Staff, deps.Users)
	catalogHandler := NewCatalogHandler(deps.Catalog)

	// Público
	login := app.Group("/auth")
	if deps.LoginRL != nil {
		login.Post("/login", deps.LoginRL.Handler(), authHandler.Login)
	} else {
		login.Post("/login", authHandler.Login)
	}
	login.Post("/refresh", authHandler.Refresh)
	app.Get("/subdomain/:name", authHandler.Subdomain)

	// Protegido (Bearer access token)
	protected := app.Group("/", AuthMiddleware(deps.Tokens.Secret))

	protected.Get("/profile", profileHandler.Get)
	protected.Put("/profile", profileHandler.Update)
	protected.Put("/profile/password", profileHandler.ChangePassword)

	// Sub-accounts: solo operador de plataforma.
	adminOnly := RequireRole(entity.RoleAdmin)
	protected.Post("/tenant/create", adminOnly, tenantHandler.Create)
	protected.Get("/tenants", adminOnly, tenantHandler.List)

	// Configuración del tenant: lectura autenticada, escritura de owner.
	protected.Get("/tenants/settings/:subdomain", tenantHandler.GetSettings)
	protected.Put("/tenants/settings/:subdomain", RequireRole(entity.RoleOwner, entity.RoleAdmin), tenantHandler.UpdateSettings)

	// Rutas ancladas al tenant del header X-Tenant-Subdomain.
	tenant := protected.Group("/", TenantMiddleware(deps.Tenants))

	ownerOnly := RequireRole(entity.RoleOwner, entity.RoleAdmin)
	managers := RequireRole(entity.RoleOwner, entity.RoleAdmin, entity.RoleManager)

	stores := tenant.Group("/tenants/stores")
	stores.Get("/", storeHandler.List)
	stores.Post("/", ownerOnly, storeHandler.Create)
	stores.Put("/:id", ownerOnly, storeHandler.Update)
	stores.Delete("/:id", ownerOnly, storeHandler.Delete)

	stores.Get("/:id/staff", managers, storeHandler.ListStaff)
	stores.Post("/:id/staff", managers, storeHandler.InviteStaff)
	stores.Put("/:id/staff/:staffId", managers, storeHandler.UpdateStaff)
	stores.Delete("/:id/staff/:staffId", managers, storeHandler.RemoveStaff)

	catalog := tenant.Group("/catalog")
	catalog.Get("/categories", catalogHandler.ListCategories)
	catalog.Post("/categories", managers, catalogHandler.CreateCategory)
	catalog.Put("/categories/:id", managers, catalogHandler.UpdateCategory)
	catalog.Delete("/categories/:id", managers, catalogHandler.DeleteCategory)

	catalog.Get("/materials", catalogHandler.ListMaterials)
	catalog.Post("/materials", managers, catalogHandler.CreateMaterial)
	catalog.Put("/materials/:id", managers, catalogHandler.UpdateMaterial)
	catalog.Delete("/materials/:id", managers, catalogHandler.DeleteMaterial)
}
