package repository

import "github.com/jhoicas/mypos-admin/internal/domain/entity"

// Puertos de persistencia del backend de desarrollo. El mock los implementa
// en memoria; una implementación real iría contra la base de la plataforma.

// UserRepository acceso a usuarios.
type UserRepository interface {
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	Create(u *entity.User) error
	Update(u *entity.User) error
}

// TenantRepository acceso a sub-accounts.
type TenantRepository interface {
	GetByID(id string) (*entity.Tenant, error)
	GetBySubdomain(subdomain string) (*entity.Tenant, error)
	List(limit, offset int) ([]entity.Tenant, int, error)
	Create(t *entity.Tenant) error
}

// StoreRepository acceso a tiendas de un tenant.
type StoreRepository interface {
	GetByID(id string) (*entity.Store, error)
	ListByTenant(tenantID string, limit, offset int) ([]entity.Store, int, error)
	Create(s *entity.Store) error
	Update(s *entity.Store) error
	Delete(id string) error
}

// StaffRepository acceso a membresías de staff.
type StaffRepository interface {
	GetByID(id string) (*entity.StaffMember, error)
	ListByStore(storeID string, limit, offset int) ([]entity.StaffMember, int, error)
	Create(m *entity.StaffMember) error
	Update(m *entity.StaffMember) error
	Delete(id string) error
}

// CatalogRepository acceso a categorías y materiales del tenant.
type CatalogRepository interface {
	GetCategory(id string) (*entity.Category, error)
	ListCategories(tenantID string, limit, offset int) ([]entity.Category, int, error)
	CreateCategory(c *entity.Category) error
	UpdateCategory(c *entity.Category) error
	DeleteCategory(id string) error

	GetMaterial(id string) (*entity.Material, error)
	ListMaterials(tenantID string, limit, offset int) ([]entity.Material, int, error)
	CreateMaterial(m *entity.Material) error
	UpdateMaterial(m *entity.Material) error
	DeleteMaterial(id string) error
	CountMaterialsByCategory(categoryID string) (int, error)
}

// SettingRepository configuración por tenant.
type SettingRepository interface {
	GetByTenant(tenantID string) (*entity.TenantSetting, error)
	Upsert(s *entity.TenantSetting) error
}
