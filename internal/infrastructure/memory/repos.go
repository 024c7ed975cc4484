package memory

import "github.com/jhoicas/mypos-admin/internal/domain/entity"

// Wrappers por entidad sobre el DB compartido, uno por puerto de
// repository. Así los handlers dependen de las interfaces de dominio y no
// del DB completo.

// UserRepo implementa repository.UserRepository.
type UserRepo struct{ db *DB }

// NewUserRepo construye el repo de usuarios.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

// TenantRepo implementa repository.TenantRepository.
type TenantRepo struct{ db *DB }

// NewTenantRepo construye el repo de tenants.
func NewTenantRepo(db *DB) *TenantRepo { return &TenantRepo{db: db} }

func (r *TenantRepo) GetByID(id string) (*entity.Tenant, error) { return r.db.GetTenantByID(id) }
func (r *TenantRepo) GetBySubdomain(s string) (*entity.Tenant, error) {
	return r.db.GetBySubdomain(s)
}
func (r *TenantRepo) List(limit, offset int) ([]entity.Tenant, int, error) {
	return r.db.ListTenants(limit, offset)
}
func (r *TenantRepo) Create(t *entity.Tenant) error { return r.db.CreateTenant(t) }

func (r *UserRepo) GetByID(id string) (*entity.User, error)       { return r.db.GetByID(id) }
func (r *UserRepo) FindByEmail(email string) (*entity.User, error) { return r.db.FindByEmail(email) }
func (r *UserRepo) Create(u *entity.User) error                   { return r.db.Create(u) }
func (r *UserRepo) Update(u *entity.User) error                   { return r.db.Update(u) }

// StoreRepo implementa repository.StoreRepository.
type StoreRepo struct{ db *DB }

// NewStoreRepo construye el repo de tiendas.
func NewStoreRepo(db *DB) *StoreRepo { return &StoreRepo{db: db} }

func (r *StoreRepo) GetByID(id string) (*entity.Store, error) { return r.db.GetStoreByID(id) }
func (r *StoreRepo) ListByTenant(tenantID string, limit, offset int) ([]entity.Store, int, error) {
	return r.db.ListByTenant(tenantID, limit, offset)
}
func (r *StoreRepo) Create(s *entity.Store) error { return r.db.CreateStore(s) }
func (r *StoreRepo) Update(s *entity.Store) error { return r.db.UpdateStore(s) }
func (r *StoreRepo) Delete(id string) error       { return r.db.DeleteStore(id) }

// StaffRepo implementa repository.StaffRepository.
type StaffRepo struct{ db *DB }

// NewStaffRepo construye el repo de staff.
func NewStaffRepo(db *DB) *StaffRepo { return &StaffRepo{db: db} }

func (r *StaffRepo) GetByID(id string) (*entity.StaffMember, error) { return r.db.GetStaffByID(id) }
func (r *StaffRepo) ListByStore(storeID string, limit, offset int) ([]entity.StaffMember, int, error) {
	return r.db.ListByStore(storeID, limit, offset)
}
func (r *StaffRepo) Create(m *entity.StaffMember) error { return r.db.CreateStaff(m) }
func (r *StaffRepo) Update(m *entity.StaffMember) error { return r.db.UpdateStaff(m) }
func (r *StaffRepo) Delete(id string) error             { return r.db.DeleteStaff(id) }

// CatalogRepo implementa repository.CatalogRepository (el DB ya trae los
// métodos con nombre propio, el wrapper es por simetría).
type CatalogRepo struct{ *DB }

// NewCatalogRepo construye el repo de catálogo.
func NewCatalogRepo(db *DB) *CatalogRepo { return &CatalogRepo{DB: db} }

// SettingRepo implementa repository.SettingRepository.
type SettingRepo struct{ db *DB }

// NewSettingRepo construye el repo de configuración.
func NewSettingRepo(db *DB) *SettingRepo { return &SettingRepo{db: db} }

func (r *SettingRepo) GetByTenant(tenantID string) (*entity.TenantSetting, error) {
	return r.db.GetSettingByTenant(tenantID)
}
func (r *SettingRepo) Upsert(s *entity.TenantSetting) error { return r.db.UpsertSetting(s) }
