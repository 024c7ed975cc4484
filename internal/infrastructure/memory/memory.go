package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/mypos-admin/internal/domain"
	"github.com/jhoicas/mypos-admin/internal/domain/entity"
)

// DB es el almacenamiento en memoria del backend de desarrollo. Un único
// mutex para todo: el mock no necesita más.
type DB struct {
	mu         sync.RWMutex
	users      map[string]entity.User
	tenants    map[string]entity.Tenant
	stores     map[string]entity.Store
	staff      map[string]entity.StaffMember
	categories map[string]entity.Category
	materials  map[string]entity.Material
	settings   map[string]entity.TenantSetting // por tenant ID
}

// NewDB crea el almacenamiento vacío.
func NewDB() *DB {
	return &DB{
		users:      map[string]entity.User{},
		tenants:    map[string]entity.Tenant{},
		stores:     map[string]entity.Store{},
		staff:      map[string]entity.StaffMember{},
		categories: map[string]entity.Category{},
		materials:  map[string]entity.Material{},
		settings:   map[string]entity.TenantSetting{},
	}
}

// ── UserRepository ───────────────────────────────────────────────────────

func (db *DB) GetByID(id string) (*entity.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if u, ok := db.users[id]; ok {
		return &u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (db *DB) FindByEmail(email string) (*entity.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	for _, u := range db.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (db *DB) Create(u *entity.User) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, ex := range db.users {
		if strings.EqualFold(ex.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	db.users[u.ID] = *u
	return nil
}

func (db *DB) Update(u *entity.User) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	db.users[u.ID] = *u
	return nil
}

// ── TenantRepository ─────────────────────────────────────────────────────

func (db *DB) GetTenantByID(id string) (*entity.Tenant, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if t, ok := db.tenants[id]; ok {
		return &t, nil
	}
	return nil, domain.ErrNotFound
}

func (db *DB) GetBySubdomain(subdomain string) (*entity.Tenant, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	for _, t := range db.tenants {
		if t.Subdomain == subdomain {
			return &t, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (db *DB) ListTenants(limit, offset int) ([]entity.Tenant, int, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	all := make([]entity.Tenant, 0, len(db.tenants))
	for _, t := range db.tenants {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	total := len(all)
	return page(all, limit, offset), total, nil
}

func (db *DB) CreateTenant(t *entity.Tenant) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, ex := range db.tenants {
		if ex.Subdomain == t.Subdomain {
			return domain.ErrSubdomainTaken
		}
	}
	db.tenants[t.ID] = *t
	return nil
}

// ── StoreRepository ──────────────────────────────────────────────────────

func (db *DB) GetStoreByID(id string) (*entity.Store, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if s, ok := db.stores[id]; ok {
		return &s, nil
	}
	return nil, domain.ErrNotFound
}

func (db *DB) ListByTenant(tenantID string, limit, offset int) ([]entity.Store, int, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	var all []entity.Store
	for _, s := range db.stores {
		if s.TenantID == tenantID {
			all = append(all, s)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	total := len(all)
	return page(all, limit, offset), total, nil
}

func (db *DB) CreateStore(s *entity.Store) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.stores[s.ID] = *s
	return nil
}

func (db *DB) UpdateStore(s *entity.Store) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.stores[s.ID]; !ok {
		return domain.ErrNotFound
	}
	db.stores[s.ID] = *s
	return nil
}

func (db *DB) DeleteStore(id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.stores[id]; !ok {
		return domain.ErrNotFound
	}
	delete(db.stores, id)
	return nil
}

// ── StaffRepository ──────────────────────────────────────────────────────

func (db *DB) GetStaffByID(id string) (*entity.StaffMember, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if m, ok := db.staff[id]; ok {
		return &m, nil
	}
	return nil, domain.ErrNotFound
}

func (db *DB) ListByStore(storeID string, limit, offset int) ([]entity.StaffMember, int, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	var all []entity.StaffMember
	for _, m := range db.staff {
		if m.StoreID == storeID {
			all = append(all, m)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	total := len(all)
	return page(all, limit, offset), total, nil
}

func (db *DB) CreateStaff(m *entity.StaffMember) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	for _, ex := range db.staff {
		if ex.StoreID == m.StoreID && strings.EqualFold(ex.Email, m.Email) {
			return domain.ErrDuplicate
		}
	}
	db.staff[m.ID] = *m
	return nil
}

func (db *DB) UpdateStaff(m *entity.StaffMember) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.staff[m.ID]; !ok {
		return domain.ErrNotFound
	}
	db.staff[m.ID] = *m
	return nil
}

func (db *DB) DeleteStaff(id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.staff[id]; !ok {
		return domain.ErrNotFound
	}
	delete(db.staff, id)
	return nil
}

// ── CatalogRepository ────────────────────────────────────────────────────

func (db *DB) GetCategory(id string) (*entity.Category, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if c, ok := db.categories[id]; ok {
		return &c, nil
	}
	return nil, domain.ErrNotFound
}

func (db *DB) ListCategories(tenantID string, limit, offset int) ([]entity.Category, int, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	var all []entity.Category
	for _, c := range db.categories {
		if c.TenantID == tenantID {
			all = append(all, c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	total := len(all)
	return page(all, limit, offset), total, nil
}

func (db *DB) CreateCategory(c *entity.Category) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.categories[c.ID] = *c
	return nil
}

func (db *DB) UpdateCategory(c *entity.Category) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.categories[c.ID]; !ok {
		return domain.ErrNotFound
	}
	db.categories[c.ID] = *c
	return nil
}

func (db *DB) DeleteCategory(id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.categories[id]; !ok {
		return domain.ErrNotFound
	}
	delete(db.categories, id)
	return nil
}

func (db *DB) GetMaterial(id string) (*entity.Material, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if m, ok := db.materials[id]; ok {
		return &m, nil
	}
	return nil, domain.ErrNotFound
}

func (db *DB) ListMaterials(tenantID string, limit, offset int) ([]entity.Material, int, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	var all []entity.Material
	for _, m := range db.materials {
		if m.TenantID == tenantID {
			all = append(all, m)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	total := len(all)
	return page(all, limit, offset), total, nil
}

func (db *DB) CreateMaterial(m *entity.Material) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.materials[m.ID] = *m
	return nil
}

func (db *DB) UpdateMaterial(m *entity.Material) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.materials[m.ID]; !ok {
		return domain.ErrNotFound
	}
	db.materials[m.ID] = *m
	return nil
}

func (db *DB) DeleteMaterial(id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	if _, ok := db.materials[id]; !ok {
		return domain.ErrNotFound
	}
	delete(db.materials, id)
	return nil
}

func (db *DB) CountMaterialsByCategory(categoryID string) (int, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	n := 0
	for _, m := range db.materials {
		if m.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

// ── SettingRepository ────────────────────────────────────────────────────

func (db *DB) GetSettingByTenant(tenantID string) (*entity.TenantSetting, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	if s, ok := db.settings[tenantID]; ok {
		return &s, nil
	}
	return nil, domain.ErrNotFound
}

func (db *DB) UpsertSetting(s *entity.TenantSetting) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.settings[s.TenantID] = *s
	return nil
}

func page[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}
