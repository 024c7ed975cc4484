package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/mypos-admin/internal/domain/entity"
)

// Seed puebla el DB con datos de desarrollo: un operador de plataforma, un
// tenant "acme" activo con su owner, una tienda y un catálogo mínimo.
// Las credenciales son solo para desarrollo local.
func Seed(db *DB) error {
	now := time.Now()

	admin, err := seedUser("admin@mypos.local", "admin12345", "Operador Plataforma", entity.RoleAdmin, now)
	if err != nil {
		return err
	}
	owner, err := seedUser("owner@acme.test", "owner12345", "Dueño Acme", entity.RoleOwner, now)
	if err != nil {
		return err
	}
	staff, err := seedUser("staff@acme.test", "staff12345", "Cajero Acme", entity.RoleStaff, now)
	if err != nil {
		return err
	}
	for _, u := range []*entity.User{admin, owner, staff} {
		if err := db.Create(u); err != nil {
			return err
		}
	}

	tenant := &entity.Tenant{
		Account: entity.Account{
			ID:        uuid.NewString(),
			Name:      "Acme POS",
			Code:      "ACME",
			Status:    entity.AccountActive,
			CreatedBy: admin.ID,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Subdomain:  "acme",
		OwnerEmail: owner.Email,
	}
	if err := db.CreateTenant(tenant); err != nil {
		return err
	}

	// Tenant inactivo para probar el flujo de subdominio rechazado.
	dormant := &entity.Tenant{
		Account: entity.Account{
			ID:        uuid.NewString(),
			Name:      "Globex POS",
			Code:      "GLBX",
			Status:    entity.AccountInactive,
			CreatedBy: admin.ID,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Subdomain: "globex",
	}
	if err := db.CreateTenant(dormant); err != nil {
		return err
	}

	store := &entity.Store{
		Account: entity.Account{
			ID:        uuid.NewString(),
			Name:      "Acme Centro",
			Code:      "AC01",
			Status:    entity.AccountActive,
			CreatedBy: owner.ID,
			CreatedAt: now,
			UpdatedAt: now,
		},
		TenantID: tenant.ID,
		Address:  "Calle 10 # 4-21",
	}
	if err := db.CreateStore(store); err != nil {
		return err
	}

	if err := db.CreateStaff(&entity.StaffMember{
		ID:        uuid.NewString(),
		StoreID:   store.ID,
		UserID:    staff.ID,
		Email:     staff.Email,
		Name:      staff.Name,
		Role:      entity.RoleStaff,
		Status:    entity.StaffActive,
		InvitedBy: owner.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		return err
	}

	cat := &entity.Category{
		ID:        uuid.NewString(),
		TenantID:  tenant.ID,
		Name:      "Harinas",
		Status:    entity.AccountActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.CreateCategory(cat); err != nil {
		return err
	}
	if err := db.CreateMaterial(&entity.Material{
		ID:         uuid.NewString(),
		TenantID:   tenant.ID,
		CategoryID: cat.ID,
		Name:       "Harina de trigo",
		SKU:        "HAR001",
		Unit:       "kg",
		Price:      decimal.NewFromFloat(4500),
		Cost:       decimal.NewFromFloat(3200),
		Status:     entity.AccountActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}); err != nil {
		return err
	}

	return db.UpsertSetting(&entity.TenantSetting{
		TenantID:     tenant.ID,
		Subdomain:    tenant.Subdomain,
		BusinessName: tenant.Name,
		Currency:     "COP",
		Timezone:     "America/Bogota",
		TaxRate:      decimal.NewFromFloat(0.19),
		UpdatedAt:    now,
	})
}

func seedUser(email, password, name, role string, now time.Time) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &entity.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       entity.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
