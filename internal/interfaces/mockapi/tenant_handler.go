package mockapi

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/mypos-admin/internal/application/dto"
	"github.com/jhoicas/mypos-admin/internal/domain/entity"
	"github.com/jhoicas/mypos-admin/internal/domain/repository"
	"github.com/jhoicas/mypos-admin/pkg/hostname"
)

// TenantHandler alta y listado de sub-accounts más su configuración.
type TenantHandler struct {
	tenants  repository.TenantRepository
	settings repository.SettingRepository
}

// NewTenantHandler construye el handler de tenants.
func NewTenantHandler(tenants repository.TenantRepository, settings repository.SettingRepository) *TenantHandler {
	return &TenantHandler{tenants: tenants, settings: settings}
}

// Create da de alta un sub-account. Si no viene subdominio se deriva del
// nombre.
func (h *TenantHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTenantRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	sub := in.Subdomain
	if sub == "" {
		sub = hostname.Slugify(in.Name)
	}
	if sub == "" {
		return failValidation(c, []string{"subdomain: no se pudo derivar del nombre"})
	}
	now := time.Now()
	t := &entity.Tenant{
		Account: entity.Account{
			ID:        uuid.NewString(),
			Name:      in.Name,
			Code:      strings.ToUpper(hostname.Slugify(in.Name)),
			Status:    entity.AccountActive,
			CreatedBy: GetUserID(c),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Subdomain:  sub,
		OwnerEmail: in.OwnerEmail,
	}
	if err := h.tenants.Create(t); err != nil {
		return failDomain(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTenantResponse(t))
}

// List lista los sub-accounts con paginación.
func (h *TenantHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return fail(c, fiber.StatusBadRequest, "query inválido", err.Error())
	}
	page.DefaultPage()
	items, total, err := h.tenants.List(page.Limit, page.Offset)
	if err != nil {
		return failDomain(c, err)
	}
	out := dto.TenantListResponse{
		Items: make([]dto.TenantResponse, 0, len(items)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for i := range items {
		out.Items = append(out.Items, toTenantResponse(&items[i]))
	}
	return c.JSON(out)
}

// GetSettings devuelve la configuración del tenant del path.
func (h *TenantHandler) GetSettings(c *fiber.Ctx) error {
	t, err := h.tenants.GetBySubdomain(c.Params("subdomain"))
	if err != nil {
		return failDomain(c, err)
	}
	s, err := h.settings.GetByTenant(t.ID)
	if err != nil {
		return failDomain(c, err)
	}
	return c.JSON(toSettingResponse(s))
}

// UpdateSettings reemplaza la configuración del tenant del path.
func (h *TenantHandler) UpdateSettings(c *fiber.Ctx) error {
	t, err := h.tenants.GetBySubdomain(c.Params("subdomain"))
	if err != nil {
		return failDomain(c, err)
	}
	var in dto.TenantSettingRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	s := &entity.TenantSetting{
		TenantID:      t.ID,
		Subdomain:     t.Subdomain,
		BusinessName:  in.BusinessName,
		Currency:      in.Currency,
		Timezone:      in.Timezone,
		TaxRate:       in.TaxRate,
		ReceiptFooter: in.ReceiptFooter,
		UpdatedAt:     time.Now(),
	}
	if err := h.settings.Upsert(s); err != nil {
		return failDomain(c, err)
	}
	return c.JSON(toSettingResponse(s))
}

func toTenantResponse(t *entity.Tenant) dto.TenantResponse {
	return dto.TenantResponse{
		ID:        t.ID,
		Name:      t.Name,
		Code:      t.Code,
		Subdomain: t.Subdomain,
		Status:    t.Status,
		CreatedBy: t.CreatedBy,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

func toSettingResponse(s *entity.TenantSetting) dto.TenantSettingResponse {
	return dto.TenantSettingResponse{
		TenantID:      s.TenantID,
		Subdomain:     s.Subdomain,
		BusinessName:  s.BusinessName,
		Currency:      s.Currency,
		Timezone:      s.Timezone,
		TaxRate:       s.TaxRate,
		ReceiptFooter: s.ReceiptFooter,
		UpdatedAt:     s.UpdatedAt,
	}
}
