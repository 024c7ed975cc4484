package mockapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/mypos-admin/internal/application/dto"
	"github.com/jhoicas/mypos-admin/internal/domain"
	"github.com/jhoicas/mypos-admin/internal/domain/entity"
	"github.com/jhoicas/mypos-admin/internal/domain/repository"
)

// StoreHandler tiendas del tenant y su staff.
type StoreHandler struct {
	stores repository.StoreRepository
	staff  repository.StaffRepository
	users  repository.UserRepository
}

// NewStoreHandler construye el handler de tiendas.
func NewStoreHandler(stores repository.StoreRepository, staff repository.StaffRepository, users repository.UserRepository) *StoreHandler {
	return &StoreHandler{stores: stores, staff: staff, users: users}
}

// List lista las tiendas del tenant actual.
func (h *StoreHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return fail(c, fiber.StatusBadRequest, "query inválido", err.Error())
	}
	page.DefaultPage()
	items, total, err := h.stores.ListByTenant(GetTenantID(c), page.Limit, page.Offset)
	if err != nil {
		return failDomain(c, err)
	}
	out := dto.StoreListResponse{
		Items: make([]dto.StoreResponse, 0, len(items)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for i := range items {
		out.Items = append(out.Items, toStoreResponse(&items[i]))
	}
	return c.JSON(out)
}

// Create crea una tienda en el tenant actual.
func (h *StoreHandler) Create(c *fiber.Ctx) error {
	var in dto.StoreRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	now := time.Now()
	status := in.Status
	if status == "" {
		status = entity.AccountActive
	}
	s := &entity.Store{
		Account: entity.Account{
			ID:        uuid.NewString(),
			Name:      in.Name,
			Code:      in.Code,
			Status:    status,
			CreatedBy: GetUserID(c),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TenantID: GetTenantID(c),
		Address:  in.Address,
	}
	if err := h.stores.Create(s); err != nil {
		return failDomain(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toStoreResponse(s))
}

// Update edita una tienda del tenant actual.
func (h *StoreHandler) Update(c *fiber.Ctx) error {
	s, err := h.storeInTenant(c)
	if err != nil {
		return failDomain(c, err)
	}
	var in dto.StoreRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	s.Name = in.Name
	if in.Code != "" {
		s.Code = in.Code
	}
	if in.Status != "" {
		s.Status = in.Status
	}
	s.Address = in.Address
	s.UpdatedAt = time.Now()
	if err := h.stores.Update(s); err != nil {
		return failDomain(c, err)
	}
	return c.JSON(toStoreResponse(s))
}

// Delete elimina una tienda del tenant actual.
func (h *StoreHandler) Delete(c *fiber.Ctx) error {
	s, err := h.storeInTenant(c)
	if err != nil {
		return failDomain(c, err)
	}
	if err := h.stores.Delete(s.ID); err != nil {
		return failDomain(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListStaff lista las membresías de una tienda.
func (h *StoreHandler) ListStaff(c *fiber.Ctx) error {
	s, err := h.storeInTenant(c)
	if err != nil {
		return failDomain(c, err)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return fail(c, fiber.StatusBadRequest, "query inválido", err.Error())
	}
	page.DefaultPage()
	items, total, err := h.staff.ListByStore(s.ID, page.Limit, page.Offset)
	if err != nil {
		return failDomain(c, err)
	}
	out := dto.StaffListResponse{
		Items: make([]dto.StaffResponse, 0, len(items)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for i := range items {
		out.Items = append(out.Items, toStaffResponse(&items[i]))
	}
	return c.JSON(out)
}

// InviteStaff crea una membresía en estado pending.
func (h *StoreHandler) InviteStaff(c *fiber.Ctx) error {
	s, err := h.storeInTenant(c)
	if err != nil {
		return failDomain(c, err)
	}
	var in dto.InviteStaffRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	now := time.Now()
	m := &entity.StaffMember{
		ID:        uuid.NewString(),
		StoreID:   s.ID,
		Email:     in.Email,
		Name:      in.Name,
		Role:      in.Role,
		Status:    entity.StaffPending,
		InvitedBy: GetUserID(c),
		CreatedAt: now,
		UpdatedAt: now,
	}
	// Si el invitado ya tiene cuenta, la membresía queda ligada a ella.
	if u, err := h.users.FindByEmail(in.Email); err == nil {
		m.UserID = u.ID
		if m.Name == "" {
			m.Name = u.Name
		}
	}
	if err := h.staff.Create(m); err != nil {
		return failDomain(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toStaffResponse(m))
}

// UpdateStaff cambia rol o estado de una membresía.
func (h *StoreHandler) UpdateStaff(c *fiber.Ctx) error {
	s, err := h.storeInTenant(c)
	if err != nil {
		return failDomain(c, err)
	}
	m, err := h.staff.GetByID(c.Params("staffId"))
	if err != nil || m.StoreID != s.ID {
		return fail(c, fiber.StatusNotFound, "membresía no encontrada", "")
	}
	var in dto.UpdateStaffRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	if in.Role != "" {
		m.Role = in.Role
	}
	if in.Status != "" {
		m.Status = in.Status
	}
	m.UpdatedAt = time.Now()
	if err := h.staff.Update(m); err != nil {
		return failDomain(c, err)
	}
	return c.JSON(toStaffResponse(m))
}

// RemoveStaff elimina una membresía.
func (h *StoreHandler) RemoveStaff(c *fiber.Ctx) error {
	s, err := h.storeInTenant(c)
	if err != nil {
		return failDomain(c, err)
	}
	m, err := h.staff.GetByID(c.Params("staffId"))
	if err != nil || m.StoreID != s.ID {
		return fail(c, fiber.StatusNotFound, "membresía no encontrada", "")
	}
	if err := h.staff.Delete(m.ID); err != nil {
		return failDomain(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// storeInTenant carga la tienda del path verificando que pertenezca al
// tenant del header.
func (h *StoreHandler) storeInTenant(c *fiber.Ctx) (*entity.Store, error) {
	s, err := h.stores.GetByID(c.Params("id"))
	if err != nil {
		return nil, err
	}
	if s.TenantID != GetTenantID(c) {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

func toStoreResponse(s *entity.Store) dto.StoreResponse {
	return dto.StoreResponse{
		ID:        s.ID,
		TenantID:  s.TenantID,
		Name:      s.Name,
		Code:      s.Code,
		Address:   s.Address,
		Status:    s.Status,
		CreatedBy: s.CreatedBy,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toStaffResponse(m *entity.StaffMember) dto.StaffResponse {
	return dto.StaffResponse{
		ID:        m.ID,
		StoreID:   m.StoreID,
		UserID:    m.UserID,
		Email:     m.Email,
		Name:      m.Name,
		Role:      m.Role,
		Status:    m.Status,
		InvitedBy: m.InvitedBy,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
