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

// CatalogHandler categorías y materiales del catálogo del tenant.
type CatalogHandler struct {
	catalog repository.CatalogRepository
}

// NewCatalogHandler construye el handler de catálogo.
func NewCatalogHandler(catalog repository.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListCategories lista las categorías del tenant.
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return fail(c, fiber.StatusBadRequest, "query inválido", err.Error())
	}
	page.DefaultPage()
	items, total, err := h.catalog.ListCategories(GetTenantID(c), page.Limit, page.Offset)
	if err != nil {
		return failDomain(c, err)
	}
	out := dto.CategoryListResponse{
		Items: make([]dto.CategoryResponse, 0, len(items)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for i := range items {
		out.Items = append(out.Items, toCategoryResponse(&items[i]))
	}
	return c.JSON(out)
}

// CreateCategory crea una categoría.
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CategoryRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	now := time.Now()
	status := in.Status
	if status == "" {
		status = entity.AccountActive
	}
	cat := &entity.Category{
		ID:          uuid.NewString(),
		TenantID:    GetTenantID(c),
		Name:        in.Name,
		Description: in.Description,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := h.catalog.CreateCategory(cat); err != nil {
		return failDomain(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCategoryResponse(cat))
}

// UpdateCategory edita una categoría del tenant.
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	cat, err := h.categoryInTenant(c)
	if err != nil {
		return failDomain(c, err)
	}
	var in dto.CategoryRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	cat.Name = in.Name
	cat.Description = in.Description
	if in.Status != "" {
		cat.Status = in.Status
	}
	cat.UpdatedAt = time.Now()
	if err := h.catalog.UpdateCategory(cat); err != nil {
		return failDomain(c, err)
	}
	return c.JSON(toCategoryResponse(cat))
}

// DeleteCategory elimina una categoría; con materiales asociados responde
// 409.
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	cat, err := h.categoryInTenant(c)
	if err != nil {
		return failDomain(c, err)
	}
	n, err := h.catalog.CountMaterialsByCategory(cat.ID)
	if err != nil {
		return failDomain(c, err)
	}
	if n > 0 {
		return fail(c, fiber.StatusConflict, "la categoría tiene materiales asociados", "")
	}
	if err := h.catalog.DeleteCategory(cat.ID); err != nil {
		return failDomain(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListMaterials lista los materiales del tenant.
func (h *CatalogHandler) ListMaterials(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return fail(c, fiber.StatusBadRequest, "query inválido", err.Error())
	}
	page.DefaultPage()
	items, total, err := h.catalog.ListMaterials(GetTenantID(c), page.Limit, page.Offset)
	if err != nil {
		return failDomain(c, err)
	}
	out := dto.MaterialListResponse{
		Items: make([]dto.MaterialResponse, 0, len(items)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for i := range items {
		out.Items = append(out.Items, toMaterialResponse(&items[i]))
	}
	return c.JSON(out)
}

// CreateMaterial crea un material dentro de una categoría del tenant.
func (h *CatalogHandler) CreateMaterial(c *fiber.Ctx) error {
	var in dto.MaterialRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	cat, err := h.catalog.GetCategory(in.CategoryID)
	if err != nil || cat.TenantID != GetTenantID(c) {
		return failValidation(c, []string{"categoryId: la categoría no existe en este tenant"})
	}
	if in.Price.IsNegative() || in.Cost.IsNegative() {
		return failValidation(c, []string{"price: no puede ser negativo"})
	}
	now := time.Now()
	status := in.Status
	if status == "" {
		status = entity.AccountActive
	}
	m := &entity.Material{
		ID:         uuid.NewString(),
		TenantID:   GetTenantID(c),
		CategoryID: in.CategoryID,
		Name:       in.Name,
		SKU:        in.SKU,
		Unit:       in.Unit,
		Price:      in.Price,
		Cost:       in.Cost,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := h.catalog.CreateMaterial(m); err != nil {
		return failDomain(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMaterialResponse(m))
}

// UpdateMaterial edita un material del tenant.
func (h *CatalogHandler) UpdateMaterial(c *fiber.Ctx) error {
	m, err := h.materialInTenant(c)
	if err != nil {
		return failDomain(c, err)
	}
	var in dto.MaterialRequest
	if !parseAndValidate(c, &in) {
		return nil
	}
	if in.Price.IsNegative() || in.Cost.IsNegative() {
		return failValidation(c, []string{"price: no puede ser negativo"})
	}
	m.CategoryID = in.CategoryID
	m.Name = in.Name
	m.SKU = in.SKU
	m.Unit = in.Unit
	m.Price = in.Price
	m.Cost = in.Cost
	if in.Status != "" {
		m.Status = in.Status
	}
	m.UpdatedAt = time.Now()
	if err := h.catalog.UpdateMaterial(m); err != nil {
		return failDomain(c, err)
	}
	return c.JSON(toMaterialResponse(m))
}

// DeleteMaterial elimina un material del tenant.
func (h *CatalogHandler) DeleteMaterial(c *fiber.Ctx) error {
	m, err := h.materialInTenant(c)
	if err != nil {
		return failDomain(c, err)
	}
	if err := h.catalog.DeleteMaterial(m.ID); err != nil {
		return failDomain(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CatalogHandler) categoryInTenant(c *fiber.Ctx) (*entity.Category, error) {
	cat, err := h.catalog.GetCategory(c.Params("id"))
	if err != nil {
		return nil, err
	}
	if cat.TenantID != GetTenantID(c) {
		return nil, domain.ErrNotFound
	}
	return cat, nil
}

func (h *CatalogHandler) materialInTenant(c *fiber.Ctx) (*entity.Material, error) {
	m, err := h.catalog.GetMaterial(c.Params("id"))
	if err != nil {
		return nil, err
	}
	if m.TenantID != GetTenantID(c) {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

func toCategoryResponse(cat *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{
		ID:          cat.ID,
		TenantID:    cat.TenantID,
		Name:        cat.Name,
		Description: cat.Description,
		Status:      cat.Status,
		CreatedAt:   cat.CreatedAt,
		UpdatedAt:   cat.UpdatedAt,
	}
}

func toMaterialResponse(m *entity.Material) dto.MaterialResponse {
	return dto.MaterialResponse{
		ID:         m.ID,
		TenantID:   m.TenantID,
		CategoryID: m.CategoryID,
		Name:       m.Name,
		SKU:        m.SKU,
		Unit:       m.Unit,
		Price:      m.Price,
		Cost:       m.Cost,
		Status:     m.Status,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
