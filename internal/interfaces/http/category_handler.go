package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-admin/internal/application/dto"
	"github.com/jhoicas/tienda-admin/internal/application/usecase"
	"github.com/jhoicas/tienda-admin/internal/domain"
)

// CategoryHandler rutas de categorías, subcategorías e íconos.
type CategoryHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CatalogUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// List godoc
// @Summary      Listar categorías con subcategorías y conteos
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CategoryListResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListCategories(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Datos de la categoría"
// @Success      201   {object}  dto.IDResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	id, err := h.uc.CreateCategory(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.IDResponse{ID: id})
}

// Update godoc
// @Summary      Editar categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la categoría"
// @Param        body  body  dto.UpdateCategoryRequest  true  "Datos de la categoría"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.UpdateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.UpdateCategory(c.UserContext(), GetActor(c), id, in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Categoría actualizada correctamente"})
}

// Delete godoc
// @Summary      Eliminar categoría (bloqueado si tiene productos o subcategorías)
// @Tags         categories
// @Security     Bearer
// @Param        id  path  int  true  "ID de la categoría"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.DeleteCategory(c.UserContext(), GetActor(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListSubcategories godoc
// @Summary      Listar subcategorías
// @Tags         subcategories
// @Security     Bearer
// @Produce      json
// @Param        category_id  query  int  false  "Filtrar por categoría"
// @Success      200  {array}  dto.SubcategoryResponse
// @Router       /api/subcategories [get]
func (h *CategoryHandler) ListSubcategories(c *fiber.Ctx) error {
	var categoryID *int64
	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return writeError(c, &domain.ValidationError{Field: "category_id", Message: "category_id debe ser un entero positivo"})
		}
		categoryID = &id
	}
	out, err := h.uc.ListSubcategories(c.UserContext(), categoryID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SubcategoriesByCategoryName godoc
// @Summary      Subcategorías de una categoría por nombre (para selectores)
// @Tags         subcategories
// @Produce      json
// @Param        name  path  string  true  "Nombre exacto de la categoría"
// @Success      200  {array}  dto.SubcategoryResponse
// @Router       /api/subcategories/by-category/{name} [get]
func (h *CategoryHandler) SubcategoriesByCategoryName(c *fiber.Ctx) error {
	out, err := h.uc.SubcategoriesByCategoryName(c.UserContext(), c.Params("name"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CreateSubcategory godoc
// @Summary      Crear subcategoría
// @Tags         subcategories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSubcategoryRequest  true  "Categoría padre y nombre"
// @Success      201   {object}  dto.IDResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/subcategories [post]
func (h *CategoryHandler) CreateSubcategory(c *fiber.Ctx) error {
	var in dto.CreateSubcategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	id, err := h.uc.CreateSubcategory(c.UserContext(), GetActor(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.IDResponse{ID: id})
}

// RenameSubcategory godoc
// @Summary      Renombrar subcategoría
// @Tags         subcategories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la subcategoría"
// @Param        body  body  dto.RenameSubcategoryRequest  true  "Nuevo nombre"
// @Success      200   {object}  dto.MessageResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/subcategories/{id} [put]
func (h *CategoryHandler) RenameSubcategory(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	var in dto.RenameSubcategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.RenameSubcategory(c.UserContext(), GetActor(c), id, in); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Subcategoría actualizada correctamente"})
}

// DeleteSubcategory godoc
// @Summary      Eliminar subcategoría (bloqueado si tiene productos)
// @Tags         subcategories
// @Security     Bearer
// @Param        id  path  int  true  "ID de la subcategoría"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/subcategories/{id} [delete]
func (h *CategoryHandler) DeleteSubcategory(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.DeleteSubcategory(c.UserContext(), GetActor(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListIcons godoc
// @Summary      Íconos disponibles agrupados
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.IconGroupResponse
// @Router       /api/icons [get]
func (h *CategoryHandler) ListIcons(c *fiber.Ctx) error {
	out, err := h.uc.ListIcons(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
