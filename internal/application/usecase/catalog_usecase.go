package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/tienda-admin/internal/application/audit"
	"github.com/jhoicas/tienda-admin/internal/application/dto"
	"github.com/jhoicas/tienda-admin/internal/application/validation"
	"github.com/jhoicas/tienda-admin/internal/domain"
	"github.com/jhoicas/tienda-admin/internal/domain/catalog"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
	"github.com/jhoicas/tienda-admin/internal/domain/repository"
)

// CatalogUseCase administración de categorías y subcategorías.
//
// Cada mutación sigue el mismo orden: validar (sin tocar el store), verificar reglas con el
// HierarchyChecker, mutar, registrar en auditoría y devolver. El índice único de la base es
// la garantía final contra duplicados concurrentes; su violación llega como DuplicateNameError.
type CatalogUseCase struct {
	categories    repository.CategoryRepository
	subcategories repository.SubcategoryRepository
	icons         repository.IconRepository
	checker       *catalog.HierarchyChecker
	audit         audit.Recorder
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(
	categories repository.CategoryRepository,
	subcategories repository.SubcategoryRepository,
	icons repository.IconRepository,
	recorder audit.Recorder,
) *CatalogUseCase {
	return &CatalogUseCase{
		categories:    categories,
		subcategories: subcategories,
		icons:         icons,
		checker:       catalog.NewHierarchyChecker(categories, subcategories),
		audit:         recorder,
	}
}

// ListCategories categorías ordenadas por nombre con conteos y subcategorías anidadas.
func (uc *CatalogUseCase) ListCategories(ctx context.Context) (*dto.CategoryListResponse, error) {
	views, err := uc.categories.ListWithCounts(ctx)
	if err != nil {
		return nil, domain.AsStoreError("listar categorías", err)
	}
	out := &dto.CategoryListResponse{Items: make([]dto.CategoryResponse, 0, len(views))}
	for _, v := range views {
		out.Items = append(out.Items, toCategoryResponse(v))
		out.TotalSubcategories += v.SubcategoryCount
		out.TotalProducts += v.ProductCount
	}
	out.TotalCategories = len(out.Items)
	return out, nil
}

// CreateCategory crea una categoría y devuelve su id.
func (uc *CatalogUseCase) CreateCategory(ctx context.Context, actor entity.Actor, in dto.CreateCategoryRequest) (int64, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := validation.Struct(in); err != nil {
		return 0, err
	}
	if err := uc.requireIcon(ctx, in.IconID); err != nil {
		return 0, err
	}

	v, err := uc.checker.CanCreateCategory(ctx, in.Name)
	if err != nil {
		return 0, domain.AsStoreError("verificar categoría", err)
	}
	if !v.Allowed() {
		return 0, v.Err()
	}

	id, err := uc.categories.Create(ctx, &entity.Category{Name: in.Name, Description: in.Description, IconID: in.IconID})
	if err != nil {
		return 0, domain.AsStoreError("crear categoría", err)
	}

	uc.audit.Record(audit.Entry(actor, entity.ActionCreate, entity.TableCategories, id,
		fmt.Sprintf("Creó la categoría: %s", in.Name)))
	return id, nil
}

// UpdateCategory cambia nombre, descripción e ícono.
func (uc *CatalogUseCase) UpdateCategory(ctx context.Context, actor entity.Actor, id int64, in dto.UpdateCategoryRequest) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	if err := validation.Required("id", id); err != nil {
		return err
	}
	if err := validation.Struct(in); err != nil {
		return err
	}

	current, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return domain.AsStoreError("obtener categoría", err)
	}
	if current == nil {
		return &domain.NotFoundError{Entity: entity.TableCategories, ID: id}
	}
	if err := uc.requireIcon(ctx, in.IconID); err != nil {
		return err
	}

	v, err := uc.checker.CanRenameCategory(ctx, id, in.Name)
	if err != nil {
		return domain.AsStoreError("verificar categoría", err)
	}
	if !v.Allowed() {
		return v.Err()
	}

	if err := uc.categories.Update(ctx, &entity.Category{ID: id, Name: in.Name, Description: in.Description, IconID: in.IconID}); err != nil {
		return domain.AsStoreError("actualizar categoría", err)
	}

	uc.audit.Record(audit.Entry(actor, entity.ActionUpdate, entity.TableCategories, id,
		fmt.Sprintf("Editó la categoría: %s", in.Name)))
	return nil
}

// DeleteCategory elimina una categoría sin productos ni subcategorías.
func (uc *CatalogUseCase) DeleteCategory(ctx context.Context, actor entity.Actor, id int64) error {
	if err := validation.Required("id", id); err != nil {
		return err
	}
	current, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return domain.AsStoreError("obtener categoría", err)
	}
	if current == nil {
		return &domain.NotFoundError{Entity: entity.TableCategories, ID: id}
	}

	v, err := uc.checker.CanDeleteCategory(ctx, id)
	if err != nil {
		return domain.AsStoreError("verificar dependencias de la categoría", err)
	}
	if !v.Allowed() {
		return v.Err()
	}

	if err := uc.categories.Delete(ctx, id); err != nil {
		return domain.AsStoreError("eliminar categoría", err)
	}

	uc.audit.Record(audit.Entry(actor, entity.ActionDelete, entity.TableCategories, id,
		fmt.Sprintf("Eliminó la categoría: %s", current.Name)))
	return nil
}

// ListSubcategories todas las subcategorías, o solo las de categoryID si no es nil.
func (uc *CatalogUseCase) ListSubcategories(ctx context.Context, categoryID *int64) ([]dto.SubcategoryResponse, error) {
	views, err := uc.subcategories.List(ctx, categoryID)
	if err != nil {
		return nil, domain.AsStoreError("listar subcategorías", err)
	}
	out := make([]dto.SubcategoryResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toSubcategoryResponse(*v))
	}
	return out, nil
}

// SubcategoriesByCategoryName subcategorías de la categoría con ese nombre (para selects dependientes).
func (uc *CatalogUseCase) SubcategoriesByCategoryName(ctx context.Context, name string) ([]dto.SubcategoryResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &domain.ValidationError{Field: "category", Message: "el campo category es obligatorio"}
	}
	subs, err := uc.subcategories.ListByCategoryName(ctx, name)
	if err != nil {
		return nil, domain.AsStoreError("listar subcategorías por categoría", err)
	}
	out := make([]dto.SubcategoryResponse, 0, len(subs))
	for _, s := range subs {
		out = append(out, dto.SubcategoryResponse{ID: s.ID, CategoryID: s.CategoryID, CategoryName: name, Name: s.Name})
	}
	return out, nil
}

// CreateSubcategory crea una subcategoría bajo una categoría existente.
func (uc *CatalogUseCase) CreateSubcategory(ctx context.Context, actor entity.Actor, in dto.CreateSubcategoryRequest) (int64, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Struct(in); err != nil {
		return 0, err
	}

	parent, err := uc.categories.GetByID(ctx, in.CategoryID)
	if err != nil {
		return 0, domain.AsStoreError("obtener categoría", err)
	}
	if parent == nil {
		return 0, &domain.ValidationError{Field: "category_id", Message: "la categoría no existe"}
	}

	v, err := uc.checker.CanCreateSubcategory(ctx, in.CategoryID, in.Name)
	if err != nil {
		return 0, domain.AsStoreError("verificar subcategoría", err)
	}
	if !v.Allowed() {
		return 0, v.Err()
	}

	id, err := uc.subcategories.Create(ctx, &entity.Subcategory{CategoryID: in.CategoryID, Name: in.Name})
	if err != nil {
		return 0, domain.AsStoreError("crear subcategoría", err)
	}

	uc.audit.Record(audit.Entry(actor, entity.ActionCreate, entity.TableSubcategories, id,
		fmt.Sprintf("Creó la subcategoría: %s en %s", in.Name, parent.Name)))
	return id, nil
}

// RenameSubcategory renombra una subcategoría; el nombre debe ser único entre sus hermanas.
func (uc *CatalogUseCase) RenameSubcategory(ctx context.Context, actor entity.Actor, id int64, in dto.RenameSubcategoryRequest) error {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Required("id", id); err != nil {
		return err
	}
	if err := validation.Struct(in); err != nil {
		return err
	}

	current, err := uc.subcategories.GetByID(ctx, id)
	if err != nil {
		return domain.AsStoreError("obtener subcategoría", err)
	}
	if current == nil {
		return &domain.NotFoundError{Entity: entity.TableSubcategories, ID: id}
	}

	v, err := uc.checker.CanRenameSubcategory(ctx, id, in.Name)
	if err != nil {
		return domain.AsStoreError("verificar subcategoría", err)
	}
	if !v.Allowed() {
		return v.Err()
	}

	if err := uc.subcategories.Rename(ctx, id, in.Name); err != nil {
		return domain.AsStoreError("renombrar subcategoría", err)
	}

	uc.audit.Record(audit.Entry(actor, entity.ActionUpdate, entity.TableSubcategories, id,
		fmt.Sprintf("Editó la subcategoría: %s → %s", current.Name, in.Name)))
	return nil
}

// DeleteSubcategory elimina una subcategoría sin productos.
func (uc *CatalogUseCase) DeleteSubcategory(ctx context.Context, actor entity.Actor, id int64) error {
	if err := validation.Required("id", id); err != nil {
		return err
	}
	current, err := uc.subcategories.GetByID(ctx, id)
	if err != nil {
		return domain.AsStoreError("obtener subcategoría", err)
	}
	if current == nil {
		return &domain.NotFoundError{Entity: entity.TableSubcategories, ID: id}
	}

	v, err := uc.checker.CanDeleteSubcategory(ctx, id)
	if err != nil {
		return domain.AsStoreError("verificar dependencias de la subcategoría", err)
	}
	if !v.Allowed() {
		return v.Err()
	}

	if err := uc.subcategories.Delete(ctx, id); err != nil {
		return domain.AsStoreError("eliminar subcategoría", err)
	}

	uc.audit.Record(audit.Entry(actor, entity.ActionDelete, entity.TableSubcategories, id,
		fmt.Sprintf("Eliminó la subcategoría: %s", current.Name)))
	return nil
}

// ListIcons íconos agrupados por etiqueta, en el orden en que aparecen.
func (uc *CatalogUseCase) ListIcons(ctx context.Context) ([]dto.IconGroupResponse, error) {
	icons, err := uc.icons.List(ctx)
	if err != nil {
		return nil, domain.AsStoreError("listar íconos", err)
	}
	var groups []dto.IconGroupResponse
	index := make(map[string]int)
	for _, icon := range icons {
		i, ok := index[icon.Category]
		if !ok {
			i = len(groups)
			index[icon.Category] = i
			groups = append(groups, dto.IconGroupResponse{Category: icon.Category})
		}
		groups[i].Icons = append(groups[i].Icons, dto.IconResponse{ID: icon.ID, Class: icon.Class})
	}
	return groups, nil
}

func (uc *CatalogUseCase) requireIcon(ctx context.Context, iconID int64) error {
	icon, err := uc.icons.GetByID(ctx, iconID)
	if err != nil {
		return domain.AsStoreError("obtener ícono", err)
	}
	if icon == nil {
		return &domain.ValidationError{Field: "icon_id", Message: "el ícono no existe"}
	}
	return nil
}

func toCategoryResponse(v *entity.CategoryView) dto.CategoryResponse {
	out := dto.CategoryResponse{
		ID:               v.ID,
		Name:             v.Name,
		Description:      v.Description,
		IconID:           v.IconID,
		IconClass:        v.IconClass,
		ProductCount:     v.ProductCount,
		SubcategoryCount: v.SubcategoryCount,
		Subcategories:    make([]dto.SubcategoryResponse, 0, len(v.Subcategories)),
		CreatedAt:        v.CreatedAt,
	}
	for _, s := range v.Subcategories {
		out.Subcategories = append(out.Subcategories, toSubcategoryResponse(s))
	}
	return out
}

func toSubcategoryResponse(v entity.SubcategoryView) dto.SubcategoryResponse {
	return dto.SubcategoryResponse{
		ID:           v.ID,
		CategoryID:   v.CategoryID,
		CategoryName: v.CategoryName,
		Name:         v.Name,
		ProductCount: v.ProductCount,
	}
}
