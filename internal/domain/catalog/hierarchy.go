package catalog

import (
	"context"
	"fmt"

	"github.com/jhoicas/tienda-admin/internal/domain"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
	"github.com/jhoicas/tienda-admin/internal/domain/repository"
)

// HierarchyChecker reglas de unicidad y eliminación segura de categorías y subcategorías.
// Los rechazos de negocio viajan en el Verdict; el error solo indica fallo del store.
type HierarchyChecker struct {
	categories    repository.CategoryRepository
	subcategories repository.SubcategoryRepository
}

// NewHierarchyChecker construye el verificador sobre los puertos de lectura.
func NewHierarchyChecker(categories repository.CategoryRepository, subcategories repository.SubcategoryRepository) *HierarchyChecker {
	return &HierarchyChecker{categories: categories, subcategories: subcategories}
}

// CanCreateCategory rechaza si ya existe una categoría con el mismo nombre exacto.
func (h *HierarchyChecker) CanCreateCategory(ctx context.Context, name string) (Verdict, error) {
	existing, err := h.categories.FindByName(ctx, name)
	if err != nil {
		return Verdict{}, fmt.Errorf("buscar categoría por nombre: %w", err)
	}
	if existing != nil {
		return Reject(&domain.DuplicateNameError{Entity: entity.TableCategories, Name: name}), nil
	}
	return Allow(), nil
}

// CanRenameCategory rechaza si otra categoría (id distinto) ya usa newName.
func (h *HierarchyChecker) CanRenameCategory(ctx context.Context, id int64, newName string) (Verdict, error) {
	existing, err := h.categories.FindByName(ctx, newName)
	if err != nil {
		return Verdict{}, fmt.Errorf("buscar categoría por nombre: %w", err)
	}
	if existing != nil && existing.ID != id {
		return Reject(&domain.DuplicateNameError{Entity: entity.TableCategories, Name: newName}), nil
	}
	return Allow(), nil
}

// CanCreateSubcategory rechaza si la categoría padre ya tiene una subcategoría con ese nombre.
// El mismo nombre bajo otra categoría está permitido.
func (h *HierarchyChecker) CanCreateSubcategory(ctx context.Context, categoryID int64, name string) (Verdict, error) {
	existing, err := h.subcategories.FindByName(ctx, categoryID, name)
	if err != nil {
		return Verdict{}, fmt.Errorf("buscar subcategoría por nombre: %w", err)
	}
	if existing != nil {
		return Reject(&domain.DuplicateNameError{Entity: entity.TableSubcategories, Name: name}), nil
	}
	return Allow(), nil
}

// CanRenameSubcategory rechaza si un hermano (mismo padre, id distinto) ya usa newName.
func (h *HierarchyChecker) CanRenameSubcategory(ctx context.Context, id int64, newName string) (Verdict, error) {
	sub, err := h.subcategories.GetByID(ctx, id)
	if err != nil {
		return Verdict{}, fmt.Errorf("obtener subcategoría: %w", err)
	}
	if sub == nil {
		return Reject(&domain.NotFoundError{Entity: entity.TableSubcategories, ID: id}), nil
	}
	sibling, err := h.subcategories.FindByName(ctx, sub.CategoryID, newName)
	if err != nil {
		return Verdict{}, fmt.Errorf("buscar subcategoría por nombre: %w", err)
	}
	if sibling != nil && sibling.ID != id {
		return Reject(&domain.DuplicateNameError{Entity: entity.TableSubcategories, Name: newName}), nil
	}
	return Allow(), nil
}

// CanDeleteCategory exige cero productos y cero subcategorías. Los productos se revisan primero.
func (h *HierarchyChecker) CanDeleteCategory(ctx context.Context, id int64) (Verdict, error) {
	products, err := h.categories.CountProducts(ctx, id)
	if err != nil {
		return Verdict{}, fmt.Errorf("contar productos de la categoría: %w", err)
	}
	if products > 0 {
		return Reject(&domain.HasDependentsError{
			Entity: entity.TableCategories, ID: id, Dependency: domain.DependencyProducts, Count: products,
		}), nil
	}

	subs, err := h.categories.CountSubcategories(ctx, id)
	if err != nil {
		return Verdict{}, fmt.Errorf("contar subcategorías: %w", err)
	}
	if subs > 0 {
		return Reject(&domain.HasDependentsError{
			Entity: entity.TableCategories, ID: id, Dependency: domain.DependencySubcategories, Count: subs,
		}), nil
	}
	return Allow(), nil
}

// CanDeleteSubcategory exige que ningún producto la referencie.
func (h *HierarchyChecker) CanDeleteSubcategory(ctx context.Context, id int64) (Verdict, error) {
	products, err := h.subcategories.CountProducts(ctx, id)
	if err != nil {
		return Verdict{}, fmt.Errorf("contar productos de la subcategoría: %w", err)
	}
	if products > 0 {
		return Reject(&domain.HasDependentsError{
			Entity: entity.TableSubcategories, ID: id, Dependency: domain.DependencyProducts, Count: products,
		}), nil
	}
	return Allow(), nil
}
