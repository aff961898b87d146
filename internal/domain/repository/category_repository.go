package repository

import (
	"context"

	"github.com/jhoicas/tienda-admin/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// GetByID y FindByName devuelven (nil, nil) si no existe; Update y Delete devuelven
// domain.NotFoundError si el id no existe.
type CategoryRepository interface {
	// ListWithCounts todas las categorías ordenadas por nombre, con conteos de productos y subcategorías.
	ListWithCounts(ctx context.Context) ([]*entity.CategoryView, error)
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	// FindByName coincidencia exacta (distingue mayúsculas).
	FindByName(ctx context.Context, name string) (*entity.Category, error)
	Create(ctx context.Context, category *entity.Category) (int64, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id int64) error
	// CountProducts productos cuya subcategoría pertenece a la categoría.
	CountProducts(ctx context.Context, categoryID int64) (int64, error)
	CountSubcategories(ctx context.Context, categoryID int64) (int64, error)
}

// SubcategoryRepository define el puerto de persistencia para Subcategory.
type SubcategoryRepository interface {
	// List todas las subcategorías (o solo las de categoryID si no es nil), cada una con su conteo de productos.
	List(ctx context.Context, categoryID *int64) ([]*entity.SubcategoryView, error)
	// ListByCategoryName subcategorías de la categoría con ese nombre exacto.
	ListByCategoryName(ctx context.Context, categoryName string) ([]*entity.Subcategory, error)
	GetByID(ctx context.Context, id int64) (*entity.Subcategory, error)
	FindByName(ctx context.Context, categoryID int64, name string) (*entity.Subcategory, error)
	Create(ctx context.Context, sub *entity.Subcategory) (int64, error)
	Rename(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
	CountProducts(ctx context.Context, subcategoryID int64) (int64, error)
}

// IconRepository íconos disponibles para categorías (solo lectura).
type IconRepository interface {
	List(ctx context.Context) ([]*entity.Icon, error)
	GetByID(ctx context.Context, id int64) (*entity.Icon, error)
}
