package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=500"`
	IconID      int64  `json:"icon_id" validate:"required,gt=0"`
}

// UpdateCategoryRequest entrada para editar una categoría (mismos campos obligatorios).
type UpdateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"required,max=500"`
	IconID      int64  `json:"icon_id" validate:"required,gt=0"`
}

// CategoryResponse fila del listado de categorías con conteos agregados.
type CategoryResponse struct {
	ID               int64                 `json:"id"`
	Name             string                `json:"main_category"`
	Description      string                `json:"description"`
	IconID           int64                 `json:"icon_id"`
	IconClass        string                `json:"icon_class"`
	ProductCount     int64                 `json:"product_count"`
	SubcategoryCount int64                 `json:"subcategory_count"`
	Subcategories    []SubcategoryResponse `json:"subcategories"`
	CreatedAt        time.Time             `json:"created_at"`
}

// CategoryListResponse listado de categorías con totales.
type CategoryListResponse struct {
	Items              []CategoryResponse `json:"items"`
	TotalCategories    int                `json:"total_categories"`
	TotalSubcategories int64              `json:"total_subcategories"`
	TotalProducts      int64              `json:"total_products"`
}

// CreateSubcategoryRequest entrada para crear una subcategoría.
type CreateSubcategoryRequest struct {
	CategoryID int64  `json:"category_id" validate:"required,gt=0"`
	Name       string `json:"name" validate:"required,max=100"`
}

// RenameSubcategoryRequest entrada para renombrar una subcategoría.
type RenameSubcategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// SubcategoryResponse subcategoría con su conteo de productos.
type SubcategoryResponse struct {
	ID           int64  `json:"id"`
	CategoryID   int64  `json:"category_id"`
	CategoryName string `json:"category_name,omitempty"`
	Name         string `json:"sub_category"`
	ProductCount int64  `json:"product_count"`
}

// IconResponse ícono disponible para categorías.
type IconResponse struct {
	ID    int64  `json:"id"`
	Class string `json:"icon_class"`
}

// IconGroupResponse íconos agrupados por su etiqueta.
type IconGroupResponse struct {
	Category string         `json:"category"`
	Icons    []IconResponse `json:"icons"`
}
