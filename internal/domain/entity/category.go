package entity

import "time"

// Category categoría principal del catálogo (columna main_category, nombre único exacto).
// Es dueña de cero o más Subcategory.
type Category struct {
	ID          int64
	Name        string
	Description string
	IconID      int64
	CreatedAt   time.Time
}

// CategoryView fila denormalizada para listados: incluye el ícono y conteos agregados.
type CategoryView struct {
	Category
	IconClass        string
	ProductCount     int64
	SubcategoryCount int64
	Subcategories    []SubcategoryView
}

// Subcategory agrupación anidada bajo exactamente una Category.
// El nombre es único dentro de su categoría padre, no globalmente.
type Subcategory struct {
	ID         int64
	CategoryID int64
	Name       string
}

// SubcategoryView subcategoría con su conteo de productos.
type SubcategoryView struct {
	Subcategory
	CategoryName string
	ProductCount int64
}

// Icon ícono seleccionable para una categoría. Solo lectura.
type Icon struct {
	ID       int64
	Category string // etiqueta de agrupación, no relacionada con Category
	Class    string
}
