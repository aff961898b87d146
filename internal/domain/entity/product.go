package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del catálogo; pertenece a exactamente una Subcategory.
// Para la jerarquía es solo un bloqueador de eliminación.
type Product struct {
	ID            int64
	SubcategoryID int64
	Name          string
	Description   string
	Cost          decimal.Decimal
	Price         decimal.Decimal
	Stock         int
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ProductDetail producto con nombres de su jerarquía e imágenes.
type ProductDetail struct {
	Product
	SubcategoryName string
	CategoryID      int64
	CategoryName    string
	MainImage       string
	Images          []ProductImage
}

// ProductImage imagen asociada a un producto. Solo una por producto es principal.
type ProductImage struct {
	ID        int64
	ProductID int64
	URL       string
	IsMain    bool
}

// Filtros de stock para el listado.
const (
	StockFilterLow = "low" // 1..LowStockThreshold
	StockFilterOut = "out" // 0
)

// Filtros de estado para el listado.
const (
	StatusFilterActive   = "active"
	StatusFilterInactive = "inactive"
)

// LowStockThreshold unidades a partir de las cuales un producto se considera con bajo stock.
const LowStockThreshold = 5

// ProductFilter criterios del listado paginado de productos.
type ProductFilter struct {
	Search     string
	CategoryID *int64
	Stock      string
	Status     string
	Limit      int
	Offset     int
}
