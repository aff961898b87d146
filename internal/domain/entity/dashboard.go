package entity

import "github.com/shopspring/decimal"

// CatalogTotals contadores del tablero principal.
type CatalogTotals struct {
	ActiveProducts   int64
	InactiveProducts int64
	LowStock         int64
	OutOfStock       int64
	Categories       int64
	Subcategories    int64
}

// LowStockProduct producto activo con stock por debajo del umbral.
type LowStockProduct struct {
	ID              int64
	Name            string
	Stock           int
	SubcategoryName string
}

// OrderTotals agregados de pedidos: cantidad, ingresos y pedidos del mes en curso.
type OrderTotals struct {
	Orders          int64
	Income          decimal.Decimal
	OrdersThisMonth int64
}

// MonthlySales ventas de un mes (Month con formato YYYY-MM).
type MonthlySales struct {
	Month string
	Total decimal.Decimal
}

// SalesHistoryMonths meses que cubre la serie de ventas del tablero.
const SalesHistoryMonths = 12
