package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	ActiveProducts   int64 `json:"active_products"`
	InactiveProducts int64 `json:"inactive_products"`
	LowStock         int64 `json:"low_stock"`
	OutOfStock       int64 `json:"out_of_stock"`
	Categories       int64 `json:"categories"`
	Subcategories    int64 `json:"subcategories"`
	PendingOrders    int64 `json:"pending_orders"`

	TotalOrders     int64           `json:"total_orders"`
	TotalIncome     decimal.Decimal `json:"total_income"`
	OrdersThisMonth int64           `json:"orders_this_month"`

	// Ventas por mes (YYYY-MM) de los últimos 12 meses, del más antiguo al más reciente
	SalesByMonth []MonthlySalesDTO `json:"sales_by_month"`

	// Productos activos con stock bajo, para el widget de alertas
	LowStockProducts []LowStockProductDTO `json:"low_stock_products"`
}

// LowStockProductDTO producto para el widget de alertas de stock.
type LowStockProductDTO struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Stock           int    `json:"stock"`
	SubcategoryName string `json:"subcategory_name"`
}

// MonthlySalesDTO punto de la serie de ventas mensuales.
type MonthlySalesDTO struct {
	Month string          `json:"month"`
	Total decimal.Decimal `json:"total"`
}
