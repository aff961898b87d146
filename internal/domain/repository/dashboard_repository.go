package repository

import (
	"context"

	"github.com/jhoicas/tienda-admin/internal/domain/entity"
)

// DashboardRepository consultas agregadas para el tablero.
type DashboardRepository interface {
	CatalogTotals(ctx context.Context) (*entity.CatalogTotals, error)
	CountPendingOrders(ctx context.Context) (int64, error)
	LowStockProducts(ctx context.Context, threshold, limit int) ([]*entity.LowStockProduct, error)
	OrderTotals(ctx context.Context) (*entity.OrderTotals, error)
	// MonthlySales ventas por mes de los últimos months meses, del más antiguo al más reciente.
	MonthlySales(ctx context.Context, months int) ([]*entity.MonthlySales, error)
}
