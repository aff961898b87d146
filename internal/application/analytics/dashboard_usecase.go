// Package analytics contiene los casos de uso del tablero del panel de administración.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/tienda-admin/internal/application/dto"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
	"github.com/jhoicas/tienda-admin/internal/domain/repository"
)

const dashboardLowStockItems = 10 // productos en el widget de alertas de stock

// DashboardUseCase genera el resumen del catálogo y de las ventas.
//
// Fuente de datos: DashboardRepository (consultas read-only).
type DashboardUseCase struct {
	repo repository.DashboardRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cinco llamadas en paralelo:
//  1. CatalogTotals       → productos, stock, categorías
//  2. CountPendingOrders  → pedidos pendientes
//  3. LowStockProducts    → widget de alertas
//  4. OrderTotals         → pedidos, ingresos, pedidos del mes
//  5. MonthlySales        → serie de ventas de los últimos 12 meses
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	type totalsResult struct {
		totals *entity.CatalogTotals
		err    error
	}
	type countResult struct {
		n   int64
		err error
	}
	type lowStockResult struct {
		items []*entity.LowStockProduct
		err   error
	}
	type orderTotalsResult struct {
		totals *entity.OrderTotals
		err    error
	}
	type salesResult struct {
		months []*entity.MonthlySales
		err    error
	}

	totalsCh := make(chan totalsResult, 1)
	ordersCh := make(chan countResult, 1)
	lowCh := make(chan lowStockResult, 1)
	orderTotalsCh := make(chan orderTotalsResult, 1)
	salesCh := make(chan salesResult, 1)

	go func() {
		t, err := uc.repo.CatalogTotals(ctx)
		totalsCh <- totalsResult{t, err}
	}()
	go func() {
		n, err := uc.repo.CountPendingOrders(ctx)
		ordersCh <- countResult{n, err}
	}()
	go func() {
		items, err := uc.repo.LowStockProducts(ctx, entity.LowStockThreshold, dashboardLowStockItems)
		lowCh <- lowStockResult{items, err}
	}()
	go func() {
		t, err := uc.repo.OrderTotals(ctx)
		orderTotalsCh <- orderTotalsResult{t, err}
	}()
	go func() {
		m, err := uc.repo.MonthlySales(ctx, entity.SalesHistoryMonths)
		salesCh <- salesResult{m, err}
	}()

	totals := <-totalsCh
	orders := <-ordersCh
	low := <-lowCh
	orderTotals := <-orderTotalsCh
	sales := <-salesCh

	if totals.err != nil {
		return nil, fmt.Errorf("dashboard: totales del catálogo: %w", totals.err)
	}
	if orders.err != nil {
		return nil, fmt.Errorf("dashboard: pedidos pendientes: %w", orders.err)
	}
	if low.err != nil {
		return nil, fmt.Errorf("dashboard: productos con bajo stock: %w", low.err)
	}
	if orderTotals.err != nil {
		return nil, fmt.Errorf("dashboard: totales de pedidos: %w", orderTotals.err)
	}
	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: ventas mensuales: %w", sales.err)
	}

	out := &dto.DashboardSummaryDTO{
		ActiveProducts:   totals.totals.ActiveProducts,
		InactiveProducts: totals.totals.InactiveProducts,
		LowStock:         totals.totals.LowStock,
		OutOfStock:       totals.totals.OutOfStock,
		Categories:       totals.totals.Categories,
		Subcategories:    totals.totals.Subcategories,
		PendingOrders:    orders.n,
		TotalOrders:      orderTotals.totals.Orders,
		TotalIncome:      orderTotals.totals.Income,
		OrdersThisMonth:  orderTotals.totals.OrdersThisMonth,
		LowStockProducts: make([]dto.LowStockProductDTO, 0, len(low.items)),
		SalesByMonth:     make([]dto.MonthlySalesDTO, 0, len(sales.months)),
	}
	for _, m := range sales.months {
		out.SalesByMonth = append(out.SalesByMonth, dto.MonthlySalesDTO{Month: m.Month, Total: m.Total})
	}
	for _, p := range low.items {
		out.LowStockProducts = append(out.LowStockProducts, dto.LowStockProductDTO{
			ID: p.ID, Name: p.Name, Stock: p.Stock, SubcategoryName: p.SubcategoryName,
		})
	}
	return out, nil
}
