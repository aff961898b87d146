package postgres

import (
	"context"

	"github.com/jhoicas/tienda-admin/internal/domain/entity"
	"github.com/jhoicas/tienda-admin/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para el tablero.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador del tablero.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// CatalogTotals contadores de productos, categorías y subcategorías en una sola consulta.
func (r *DashboardRepo) CatalogTotals(ctx context.Context) (*entity.CatalogTotals, error) {
	const query = `
	SELECT
	    COUNT(*) FILTER (WHERE is_active)                                   AS active_products,
	    COUNT(*) FILTER (WHERE NOT is_active)                               AS inactive_products,
	    COUNT(*) FILTER (WHERE is_active AND stock > 0 AND stock <= $1)     AS low_stock,
	    COUNT(*) FILTER (WHERE is_active AND stock = 0)                     AS out_of_stock,
	    (SELECT COUNT(*) FROM categories)                                   AS categories,
	    (SELECT COUNT(*) FROM sub_categories)                               AS subcategories
	FROM products`
	var t entity.CatalogTotals
	err := r.q.QueryRow(ctx, query, entity.LowStockThreshold).Scan(
		&t.ActiveProducts, &t.InactiveProducts, &t.LowStock, &t.OutOfStock, &t.Categories, &t.Subcategories,
	)
	if err != nil {
		return nil, storeErr("dashboard.CatalogTotals", err)
	}
	return &t, nil
}

// CountPendingOrders pedidos en estado pending.
func (r *DashboardRepo) CountPendingOrders(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE status = 'pending'`).Scan(&n); err != nil {
		return 0, storeErr("dashboard.CountPendingOrders", err)
	}
	return n, nil
}

// LowStockProducts productos activos con stock <= threshold, el menor stock primero.
func (r *DashboardRepo) LowStockProducts(ctx context.Context, threshold, limit int) ([]*entity.LowStockProduct, error) {
	const query = `
	SELECT p.id, p.name, p.stock, sc.sub_category
	FROM products p
	JOIN sub_categories sc ON sc.id = p.subcategory_id
	WHERE p.is_active = true AND p.stock <= $1
	ORDER BY p.stock ASC, p.id
	LIMIT $2`
	rows, err := r.q.Query(ctx, query, threshold, limit)
	if err != nil {
		return nil, storeErr("dashboard.LowStockProducts", err)
	}
	defer rows.Close()
	var list []*entity.LowStockProduct
	for rows.Next() {
		var p entity.LowStockProduct
		if err := rows.Scan(&p.ID, &p.Name, &p.Stock, &p.SubcategoryName); err != nil {
			return nil, storeErr("dashboard.LowStockProducts", err)
		}
		list = append(list, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("dashboard.LowStockProducts", err)
	}
	return list, nil
}

// OrderTotals cantidad de pedidos, ingresos (SUM(total)) y pedidos desde el inicio del mes.
func (r *DashboardRepo) OrderTotals(ctx context.Context) (*entity.OrderTotals, error) {
	const query = `
	SELECT
	    COUNT(*)                                                          AS orders,
	    COALESCE(SUM(total), 0)                                           AS income,
	    COUNT(*) FILTER (WHERE created_at >= DATE_TRUNC('month', CURRENT_DATE)) AS orders_this_month
	FROM orders`
	var t entity.OrderTotals
	if err := r.q.QueryRow(ctx, query).Scan(&t.Orders, &t.Income, &t.OrdersThisMonth); err != nil {
		return nil, storeErr("dashboard.OrderTotals", err)
	}
	return &t, nil
}

// MonthlySales ventas agrupadas por mes (YYYY-MM) de los últimos months meses.
func (r *DashboardRepo) MonthlySales(ctx context.Context, months int) ([]*entity.MonthlySales, error) {
	const query = `
	SELECT TO_CHAR(created_at, 'YYYY-MM') AS month, COALESCE(SUM(total), 0) AS total
	FROM orders
	WHERE created_at >= CURRENT_DATE - make_interval(months => $1)
	GROUP BY month
	ORDER BY month`
	rows, err := r.q.Query(ctx, query, months)
	if err != nil {
		return nil, storeErr("dashboard.MonthlySales", err)
	}
	defer rows.Close()
	var list []*entity.MonthlySales
	for rows.Next() {
		var m entity.MonthlySales
		if err := rows.Scan(&m.Month, &m.Total); err != nil {
			return nil, storeErr("dashboard.MonthlySales", err)
		}
		list = append(list, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("dashboard.MonthlySales", err)
	}
	return list, nil
}
