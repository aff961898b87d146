package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-admin/internal/domain"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
	"github.com/jhoicas/tienda-admin/internal/domain/repository/mocks"
)

func TestGetSummary(t *testing.T) {
	store := mocks.NewStore()
	ctx := context.Background()
	icon := store.SeedIcon("general", "fa-box")
	catID, err := store.Categories().Create(ctx, &entity.Category{Name: "Hogar", Description: "d", IconID: icon})
	require.NoError(t, err)
	subID, err := store.Subcategories().Create(ctx, &entity.Subcategory{CategoryID: catID, Name: "Cocina"})
	require.NoError(t, err)

	store.SeedProduct(subID, "Olla", 20)
	store.SeedProduct(subID, "Sartén", 2)
	agotado := store.SeedProduct(subID, "Cuchillo", 0)
	inactivo := store.SeedProduct(subID, "Tabla", 1)
	require.NoError(t, store.Products().SetActive(ctx, inactivo, false))
	store.SeedOrder(1, "pending")
	store.SeedOrder(1, "delivered")

	uc := NewDashboardUseCase(store.Dashboard())
	got, err := uc.GetSummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(3), got.ActiveProducts)
	assert.Equal(t, int64(1), got.InactiveProducts)
	assert.Equal(t, int64(1), got.LowStock)
	assert.Equal(t, int64(1), got.OutOfStock)
	assert.Equal(t, int64(1), got.Categories)
	assert.Equal(t, int64(1), got.Subcategories)
	assert.Equal(t, int64(1), got.PendingOrders)
	require.Len(t, got.LowStockProducts, 2)
	assert.Equal(t, agotado, got.LowStockProducts[1].ID)
	assert.Equal(t, "Cocina", got.LowStockProducts[0].SubcategoryName)
}

func TestGetSummary_PropagaErrorDelRepositorio(t *testing.T) {
	store := mocks.NewStore()
	store.SetError("Dashboard.CountPendingOrders", &domain.StoreError{Op: "count", Err: errors.New("timeout")})

	_, err := NewDashboardUseCase(store.Dashboard()).GetSummary(context.Background())
	assert.ErrorIs(t, err, domain.ErrStore)
}

func TestGetSummary_PedidosYVentasMensuales(t *testing.T) {
	store := mocks.NewStore()
	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return now })

	store.SeedSale(decimal.RequireFromString("100.50"), time.Date(2026, 10, 3, 9, 0, 0, 0, time.UTC))
	store.SeedSale(decimal.RequireFromString("49.50"), time.Date(2026, 10, 10, 9, 0, 0, 0, time.UTC))
	store.SeedSale(decimal.NewFromInt(200), time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC))
	// fuera de la ventana de 12 meses: suma a los totales, no a la serie
	store.SeedSale(decimal.NewFromInt(999), time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC))

	got, err := NewDashboardUseCase(store.Dashboard()).GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(4), got.TotalOrders)
	assert.True(t, got.TotalIncome.Equal(decimal.NewFromInt(1349)), "ingresos: %s", got.TotalIncome)
	assert.Equal(t, int64(2), got.OrdersThisMonth)

	require.Len(t, got.SalesByMonth, 2)
	assert.Equal(t, "2026-08", got.SalesByMonth[0].Month)
	assert.True(t, got.SalesByMonth[0].Total.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, "2026-10", got.SalesByMonth[1].Month)
	assert.True(t, got.SalesByMonth[1].Total.Equal(decimal.NewFromInt(150)))
}

func TestGetSummary_SinPedidos(t *testing.T) {
	got, err := NewDashboardUseCase(mocks.NewStore().Dashboard()).GetSummary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, got.TotalOrders)
	assert.True(t, got.TotalIncome.IsZero())
	assert.NotNil(t, got.SalesByMonth)
	assert.Empty(t, got.SalesByMonth)
}

func TestGetSummary_FalloEnVentasMensuales(t *testing.T) {
	store := mocks.NewStore()
	store.SetError("Dashboard.MonthlySales", &domain.StoreError{Op: "sales", Err: errors.New("timeout")})

	_, err := NewDashboardUseCase(store.Dashboard()).GetSummary(context.Background())
	assert.ErrorIs(t, err, domain.ErrStore)
}
