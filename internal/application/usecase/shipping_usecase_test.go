package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-admin/internal/application/dto"
	"github.com/jhoicas/tienda-admin/internal/domain"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
)

func TestShipping_CrearListarYEliminar(t *testing.T) {
	f := newFixture(t)
	uc := NewShippingUseCase(f.store.Shipping(), f.audit)
	ctx := context.Background()

	med, err := uc.Create(ctx, f.actor, dto.ShippingOptionRequest{Name: " Medellín ", Price: decimal.NewFromInt(12000)})
	require.NoError(t, err)
	bog, err := uc.Create(ctx, f.actor, dto.ShippingOptionRequest{Name: "Bogotá", Price: decimal.NewFromInt(9000)})
	require.NoError(t, err)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Bogotá", list[0].Name)
	assert.Equal(t, "Medellín", list[1].Name)

	require.NoError(t, uc.Delete(ctx, f.actor, med))
	assert.ErrorIs(t, uc.Delete(ctx, f.actor, med), domain.ErrNotFound)

	f.store.SeedOrder(bog, "pending")
	err = uc.Delete(ctx, f.actor, bog)
	var dep *domain.HasDependentsError
	require.ErrorAs(t, err, &dep)
	assert.Equal(t, domain.DependencyOrders, dep.Dependency)

	logs := f.logs(t)
	require.Len(t, logs, 3)
	assert.Equal(t, entity.ActionDelete, logs[2].Action)
	assert.Equal(t, entity.TableShippingOptions, logs[2].TableName)
}

func TestShipping_DuplicadoSinDistinguirMayusculas(t *testing.T) {
	f := newFixture(t)
	uc := NewShippingUseCase(f.store.Shipping(), f.audit)
	ctx := context.Background()

	_, err := uc.Create(ctx, f.actor, dto.ShippingOptionRequest{Name: "Cali", Price: decimal.NewFromInt(1)})
	require.NoError(t, err)
	_, err = uc.Create(ctx, f.actor, dto.ShippingOptionRequest{Name: "CALI", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestShipping_Validacion(t *testing.T) {
	f := newFixture(t)
	uc := NewShippingUseCase(f.store.Shipping(), f.audit)
	ctx := context.Background()
	f.store.ResetCalls()

	_, err := uc.Create(ctx, f.actor, dto.ShippingOptionRequest{Name: "", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, f.actor, dto.ShippingOptionRequest{Name: "Pasto", Price: decimal.NewFromInt(-5)})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "price", verr.Field)

	_, err = uc.Create(ctx, f.actor, dto.ShippingOptionRequest{Name: "Gratis", Price: decimal.Zero})
	require.NoError(t, err, "precio cero es válido")
}

func TestShipping_Update(t *testing.T) {
	f := newFixture(t)
	uc := NewShippingUseCase(f.store.Shipping(), f.audit)
	ctx := context.Background()

	a, err := uc.Create(ctx, f.actor, dto.ShippingOptionRequest{Name: "Tunja", Price: decimal.NewFromInt(1)})
	require.NoError(t, err)
	_, err = uc.Create(ctx, f.actor, dto.ShippingOptionRequest{Name: "Neiva", Price: decimal.NewFromInt(1)})
	require.NoError(t, err)

	require.NoError(t, uc.Update(ctx, f.actor, a, dto.ShippingOptionRequest{Name: "TUNJA", Price: decimal.NewFromInt(3)}))
	assert.ErrorIs(t, uc.Update(ctx, f.actor, a, dto.ShippingOptionRequest{Name: "neiva", Price: decimal.NewFromInt(3)}), domain.ErrDuplicate)
	assert.ErrorIs(t, uc.Update(ctx, f.actor, 77, dto.ShippingOptionRequest{Name: "X", Price: decimal.NewFromInt(3)}), domain.ErrNotFound)

	got, err := f.store.Shipping().GetByID(ctx, a)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(3)))
}
