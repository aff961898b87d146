package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-admin/internal/domain"
	"github.com/jhoicas/tienda-admin/internal/domain/catalog"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
	"github.com/jhoicas/tienda-admin/internal/domain/repository/mocks"
)

func TestShippingChecker(t *testing.T) {
	store := mocks.NewStore()
	checker := catalog.NewShippingChecker(store.Shipping())
	ctx := context.Background()

	id, err := store.Shipping().Create(ctx, &entity.ShippingOption{Name: "Bogotá", Price: decimal.NewFromInt(8000)})
	require.NoError(t, err)

	v, err := checker.CanCreate(ctx, "BOGOTÁ")
	require.NoError(t, err)
	assert.ErrorIs(t, v.Err(), domain.ErrDuplicate, "sin distinguir mayúsculas")

	v, err = checker.CanRename(ctx, id, "bogotá")
	require.NoError(t, err)
	assert.True(t, v.Allowed())

	v, err = checker.CanDelete(ctx, id)
	require.NoError(t, err)
	assert.True(t, v.Allowed())

	store.SeedOrder(id, "pending")
	v, err = checker.CanDelete(ctx, id)
	require.NoError(t, err)
	var dep *domain.HasDependentsError
	require.ErrorAs(t, v.Err(), &dep)
	assert.Equal(t, domain.DependencyOrders, dep.Dependency)
}

func TestAdminChecker(t *testing.T) {
	store := mocks.NewStore()
	checker := catalog.NewAdminChecker(store.Admins())
	ctx := context.Background()

	rootID := store.SeedAdmin("Root", "root@tienda.co", "h", entity.RoleSuperAdmin)
	opID := store.SeedAdmin("Operador", "op@tienda.co", "h", entity.RoleAdmin)

	v, err := checker.CanUseEmail(ctx, 0, "root@tienda.co")
	require.NoError(t, err)
	assert.ErrorIs(t, v.Err(), domain.ErrDuplicate)

	v, err = checker.CanUseEmail(ctx, opID, "op@tienda.co")
	require.NoError(t, err)
	assert.True(t, v.Allowed())

	root := &entity.Admin{ID: rootID, Role: entity.RoleSuperAdmin}
	op := &entity.Admin{ID: opID, Role: entity.RoleAdmin}

	assert.ErrorIs(t, checker.CanDelete(entity.Actor{ID: opID}, op).Err(), domain.ErrForbidden, "no puede autoeliminarse")
	assert.ErrorIs(t, checker.CanDelete(entity.Actor{ID: opID}, root).Err(), domain.ErrForbidden, "superadmin protegido")
	assert.True(t, checker.CanDelete(entity.Actor{ID: rootID}, op).Allowed())

	assert.ErrorIs(t, checker.CanChangeRole(entity.Actor{ID: rootID}, root, entity.RoleAdmin).Err(), domain.ErrForbidden, "no puede degradarse")
	assert.ErrorIs(t, checker.CanChangeRole(entity.Actor{ID: opID}, root, entity.RoleAdmin).Err(), domain.ErrForbidden, "otro superadmin protegido")
	assert.True(t, checker.CanChangeRole(entity.Actor{ID: rootID}, root, entity.RoleSuperAdmin).Allowed())
	assert.True(t, checker.CanChangeRole(entity.Actor{ID: rootID}, op, entity.RoleSuperAdmin).Allowed())
	assert.True(t, checker.CanChangeRole(entity.Actor{ID: rootID}, op, entity.RoleAdmin).Allowed())
}
