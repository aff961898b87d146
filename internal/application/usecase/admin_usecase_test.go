package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-admin/internal/application/dto"
	"github.com/jhoicas/tienda-admin/internal/domain"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
)

func newAdmins(f *fixture) *AdminUseCase {
	return NewAdminUseCase(f.store.Admins(), f.audit).WithBcryptCost(bcrypt.MinCost)
}

func TestAdmin_CreateHasheaYAsignaRolPorDefecto(t *testing.T) {
	f := newFixture(t)
	uc := newAdmins(f)
	ctx := context.Background()

	id, err := uc.Create(ctx, f.actor, dto.CreateAdminRequest{Name: "Ana", Email: "Ana@Tienda.co", Password: "clave-segura"})
	require.NoError(t, err)

	stored, err := f.store.Admins().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, stored.Role)
	assert.Equal(t, "ana@tienda.co", stored.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("clave-segura")))

	_, err = uc.Create(ctx, f.actor, dto.CreateAdminRequest{Name: "Otra", Email: "ana@tienda.co", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestAdmin_UpdateConservaPasswordSiVieneVacia(t *testing.T) {
	f := newFixture(t)
	uc := newAdmins(f)
	ctx := context.Background()
	id, err := uc.Create(ctx, f.actor, dto.CreateAdminRequest{Name: "Ana", Email: "ana@tienda.co", Password: "clave-segura"})
	require.NoError(t, err)

	require.NoError(t, uc.Update(ctx, f.actor, id, dto.UpdateAdminRequest{Name: "Ana M.", Email: "ana@tienda.co", Role: entity.RoleSuperAdmin}))
	stored, err := f.store.Admins().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ana M.", stored.Name)
	assert.Equal(t, entity.RoleSuperAdmin, stored.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("clave-segura")))

	require.NoError(t, uc.Update(ctx, f.actor, id, dto.UpdateAdminRequest{Name: "Ana", Email: "ana@tienda.co", Role: entity.RoleSuperAdmin, Password: "nueva-clave"}))
	stored, err = f.store.Admins().GetByID(ctx, id)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("nueva-clave")))
}

func TestAdmin_UpdateSinRolAsignaAdmin(t *testing.T) {
	f := newFixture(t)
	uc := newAdmins(f)
	ctx := context.Background()
	id := f.store.SeedAdmin("Ana", "ana@tienda.co", "h", entity.RoleAdmin)

	require.NoError(t, uc.Update(ctx, f.actor, id, dto.UpdateAdminRequest{Name: "Ana", Email: "ana@tienda.co"}))
	stored, err := f.store.Admins().GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, stored.Role)
}

func TestAdmin_UpdateNoQuitaRolSuperadmin(t *testing.T) {
	f := newFixture(t)
	uc := newAdmins(f)
	ctx := context.Background()

	rootID := f.store.SeedAdmin("Root", "root@tienda.co", "h", entity.RoleSuperAdmin)
	otherRoot := f.store.SeedAdmin("Jefa", "jefa@tienda.co", "h", entity.RoleSuperAdmin)
	opID := f.store.SeedAdmin("Operador", "op@tienda.co", "h", entity.RoleAdmin)
	actor := entity.Actor{ID: rootID, Name: "Root", Role: entity.RoleSuperAdmin}

	err := uc.Update(ctx, actor, rootID, dto.UpdateAdminRequest{Name: "Root", Email: "root@tienda.co", Role: entity.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrForbidden, "no puede quitarse el rol")
	err = uc.Update(ctx, actor, otherRoot, dto.UpdateAdminRequest{Name: "Jefa", Email: "jefa@tienda.co"})
	assert.ErrorIs(t, err, domain.ErrForbidden, "rol vacío también degrada")

	stored, err := f.store.Admins().GetByID(ctx, otherRoot)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSuperAdmin, stored.Role)

	require.NoError(t, uc.Update(ctx, actor, rootID, dto.UpdateAdminRequest{Name: "Root R.", Email: "root@tienda.co", Role: entity.RoleSuperAdmin}))
	require.NoError(t, uc.Update(ctx, actor, opID, dto.UpdateAdminRequest{Name: "Operador", Email: "op@tienda.co", Role: entity.RoleSuperAdmin}))
	assert.Len(t, f.logs(t), 2)
}

func TestAdmin_DeleteReglas(t *testing.T) {
	f := newFixture(t)
	uc := newAdmins(f)
	ctx := context.Background()

	rootID := f.store.SeedAdmin("Root", "root@tienda.co", "h", entity.RoleSuperAdmin)
	otherRoot := f.store.SeedAdmin("Jefa", "jefa@tienda.co", "h", entity.RoleSuperAdmin)
	opID := f.store.SeedAdmin("Operador", "op@tienda.co", "h", entity.RoleAdmin)
	actor := entity.Actor{ID: rootID, Name: "Root", Role: entity.RoleSuperAdmin}

	assert.ErrorIs(t, uc.Delete(ctx, actor, rootID), domain.ErrForbidden)
	assert.ErrorIs(t, uc.Delete(ctx, actor, otherRoot), domain.ErrForbidden)
	assert.ErrorIs(t, uc.Delete(ctx, actor, 999), domain.ErrNotFound)
	require.NoError(t, uc.Delete(ctx, actor, opID))

	logs := f.logs(t)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.ActionDelete, logs[0].Action)
	assert.Equal(t, opID, *logs[0].RecordID)
}

func TestAdmin_ListSuperadminPrimeroLuegoNombre(t *testing.T) {
	f := newFixture(t)
	uc := newAdmins(f)
	f.store.SeedAdmin("carlos", "c@t.co", "h", entity.RoleAdmin)
	f.store.SeedAdmin("Zoe", "z@t.co", "h", entity.RoleSuperAdmin)
	f.store.SeedAdmin("Álvaro", "a@t.co", "h", entity.RoleAdmin)
	f.store.SeedAdmin("beatriz", "b@t.co", "h", entity.RoleAdmin)

	list, err := uc.List(context.Background())
	require.NoError(t, err)

	var names []string
	for _, a := range list {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"Zoe", "Álvaro", "beatriz", "carlos"}, names)
}

func TestAdmin_ValidacionDeRol(t *testing.T) {
	f := newFixture(t)
	_, err := newAdmins(f).Create(context.Background(), f.actor, dto.CreateAdminRequest{Name: "X", Email: "x@t.co", Password: "12345678", Role: "root"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
