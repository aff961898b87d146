package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-admin/internal/domain"
	"github.com/jhoicas/tienda-admin/internal/domain/catalog"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
	"github.com/jhoicas/tienda-admin/internal/domain/repository/mocks"
)

type hierarchyFixture struct {
	store   *mocks.Store
	checker *catalog.HierarchyChecker
	iconID  int64
}

func newHierarchyFixture(t *testing.T) *hierarchyFixture {
	t.Helper()
	store := mocks.NewStore()
	return &hierarchyFixture{
		store:   store,
		checker: catalog.NewHierarchyChecker(store.Categories(), store.Subcategories()),
		iconID:  store.SeedIcon("tecnologia", "fa-laptop"),
	}
}

func (f *hierarchyFixture) category(t *testing.T, name string) int64 {
	t.Helper()
	id, err := f.store.Categories().Create(context.Background(), &entity.Category{Name: name, Description: "d", IconID: f.iconID})
	require.NoError(t, err)
	return id
}

func (f *hierarchyFixture) subcategory(t *testing.T, categoryID int64, name string) int64 {
	t.Helper()
	id, err := f.store.Subcategories().Create(context.Background(), &entity.Subcategory{CategoryID: categoryID, Name: name})
	require.NoError(t, err)
	return id
}

func TestCanCreateCategory_NombreDuplicadoExacto(t *testing.T) {
	f := newHierarchyFixture(t)
	f.category(t, "Electronics")
	ctx := context.Background()

	v, err := f.checker.CanCreateCategory(ctx, "Electronics")
	require.NoError(t, err)
	assert.False(t, v.Allowed())
	assert.ErrorIs(t, v.Err(), domain.ErrDuplicate)

	// la coincidencia es exacta: otra capitalización se permite
	v, err = f.checker.CanCreateCategory(ctx, "electronics")
	require.NoError(t, err)
	assert.True(t, v.Allowed())
}

func TestCanRenameCategory_ExcluyeLaMisma(t *testing.T) {
	f := newHierarchyFixture(t)
	a := f.category(t, "A")
	b := f.category(t, "B")
	ctx := context.Background()

	v, err := f.checker.CanRenameCategory(ctx, a, "A")
	require.NoError(t, err)
	assert.True(t, v.Allowed(), "renombrar a su propio nombre está permitido")

	v, err = f.checker.CanRenameCategory(ctx, b, "A")
	require.NoError(t, err)
	assert.ErrorIs(t, v.Err(), domain.ErrDuplicate)
}

func TestCanCreateSubcategory_UnicidadPorPadre(t *testing.T) {
	f := newHierarchyFixture(t)
	n := f.category(t, "Electronics")
	m := f.category(t, "Hogar")
	f.subcategory(t, n, "Phones")
	ctx := context.Background()

	v, err := f.checker.CanCreateSubcategory(ctx, n, "Phones")
	require.NoError(t, err)
	assert.ErrorIs(t, v.Err(), domain.ErrDuplicate)

	v, err = f.checker.CanCreateSubcategory(ctx, m, "Phones")
	require.NoError(t, err)
	assert.True(t, v.Allowed(), "el mismo nombre bajo otra categoría es válido")
}

func TestCanRenameSubcategory(t *testing.T) {
	f := newHierarchyFixture(t)
	p := f.category(t, "P")
	q := f.category(t, "Q")
	s := f.subcategory(t, p, "Uno")
	f.subcategory(t, p, "Dos")
	f.subcategory(t, q, "Tres")
	ctx := context.Background()

	v, err := f.checker.CanRenameSubcategory(ctx, s, "Dos")
	require.NoError(t, err)
	assert.ErrorIs(t, v.Err(), domain.ErrDuplicate, "un hermano ya usa el nombre")

	v, err = f.checker.CanRenameSubcategory(ctx, s, "Tres")
	require.NoError(t, err)
	assert.True(t, v.Allowed(), "el nombre existe solo bajo otro padre")

	v, err = f.checker.CanRenameSubcategory(ctx, 999, "X")
	require.NoError(t, err)
	assert.ErrorIs(t, v.Err(), domain.ErrNotFound)
}

func TestCanDeleteCategory_ProductosTienenPrioridad(t *testing.T) {
	f := newHierarchyFixture(t)
	ctx := context.Background()

	empty := f.category(t, "Vacía")
	v, err := f.checker.CanDeleteCategory(ctx, empty)
	require.NoError(t, err)
	assert.True(t, v.Allowed())

	withSub := f.category(t, "ConSub")
	f.subcategory(t, withSub, "S")
	v, err = f.checker.CanDeleteCategory(ctx, withSub)
	require.NoError(t, err)
	var dep *domain.HasDependentsError
	require.ErrorAs(t, v.Err(), &dep)
	assert.Equal(t, domain.DependencySubcategories, dep.Dependency)

	withProducts := f.category(t, "ConProductos")
	sub := f.subcategory(t, withProducts, "Phones")
	f.store.SeedProduct(sub, "Teléfono", 3)
	v, err = f.checker.CanDeleteCategory(ctx, withProducts)
	require.NoError(t, err)
	require.ErrorAs(t, v.Err(), &dep)
	assert.Equal(t, domain.DependencyProducts, dep.Dependency)
	assert.Equal(t, int64(1), dep.Count)
}

func TestCanDeleteSubcategory(t *testing.T) {
	f := newHierarchyFixture(t)
	ctx := context.Background()
	c := f.category(t, "C")
	free := f.subcategory(t, c, "Libre")
	used := f.subcategory(t, c, "Usada")
	f.store.SeedProduct(used, "x", 1)

	v, err := f.checker.CanDeleteSubcategory(ctx, free)
	require.NoError(t, err)
	assert.True(t, v.Allowed())

	v, err = f.checker.CanDeleteSubcategory(ctx, used)
	require.NoError(t, err)
	assert.ErrorIs(t, v.Err(), domain.ErrHasDependents)
}

func TestChecker_FalloDelStoreNoEsVeredicto(t *testing.T) {
	f := newHierarchyFixture(t)
	boom := errors.New("conexión perdida")
	f.store.SetError("Categories.FindByName", boom)

	_, err := f.checker.CanCreateCategory(context.Background(), "X")
	assert.ErrorIs(t, err, boom)
}
