package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-admin/internal/application/dto"
	"github.com/jhoicas/tienda-admin/internal/domain"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
)

type fakeImages struct {
	mu      sync.Mutex
	removed []string
}

func (f *fakeImages) Remove(url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, url)
	return nil
}

type productFixture struct {
	*fixture
	uc     *ProductUseCase
	images *fakeImages
	subID  int64
	catID  int64
}

func newProductFixture(t *testing.T) *productFixture {
	t.Helper()
	f := newFixture(t)
	ctx := context.Background()
	catID, err := f.store.Categories().Create(ctx, &entity.Category{Name: "Electronics", Description: "d", IconID: f.iconID})
	require.NoError(t, err)
	subID, err := f.store.Subcategories().Create(ctx, &entity.Subcategory{CategoryID: catID, Name: "Phones"})
	require.NoError(t, err)
	images := &fakeImages{}
	return &productFixture{
		fixture: f,
		uc:      NewProductUseCase(f.store.Products(), f.store.Subcategories(), f.store.TxRunner(), images, f.audit),
		images:  images,
		subID:   subID,
		catID:   catID,
	}
}

func (p *productFixture) request(name string) dto.ProductRequest {
	return dto.ProductRequest{
		SubcategoryID: p.subID,
		Name:          name,
		Description:   "desc",
		Cost:          decimal.NewFromInt(100),
		Price:         decimal.NewFromInt(150),
		Stock:         3,
	}
}

func TestProduct_CreateConImagenes(t *testing.T) {
	p := newProductFixture(t)
	ctx := context.Background()

	id, err := p.uc.Create(ctx, p.actor, p.request("Galaxy"),
		&dto.UploadedImage{URL: "/uploads/main.jpg"},
		[]dto.UploadedImage{{URL: "/uploads/a.jpg"}, {URL: "/uploads/b.jpg"}})
	require.NoError(t, err)

	got, err := p.uc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.IsActive)
	assert.Equal(t, "/uploads/main.jpg", got.MainImage)
	assert.Len(t, got.Images, 3)
	assert.Equal(t, "Electronics", got.CategoryName)
	assert.Equal(t, "Phones", got.SubcategoryName)

	logs := p.logs(t)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.ActionCreate, logs[0].Action)
	assert.Equal(t, entity.TableProducts, logs[0].TableName)
}

func TestProduct_CreateValidaciones(t *testing.T) {
	p := newProductFixture(t)
	ctx := context.Background()
	main := &dto.UploadedImage{URL: "/uploads/m.jpg"}

	_, err := p.uc.Create(ctx, p.actor, p.request("Sin imagen"), nil, nil)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "main_image", verr.Field)

	_, err = p.uc.Create(ctx, p.actor, p.request("Muchas"), main, make([]dto.UploadedImage, MaxAdditionalImages+1))
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "additional_images", verr.Field)

	neg := p.request("Negativo")
	neg.Price = decimal.NewFromInt(-1)
	_, err = p.uc.Create(ctx, p.actor, neg, main, nil)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "price", verr.Field)

	orphan := p.request("Huérfano")
	orphan.SubcategoryID = 999
	_, err = p.uc.Create(ctx, p.actor, orphan, main, nil)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "subcategory_id", verr.Field)
}

func TestProduct_CreateRevierteSiFallanLasImagenes(t *testing.T) {
	p := newProductFixture(t)
	p.store.SetError("Products.AddImages", errors.New("disco lleno"))

	_, err := p.uc.Create(context.Background(), p.actor, p.request("Galaxy"), &dto.UploadedImage{URL: "/uploads/m.jpg"}, nil)
	assert.ErrorIs(t, err, domain.ErrStore)

	list, err := p.uc.List(context.Background(), dto.ProductFilterRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items, "el producto no queda persistido sin sus imágenes")
	assert.Empty(t, p.logs(t))
}

func TestProduct_UpdateReemplazaImagenes(t *testing.T) {
	p := newProductFixture(t)
	ctx := context.Background()
	id, err := p.uc.Create(ctx, p.actor, p.request("Galaxy"), &dto.UploadedImage{URL: "/uploads/old.jpg"}, []dto.UploadedImage{{URL: "/uploads/old2.jpg"}})
	require.NoError(t, err)

	in := p.request("Galaxy S")
	in.Stock = 10
	require.NoError(t, p.uc.Update(ctx, p.actor, id, in, nil, nil))
	got, err := p.uc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Galaxy S", got.Name)
	assert.Equal(t, "/uploads/old.jpg", got.MainImage, "sin imagen nueva se conservan las actuales")
	assert.Empty(t, p.images.removed)

	require.NoError(t, p.uc.Update(ctx, p.actor, id, in, &dto.UploadedImage{URL: "/uploads/new.jpg"}, nil))
	got, err = p.uc.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/new.jpg", got.MainImage)
	assert.Len(t, got.Images, 1)
	assert.ElementsMatch(t, []string{"/uploads/old.jpg", "/uploads/old2.jpg"}, p.images.removed)

	assert.ErrorIs(t, p.uc.Update(ctx, p.actor, 999, in, nil, nil), domain.ErrNotFound)
}

func TestProduct_DesactivarYReactivar(t *testing.T) {
	p := newProductFixture(t)
	ctx := context.Background()
	id, err := p.uc.Create(ctx, p.actor, p.request("Galaxy"), &dto.UploadedImage{URL: "/uploads/m.jpg"}, nil)
	require.NoError(t, err)

	require.NoError(t, p.uc.Deactivate(ctx, p.actor, id))
	inactive, err := p.uc.List(ctx, dto.ProductFilterRequest{Status: entity.StatusFilterInactive})
	require.NoError(t, err)
	require.Len(t, inactive.Items, 1)
	assert.Equal(t, int64(1), inactive.Page.Total)

	require.NoError(t, p.uc.Reactivate(ctx, p.actor, id))
	assert.ErrorIs(t, p.uc.Deactivate(ctx, p.actor, 999), domain.ErrNotFound)

	logs := p.logs(t)
	require.Len(t, logs, 3)
	assert.Equal(t, entity.ActionDeactivate, logs[1].Action)
	assert.Equal(t, entity.ActionReactivate, logs[2].Action)
	assert.Equal(t, id, *logs[2].RecordID)
}

func TestProduct_ListFiltros(t *testing.T) {
	p := newProductFixture(t)
	ctx := context.Background()
	main := &dto.UploadedImage{URL: "/uploads/m.jpg"}

	low := p.request("Cargador")
	low.Stock = 2
	out := p.request("Funda")
	out.Stock = 0
	many := p.request("Cable USB")
	many.Stock = 50
	for _, in := range []dto.ProductRequest{low, out, many} {
		_, err := p.uc.Create(ctx, p.actor, in, main, nil)
		require.NoError(t, err)
	}

	res, err := p.uc.List(ctx, dto.ProductFilterRequest{Stock: entity.StockFilterLow})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Cargador", res.Items[0].Name)

	res, err = p.uc.List(ctx, dto.ProductFilterRequest{Stock: entity.StockFilterOut})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Funda", res.Items[0].Name)

	res, err = p.uc.List(ctx, dto.ProductFilterRequest{Search: "usb", CategoryID: p.catID})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Cable USB", res.Items[0].Name)

	res, err = p.uc.List(ctx, dto.ProductFilterRequest{PageRequest: dto.PageRequest{Limit: 2}})
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, int64(3), res.Page.Total)

	_, err = p.uc.List(ctx, dto.ProductFilterRequest{Stock: "mucho"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
