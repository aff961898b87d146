package repository

import (
	"context"

	"github.com/jhoicas/tienda-admin/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	// List listado paginado con filtros; devuelve también el total sin paginar.
	List(ctx context.Context, filter entity.ProductFilter) ([]*entity.ProductDetail, int64, error)
	GetDetail(ctx context.Context, id int64) (*entity.ProductDetail, error)
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	Create(ctx context.Context, product *entity.Product) (int64, error)
	Update(ctx context.Context, product *entity.Product) error
	SetActive(ctx context.Context, id int64, active bool) error
	ListImages(ctx context.Context, productID int64) ([]*entity.ProductImage, error)
	// AddImages agrega imágenes al producto; la primera con IsMain=true pasa a ser la principal.
	AddImages(ctx context.Context, productID int64, images []entity.ProductImage) error
	// ReplaceImages reemplaza todas las imágenes y devuelve las URL anteriores.
	ReplaceImages(ctx context.Context, productID int64, images []entity.ProductImage) ([]string, error)
}
