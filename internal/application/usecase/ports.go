package usecase

import (
	"context"

	"github.com/jhoicas/tienda-admin/internal/domain/repository"
)

// ProductTxRunner ejecuta fn dentro de una transacción, con el repositorio de productos atado a ella.
type ProductTxRunner interface {
	RunProducts(ctx context.Context, fn func(products repository.ProductRepository) error) error
}

// ImageStore archivos de imágenes de productos ya subidos.
type ImageStore interface {
	Remove(url string) error
}
