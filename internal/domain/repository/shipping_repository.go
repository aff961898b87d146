package repository

import (
	"context"

	"github.com/jhoicas/tienda-admin/internal/domain/entity"
)

// ShippingRepository define el puerto de persistencia para ShippingOption.
type ShippingRepository interface {
	List(ctx context.Context) ([]*entity.ShippingOption, error)
	GetByID(ctx context.Context, id int64) (*entity.ShippingOption, error)
	// FindByNameFold coincidencia sin distinguir mayúsculas.
	FindByNameFold(ctx context.Context, name string) (*entity.ShippingOption, error)
	Create(ctx context.Context, opt *entity.ShippingOption) (int64, error)
	Update(ctx context.Context, opt *entity.ShippingOption) error
	Delete(ctx context.Context, id int64) error
	// CountOrders pedidos que referencian la opción de envío.
	CountOrders(ctx context.Context, id int64) (int64, error)
}
