package catalog

import (
	"context"
	"fmt"

	"github.com/jhoicas/tienda-admin/internal/domain"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
	"github.com/jhoicas/tienda-admin/internal/domain/repository"
)

// ShippingChecker reglas para opciones de envío.
type ShippingChecker struct {
	repo repository.ShippingRepository
}

// NewShippingChecker construye las reglas de opciones de envío sobre el repositorio dado.
func NewShippingChecker(repo repository.ShippingRepository) *ShippingChecker {
	return &ShippingChecker{repo: repo}
}

// CanCreate rechaza nombres repetidos sin distinguir mayúsculas ("Bogotá" == "BOGOTÁ").
func (s *ShippingChecker) CanCreate(ctx context.Context, name string) (Verdict, error) {
	return s.CanRename(ctx, 0, name)
}

// CanRename rechaza si otra opción (id distinto) ya usa el nombre.
func (s *ShippingChecker) CanRename(ctx context.Context, id int64, name string) (Verdict, error) {
	existing, err := s.repo.FindByNameFold(ctx, name)
	if err != nil {
		return Verdict{}, fmt.Errorf("buscar opción de envío: %w", err)
	}
	if existing != nil && existing.ID != id {
		return Reject(&domain.DuplicateNameError{Entity: entity.TableShippingOptions, Name: name}), nil
	}
	return Allow(), nil
}

// CanDelete rechaza si algún pedido usa la opción.
func (s *ShippingChecker) CanDelete(ctx context.Context, id int64) (Verdict, error) {
	orders, err := s.repo.CountOrders(ctx, id)
	if err != nil {
		return Verdict{}, fmt.Errorf("contar pedidos: %w", err)
	}
	if orders > 0 {
		return Reject(&domain.HasDependentsError{
			Entity: entity.TableShippingOptions, ID: id, Dependency: domain.DependencyOrders, Count: orders,
		}), nil
	}
	return Allow(), nil
}
