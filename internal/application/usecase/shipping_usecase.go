package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/tienda-admin/internal/application/audit"
	"github.com/jhoicas/tienda-admin/internal/application/dto"
	"github.com/jhoicas/tienda-admin/internal/application/validation"
	"github.com/jhoicas/tienda-admin/internal/domain"
	"github.com/jhoicas/tienda-admin/internal/domain/catalog"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
	"github.com/jhoicas/tienda-admin/internal/domain/repository"
)

// ShippingUseCase administración de opciones de envío (ciudades con tarifa).
type ShippingUseCase struct {
	repo    repository.ShippingRepository
	checker *catalog.ShippingChecker
	audit   audit.Recorder
}

// NewShippingUseCase construye el caso de uso.
func NewShippingUseCase(repo repository.ShippingRepository, recorder audit.Recorder) *ShippingUseCase {
	return &ShippingUseCase{repo: repo, checker: catalog.NewShippingChecker(repo), audit: recorder}
}

// List opciones ordenadas por nombre.
func (uc *ShippingUseCase) List(ctx context.Context) ([]dto.ShippingOptionResponse, error) {
	opts, err := uc.repo.List(ctx)
	if err != nil {
		return nil, domain.AsStoreError("listar opciones de envío", err)
	}
	out := make([]dto.ShippingOptionResponse, 0, len(opts))
	for _, o := range opts {
		out = append(out, toShippingResponse(o))
	}
	return out, nil
}

// Create crea una opción de envío. El nombre es único sin distinguir mayúsculas.
func (uc *ShippingUseCase) Create(ctx context.Context, actor entity.Actor, in dto.ShippingOptionRequest) (int64, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateShipping(in); err != nil {
		return 0, err
	}

	v, err := uc.checker.CanCreate(ctx, in.Name)
	if err != nil {
		return 0, domain.AsStoreError("verificar opción de envío", err)
	}
	if !v.Allowed() {
		return 0, v.Err()
	}

	id, err := uc.repo.Create(ctx, &entity.ShippingOption{Name: in.Name, Price: in.Price})
	if err != nil {
		return 0, domain.AsStoreError("crear opción de envío", err)
	}

	uc.audit.Record(audit.Entry(actor, entity.ActionCreate, entity.TableShippingOptions, id,
		fmt.Sprintf("Agregó la ciudad de envío: %s (%s)", in.Name, in.Price.StringFixed(0))))
	return id, nil
}

// Update cambia nombre y tarifa.
func (uc *ShippingUseCase) Update(ctx context.Context, actor entity.Actor, id int64, in dto.ShippingOptionRequest) error {
	in.Name = strings.TrimSpace(in.Name)
	if err := validation.Required("id", id); err != nil {
		return err
	}
	if err := validateShipping(in); err != nil {
		return err
	}

	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return domain.AsStoreError("obtener opción de envío", err)
	}
	if current == nil {
		return &domain.NotFoundError{Entity: entity.TableShippingOptions, ID: id}
	}

	v, err := uc.checker.CanRename(ctx, id, in.Name)
	if err != nil {
		return domain.AsStoreError("verificar opción de envío", err)
	}
	if !v.Allowed() {
		return v.Err()
	}

	if err := uc.repo.Update(ctx, &entity.ShippingOption{ID: id, Name: in.Name, Price: in.Price}); err != nil {
		return domain.AsStoreError("actualizar opción de envío", err)
	}

	uc.audit.Record(audit.Entry(actor, entity.ActionUpdate, entity.TableShippingOptions, id,
		fmt.Sprintf("Editó la ciudad de envío: %s", in.Name)))
	return nil
}

// Delete elimina una opción que ningún pedido usa.
func (uc *ShippingUseCase) Delete(ctx context.Context, actor entity.Actor, id int64) error {
	if err := validation.Required("id", id); err != nil {
		return err
	}
	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return domain.AsStoreError("obtener opción de envío", err)
	}
	if current == nil {
		return &domain.NotFoundError{Entity: entity.TableShippingOptions, ID: id}
	}

	v, err := uc.checker.CanDelete(ctx, id)
	if err != nil {
		return domain.AsStoreError("verificar pedidos de la opción de envío", err)
	}
	if !v.Allowed() {
		return v.Err()
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return domain.AsStoreError("eliminar opción de envío", err)
	}

	uc.audit.Record(audit.Entry(actor, entity.ActionDelete, entity.TableShippingOptions, id,
		fmt.Sprintf("Eliminó la ciudad de envío: %s", current.Name)))
	return nil
}

func validateShipping(in dto.ShippingOptionRequest) error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	return validation.NonNegative("price", in.Price)
}

func toShippingResponse(o *entity.ShippingOption) dto.ShippingOptionResponse {
	return dto.ShippingOptionResponse{ID: o.ID, Name: o.Name, Price: o.Price, CreatedAt: o.CreatedAt}
}
