package catalog

import (
	"context"
	"fmt"

	"github.com/jhoicas/tienda-admin/internal/domain"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
	"github.com/jhoicas/tienda-admin/internal/domain/repository"
)

// AdminChecker reglas para la gestión de administradores.
type AdminChecker struct {
	repo repository.AdminRepository
}

// NewAdminChecker construye las reglas de administradores sobre el repositorio dado.
func NewAdminChecker(repo repository.AdminRepository) *AdminChecker {
	return &AdminChecker{repo: repo}
}

// CanUseEmail rechaza si otro administrador (id distinto) ya tiene el email. id 0 para altas.
func (a *AdminChecker) CanUseEmail(ctx context.Context, id int64, email string) (Verdict, error) {
	existing, err := a.repo.GetByEmail(ctx, email)
	if err != nil {
		return Verdict{}, fmt.Errorf("buscar administrador por email: %w", err)
	}
	if existing != nil && existing.ID != id {
		return Reject(&domain.DuplicateNameError{Entity: entity.TableAdmins, Name: email}), nil
	}
	return Allow(), nil
}

// CanDelete prohíbe eliminar la propia cuenta y eliminar un superadmin.
func (a *AdminChecker) CanDelete(actor entity.Actor, target *entity.Admin) Verdict {
	if actor.ID == target.ID {
		return Reject(&domain.ForbiddenError{Message: "no puedes eliminar tu propia cuenta"})
	}
	if target.IsSuperAdmin() {
		return Reject(&domain.ForbiddenError{Message: "no se puede eliminar un superadmin"})
	}
	return Allow()
}

// CanChangeRole impide quitar el rol superadmin: ni a la propia cuenta ni a otro superadmin.
func (a *AdminChecker) CanChangeRole(actor entity.Actor, target *entity.Admin, role string) Verdict {
	if !target.IsSuperAdmin() || role == entity.RoleSuperAdmin {
		return Allow()
	}
	if actor.ID == target.ID {
		return Reject(&domain.ForbiddenError{Message: "no puedes quitarte el rol superadmin"})
	}
	return Reject(&domain.ForbiddenError{Message: "no se puede quitar el rol a otro superadmin"})
}
