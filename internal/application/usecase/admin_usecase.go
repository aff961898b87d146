package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/tienda-admin/internal/application/audit"
	"github.com/jhoicas/tienda-admin/internal/application/dto"
	"github.com/jhoicas/tienda-admin/internal/application/validation"
	"github.com/jhoicas/tienda-admin/internal/domain"
	"github.com/jhoicas/tienda-admin/internal/domain/catalog"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
	"github.com/jhoicas/tienda-admin/internal/domain/repository"
)

// AdminUseCase gestión de administradores del panel. Solo superadmin accede a estas rutas.
type AdminUseCase struct {
	repo       repository.AdminRepository
	checker    *catalog.AdminChecker
	audit      audit.Recorder
	bcryptCost int
}

// NewAdminUseCase construye el caso de uso.
func NewAdminUseCase(repo repository.AdminRepository, recorder audit.Recorder) *AdminUseCase {
	return &AdminUseCase{
		repo:       repo,
		checker:    catalog.NewAdminChecker(repo),
		audit:      recorder,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// WithBcryptCost ajusta el costo de bcrypt (los tests usan bcrypt.MinCost).
func (uc *AdminUseCase) WithBcryptCost(cost int) *AdminUseCase {
	uc.bcryptCost = cost
	return uc
}

// List superadmins primero y luego por nombre (orden alfabético español, sin distinguir mayúsculas).
func (uc *AdminUseCase) List(ctx context.Context) ([]dto.AdminResponse, error) {
	admins, err := uc.repo.List(ctx)
	if err != nil {
		return nil, domain.AsStoreError("listar administradores", err)
	}
	col := collate.New(language.Spanish, collate.IgnoreCase, collate.IgnoreDiacritics)
	sort.SliceStable(admins, func(i, j int) bool {
		si, sj := admins[i].IsSuperAdmin(), admins[j].IsSuperAdmin()
		if si != sj {
			return si
		}
		return col.CompareString(admins[i].Name, admins[j].Name) < 0
	})
	out := make([]dto.AdminResponse, 0, len(admins))
	for _, a := range admins {
		out = append(out, toAdminResponse(a))
	}
	return out, nil
}

// GetByID obtiene un administrador.
func (uc *AdminUseCase) GetByID(ctx context.Context, id int64) (*dto.AdminResponse, error) {
	a, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.AsStoreError("obtener administrador", err)
	}
	if a == nil {
		return nil, &domain.NotFoundError{Entity: entity.TableAdmins, ID: id}
	}
	resp := toAdminResponse(a)
	return &resp, nil
}

// Create crea un administrador. Rol por defecto admin; el email se guarda en minúsculas.
func (uc *AdminUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateAdminRequest) (int64, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Role == "" {
		in.Role = entity.RoleAdmin
	}
	if err := validation.Struct(in); err != nil {
		return 0, err
	}

	v, err := uc.checker.CanUseEmail(ctx, 0, in.Email)
	if err != nil {
		return 0, domain.AsStoreError("verificar email", err)
	}
	if !v.Allowed() {
		return 0, v.Err()
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.bcryptCost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	id, err := uc.repo.Create(ctx, &entity.Admin{Name: in.Name, Email: in.Email, PasswordHash: string(hash), Role: in.Role})
	if err != nil {
		return 0, domain.AsStoreError("crear administrador", err)
	}

	uc.audit.Record(audit.Entry(actor, entity.ActionCreate, entity.TableAdmins, id,
		fmt.Sprintf("Creó el administrador: %s (%s)", in.Name, in.Role)))
	return id, nil
}

// Update edita nombre, email y rol. La contraseña solo cambia si viene informada;
// rol vacío equivale a admin, igual que en el alta.
func (uc *AdminUseCase) Update(ctx context.Context, actor entity.Actor, id int64, in dto.UpdateAdminRequest) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Role == "" {
		in.Role = entity.RoleAdmin
	}
	if err := validation.Required("id", id); err != nil {
		return err
	}
	if err := validation.Struct(in); err != nil {
		return err
	}

	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return domain.AsStoreError("obtener administrador", err)
	}
	if current == nil {
		return &domain.NotFoundError{Entity: entity.TableAdmins, ID: id}
	}
	if v := uc.checker.CanChangeRole(actor, current, in.Role); !v.Allowed() {
		return v.Err()
	}

	v, err := uc.checker.CanUseEmail(ctx, id, in.Email)
	if err != nil {
		return domain.AsStoreError("verificar email", err)
	}
	if !v.Allowed() {
		return v.Err()
	}

	updated := &entity.Admin{ID: id, Name: in.Name, Email: in.Email, Role: in.Role}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.bcryptCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		updated.PasswordHash = string(hash)
	}
	if err := uc.repo.Update(ctx, updated); err != nil {
		return domain.AsStoreError("actualizar administrador", err)
	}

	uc.audit.Record(audit.Entry(actor, entity.ActionUpdate, entity.TableAdmins, id,
		fmt.Sprintf("Editó el administrador: %s", in.Name)))
	return nil
}

// Delete elimina un administrador. No se permite eliminar la propia cuenta ni un superadmin.
func (uc *AdminUseCase) Delete(ctx context.Context, actor entity.Actor, id int64) error {
	if err := validation.Required("id", id); err != nil {
		return err
	}
	target, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return domain.AsStoreError("obtener administrador", err)
	}
	if target == nil {
		return &domain.NotFoundError{Entity: entity.TableAdmins, ID: id}
	}
	if v := uc.checker.CanDelete(actor, target); !v.Allowed() {
		return v.Err()
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return domain.AsStoreError("eliminar administrador", err)
	}

	uc.audit.Record(audit.Entry(actor, entity.ActionDelete, entity.TableAdmins, id,
		fmt.Sprintf("Eliminó el administrador: %s", target.Name)))
	return nil
}

func toAdminResponse(a *entity.Admin) dto.AdminResponse {
	return dto.AdminResponse{ID: a.ID, Name: a.Name, Email: a.Email, Role: a.Role, CreatedAt: a.CreatedAt}
}
