package repository

import (
	"context"

	"github.com/jhoicas/tienda-admin/internal/domain/entity"
)

// AdminRepository define el puerto de persistencia para Admin (DIP).
type AdminRepository interface {
	List(ctx context.Context) ([]*entity.Admin, error)
	GetByID(ctx context.Context, id int64) (*entity.Admin, error)
	GetByEmail(ctx context.Context, email string) (*entity.Admin, error)
	Create(ctx context.Context, admin *entity.Admin) (int64, error)
	// Update persiste nombre, email y rol; si PasswordHash no está vacío también la contraseña.
	Update(ctx context.Context, admin *entity.Admin) error
	Delete(ctx context.Context, id int64) error
}
