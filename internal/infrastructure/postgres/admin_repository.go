package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-admin/internal/domain"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
	"github.com/jhoicas/tienda-admin/internal/domain/repository"
)

var _ repository.AdminRepository = (*AdminRepo)(nil)

// AdminRepo implementación del puerto AdminRepository sobre PostgreSQL.
type AdminRepo struct {
	q Querier
}

// NewAdminRepository construye el adaptador de persistencia para administradores.
func NewAdminRepository(q Querier) *AdminRepo {
	return &AdminRepo{q: q}
}

const adminSelect = `SELECT id, name, email, password, role, created_at FROM admins`

func scanAdmin(row pgx.Row) (*entity.Admin, error) {
	var a entity.Admin
	if err := row.Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// List administradores, más recientes primero. El orden de presentación lo decide el caso de uso.
func (r *AdminRepo) List(ctx context.Context) ([]*entity.Admin, error) {
	rows, err := r.q.Query(ctx, adminSelect+` ORDER BY created_at DESC`)
	if err != nil {
		return nil, storeErr("list admins", err)
	}
	defer rows.Close()
	var list []*entity.Admin
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, storeErr("scan admin", err)
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list admins", err)
	}
	return list, nil
}

// GetByID obtiene un administrador por ID.
func (r *AdminRepo) GetByID(ctx context.Context, id int64) (*entity.Admin, error) {
	a, err := scanAdmin(r.q.QueryRow(ctx, adminSelect+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get admin", err)
	}
	return a, nil
}

// GetByEmail obtiene un administrador por email (ya normalizado a minúsculas).
func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	a, err := scanAdmin(r.q.QueryRow(ctx, adminSelect+` WHERE email = $1`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get admin by email", err)
	}
	return a, nil
}

// Create persiste un nuevo administrador.
func (r *AdminRepo) Create(ctx context.Context, admin *entity.Admin) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx,
		`INSERT INTO admins (name, email, password, role) VALUES ($1, $2, $3, $4) RETURNING id`,
		admin.Name, admin.Email, admin.PasswordHash, admin.Role,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, &domain.DuplicateNameError{Entity: entity.TableAdmins, Name: admin.Email}
		}
		return 0, storeErr("insert admin", err)
	}
	return id, nil
}

// Update persiste nombre, email y rol; la contraseña solo si viene un hash nuevo.
func (r *AdminRepo) Update(ctx context.Context, admin *entity.Admin) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE admins SET name = $2, email = $3, role = $4,
		       password = COALESCE(NULLIF($5, ''), password)
		WHERE id = $1`,
		admin.ID, admin.Name, admin.Email, admin.Role, admin.PasswordHash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateNameError{Entity: entity.TableAdmins, Name: admin.Email}
		}
		return storeErr("update admin", err)
	}
	return notFoundIfNone(tag, entity.TableAdmins, admin.ID)
}

// Delete elimina el administrador. Sus entradas en admin_logs conservan el nombre copiado.
func (r *AdminRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return storeErr("delete admin", err)
	}
	return notFoundIfNone(tag, entity.TableAdmins, id)
}
