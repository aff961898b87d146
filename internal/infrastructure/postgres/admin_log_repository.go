package postgres

import (
	"context"

	"github.com/jhoicas/tienda-admin/internal/domain/entity"
	"github.com/jhoicas/tienda-admin/internal/domain/repository"
)

var _ repository.AdminLogRepository = (*AdminLogRepo)(nil)

// AdminLogRepo almacenamiento append-only de admin_logs.
type AdminLogRepo struct {
	q Querier
}

func NewAdminLogRepository(q Querier) *AdminLogRepo {
	return &AdminLogRepo{q: q}
}

// Insert agrega una entrada. admin_id no tiene FK: el historial sobrevive al borrado del administrador.
func (r *AdminLogRepo) Insert(ctx context.Context, e *entity.AdminLogEntry) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO admin_logs (admin_id, admin_name, action, table_name, record_id, message)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`,
		e.AdminID, e.AdminName, e.Action, e.TableName, e.RecordID, e.Message,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return storeErr("insert admin log", err)
	}
	return nil
}

// List más recientes primero, con el total.
func (r *AdminLogRepo) List(ctx context.Context, limit, offset int) ([]*entity.AdminLogEntry, int64, error) {
	var total int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM admin_logs`).Scan(&total); err != nil {
		return nil, 0, storeErr("count admin logs", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, admin_id, admin_name, action, table_name, record_id, message, created_at
		FROM admin_logs ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, storeErr("list admin logs", err)
	}
	defer rows.Close()
	var list []*entity.AdminLogEntry
	for rows.Next() {
		var e entity.AdminLogEntry
		if err := rows.Scan(&e.ID, &e.AdminID, &e.AdminName, &e.Action, &e.TableName, &e.RecordID, &e.Message, &e.CreatedAt); err != nil {
			return nil, 0, storeErr("scan admin log", err)
		}
		list = append(list, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storeErr("list admin logs", err)
	}
	return list, total, nil
}
