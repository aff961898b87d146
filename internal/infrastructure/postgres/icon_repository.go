package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-admin/internal/domain/entity"
	"github.com/jhoicas/tienda-admin/internal/domain/repository"
)

var _ repository.IconRepository = (*IconRepo)(nil)

// IconRepo lectura de icon_options.
type IconRepo struct {
	q Querier
}

func NewIconRepository(q Querier) *IconRepo {
	return &IconRepo{q: q}
}

func (r *IconRepo) List(ctx context.Context) ([]*entity.Icon, error) {
	rows, err := r.q.Query(ctx, `SELECT id, category, icon_class FROM icon_options ORDER BY category, id`)
	if err != nil {
		return nil, storeErr("list icons", err)
	}
	defer rows.Close()
	var list []*entity.Icon
	for rows.Next() {
		var i entity.Icon
		if err := rows.Scan(&i.ID, &i.Category, &i.Class); err != nil {
			return nil, storeErr("scan icon", err)
		}
		list = append(list, &i)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list icons", err)
	}
	return list, nil
}

func (r *IconRepo) GetByID(ctx context.Context, id int64) (*entity.Icon, error) {
	var i entity.Icon
	err := r.q.QueryRow(ctx, `SELECT id, category, icon_class FROM icon_options WHERE id = $1`, id).
		Scan(&i.ID, &i.Category, &i.Class)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get icon", err)
	}
	return &i, nil
}
