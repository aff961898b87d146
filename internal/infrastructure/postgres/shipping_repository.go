package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-admin/internal/domain"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
	"github.com/jhoicas/tienda-admin/internal/domain/repository"
)

var _ repository.ShippingRepository = (*ShippingRepo)(nil)

// ShippingRepo implementación del puerto ShippingRepository sobre PostgreSQL.
type ShippingRepo struct {
	q Querier
}

// NewShippingRepository construye el adaptador de persistencia para opciones de envío.
func NewShippingRepository(q Querier) *ShippingRepo {
	return &ShippingRepo{q: q}
}

func (r *ShippingRepo) List(ctx context.Context) ([]*entity.ShippingOption, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, price, created_at FROM shipping_options ORDER BY name`)
	if err != nil {
		return nil, storeErr("list shipping options", err)
	}
	defer rows.Close()
	var list []*entity.ShippingOption
	for rows.Next() {
		var o entity.ShippingOption
		if err := rows.Scan(&o.ID, &o.Name, &o.Price, &o.CreatedAt); err != nil {
			return nil, storeErr("scan shipping option", err)
		}
		list = append(list, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list shipping options", err)
	}
	return list, nil
}

func (r *ShippingRepo) GetByID(ctx context.Context, id int64) (*entity.ShippingOption, error) {
	return r.scanOne(ctx, "get shipping option", `WHERE id = $1`, id)
}

// FindByNameFold coincidencia sin distinguir mayúsculas, igual que el índice único LOWER(name).
func (r *ShippingRepo) FindByNameFold(ctx context.Context, name string) (*entity.ShippingOption, error) {
	return r.scanOne(ctx, "find shipping option", `WHERE LOWER(name) = LOWER($1)`, name)
}

func (r *ShippingRepo) scanOne(ctx context.Context, op, where string, arg any) (*entity.ShippingOption, error) {
	var o entity.ShippingOption
	err := r.q.QueryRow(ctx, `SELECT id, name, price, created_at FROM shipping_options `+where, arg).
		Scan(&o.ID, &o.Name, &o.Price, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr(op, err)
	}
	return &o, nil
}

func (r *ShippingRepo) Create(ctx context.Context, opt *entity.ShippingOption) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx, `INSERT INTO shipping_options (name, price) VALUES ($1, $2) RETURNING id`,
		opt.Name, opt.Price).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, &domain.DuplicateNameError{Entity: entity.TableShippingOptions, Name: opt.Name}
		}
		return 0, storeErr("insert shipping option", err)
	}
	return id, nil
}

func (r *ShippingRepo) Update(ctx context.Context, opt *entity.ShippingOption) error {
	tag, err := r.q.Exec(ctx, `UPDATE shipping_options SET name = $2, price = $3 WHERE id = $1`,
		opt.ID, opt.Name, opt.Price)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateNameError{Entity: entity.TableShippingOptions, Name: opt.Name}
		}
		return storeErr("update shipping option", err)
	}
	return notFoundIfNone(tag, entity.TableShippingOptions, opt.ID)
}

func (r *ShippingRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM shipping_options WHERE id = $1`, id)
	if err != nil {
		return storeErr("delete shipping option", err)
	}
	return notFoundIfNone(tag, entity.TableShippingOptions, id)
}

// CountOrders pedidos cuyo shipping_city_id apunta a la opción.
func (r *ShippingRepo) CountOrders(ctx context.Context, id int64) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE shipping_city_id = $1`, id).Scan(&n); err != nil {
		return 0, storeErr("count shipping orders", err)
	}
	return n, nil
}
