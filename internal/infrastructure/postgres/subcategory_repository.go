package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-admin/internal/domain"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
	"github.com/jhoicas/tienda-admin/internal/domain/repository"
)

var _ repository.SubcategoryRepository = (*SubcategoryRepo)(nil)

// SubcategoryRepo implementación del puerto SubcategoryRepository sobre PostgreSQL.
type SubcategoryRepo struct {
	q Querier
}

// NewSubcategoryRepository construye el adaptador de persistencia para subcategorías.
func NewSubcategoryRepository(q Querier) *SubcategoryRepo {
	return &SubcategoryRepo{q: q}
}

// List subcategorías con conteo de productos; si categoryID no es nil solo las de esa categoría.
func (r *SubcategoryRepo) List(ctx context.Context, categoryID *int64) ([]*entity.SubcategoryView, error) {
	query := `
		SELECT sc.id, sc.category_id, sc.sub_category, c.main_category, COUNT(p.id)
		FROM sub_categories sc
		JOIN categories c ON sc.category_id = c.id
		LEFT JOIN products p ON p.subcategory_id = sc.id
		WHERE ($1::bigint IS NULL OR sc.category_id = $1)
		GROUP BY sc.id, sc.category_id, sc.sub_category, c.main_category
		ORDER BY sc.id`
	rows, err := r.q.Query(ctx, query, categoryID)
	if err != nil {
		return nil, storeErr("list subcategories", err)
	}
	defer rows.Close()
	var list []*entity.SubcategoryView
	for rows.Next() {
		var v entity.SubcategoryView
		if err := rows.Scan(&v.ID, &v.CategoryID, &v.Name, &v.CategoryName, &v.ProductCount); err != nil {
			return nil, storeErr("scan subcategory", err)
		}
		list = append(list, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list subcategories", err)
	}
	return list, nil
}

// ListByCategoryName subcategorías de la categoría con ese nombre exacto, por nombre.
func (r *SubcategoryRepo) ListByCategoryName(ctx context.Context, categoryName string) ([]*entity.Subcategory, error) {
	rows, err := r.q.Query(ctx, `
		SELECT sc.id, sc.category_id, sc.sub_category
		FROM sub_categories sc
		JOIN categories c ON sc.category_id = c.id
		WHERE c.main_category = $1
		ORDER BY sc.sub_category`, categoryName)
	if err != nil {
		return nil, storeErr("list subcategories by category", err)
	}
	defer rows.Close()
	var list []*entity.Subcategory
	for rows.Next() {
		var s entity.Subcategory
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Name); err != nil {
			return nil, storeErr("scan subcategory", err)
		}
		list = append(list, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list subcategories by category", err)
	}
	return list, nil
}

// GetByID obtiene una subcategoría por ID.
func (r *SubcategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Subcategory, error) {
	return r.scanOne(ctx, "get subcategory",
		`SELECT id, category_id, sub_category FROM sub_categories WHERE id = $1`, id)
}

// FindByName coincidencia exacta dentro de la categoría padre.
func (r *SubcategoryRepo) FindByName(ctx context.Context, categoryID int64, name string) (*entity.Subcategory, error) {
	return r.scanOne(ctx, "find subcategory by name",
		`SELECT id, category_id, sub_category FROM sub_categories WHERE category_id = $1 AND sub_category = $2`,
		categoryID, name)
}

func (r *SubcategoryRepo) scanOne(ctx context.Context, op, query string, args ...any) (*entity.Subcategory, error) {
	var s entity.Subcategory
	if err := r.q.QueryRow(ctx, query, args...).Scan(&s.ID, &s.CategoryID, &s.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr(op, err)
	}
	return &s, nil
}

// Create persiste la subcategoría; el índice único (category_id, sub_category) es la garantía final.
func (r *SubcategoryRepo) Create(ctx context.Context, sub *entity.Subcategory) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx,
		`INSERT INTO sub_categories (category_id, sub_category) VALUES ($1, $2) RETURNING id`,
		sub.CategoryID, sub.Name,
	).Scan(&id)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return 0, &domain.DuplicateNameError{Entity: entity.TableSubcategories, Name: sub.Name}
		case isForeignKeyViolation(err):
			return 0, &domain.ValidationError{Field: "category_id", Message: "la categoría no existe"}
		}
		return 0, storeErr("insert subcategory", err)
	}
	return id, nil
}

// Rename cambia solo el nombre; la categoría padre no se modifica.
func (r *SubcategoryRepo) Rename(ctx context.Context, id int64, name string) error {
	tag, err := r.q.Exec(ctx, `UPDATE sub_categories SET sub_category = $2 WHERE id = $1`, id, name)
	if err != nil {
		if isUniqueViolation(err) {
			return &domain.DuplicateNameError{Entity: entity.TableSubcategories, Name: name}
		}
		return storeErr("rename subcategory", err)
	}
	return notFoundIfNone(tag, entity.TableSubcategories, id)
}

// Delete elimina la subcategoría. La FK de products la bloquea si aún tiene productos.
func (r *SubcategoryRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM sub_categories WHERE id = $1`, id)
	if err != nil {
		return storeErr("delete subcategory", err)
	}
	return notFoundIfNone(tag, entity.TableSubcategories, id)
}

// CountProducts productos de la subcategoría.
func (r *SubcategoryRepo) CountProducts(ctx context.Context, subcategoryID int64) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE subcategory_id = $1`, subcategoryID).Scan(&n); err != nil {
		return 0, storeErr("count subcategory products", err)
	}
	return n, nil
}
