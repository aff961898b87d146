package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-admin/internal/domain"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
	"github.com/jhoicas/tienda-admin/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// ListWithCounts categorías por nombre con ícono, conteos y subcategorías anidadas.
func (r *CategoryRepo) ListWithCounts(ctx context.Context) ([]*entity.CategoryView, error) {
	query := `
		SELECT c.id, c.main_category, c.description, c.icon_id, c.created_at,
		       COALESCE(i.icon_class, ''),
		       COALESCE(p.product_count, 0),
		       COALESCE(s.subcategory_count, 0)
		FROM categories c
		LEFT JOIN icon_options i ON c.icon_id = i.id
		LEFT JOIN (
			SELECT sc.category_id, COUNT(p.id) AS product_count
			FROM products p
			JOIN sub_categories sc ON p.subcategory_id = sc.id
			GROUP BY sc.category_id
		) p ON c.id = p.category_id
		LEFT JOIN (
			SELECT category_id, COUNT(*) AS subcategory_count
			FROM sub_categories
			GROUP BY category_id
		) s ON c.id = s.category_id
		ORDER BY c.main_category ASC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, storeErr("list categories", err)
	}
	defer rows.Close()

	var list []*entity.CategoryView
	byID := make(map[int64]*entity.CategoryView)
	for rows.Next() {
		var v entity.CategoryView
		if err := rows.Scan(&v.ID, &v.Name, &v.Description, &v.IconID, &v.CreatedAt,
			&v.IconClass, &v.ProductCount, &v.SubcategoryCount); err != nil {
			return nil, storeErr("scan category", err)
		}
		list = append(list, &v)
		byID[v.ID] = &v
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list categories", err)
	}

	subs, err := NewSubcategoryRepository(r.q).List(ctx, nil)
	if err != nil {
		return nil, err
	}
	for _, s := range subs {
		if v, ok := byID[s.CategoryID]; ok {
			v.Subcategories = append(v.Subcategories, *s)
		}
	}
	return list, nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	return r.findOne(ctx, "get category", `WHERE id = $1`, id)
}

// FindByName coincidencia exacta sobre main_category.
func (r *CategoryRepo) FindByName(ctx context.Context, name string) (*entity.Category, error) {
	return r.findOne(ctx, "find category by name", `WHERE main_category = $1`, name)
}

func (r *CategoryRepo) findOne(ctx context.Context, op, where string, arg any) (*entity.Category, error) {
	query := `SELECT id, main_category, description, icon_id, created_at FROM categories ` + where
	var c entity.Category
	err := r.q.QueryRow(ctx, query, arg).Scan(&c.ID, &c.Name, &c.Description, &c.IconID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr(op, err)
	}
	return &c, nil
}

// Create persiste una categoría; el índice único sobre main_category es la garantía final.
func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx,
		`INSERT INTO categories (main_category, description, icon_id) VALUES ($1, $2, $3) RETURNING id`,
		category.Name, category.Description, category.IconID,
	).Scan(&id)
	if err != nil {
		return 0, r.mapWriteErr("insert category", category, err)
	}
	return id, nil
}

// Update reemplaza nombre, descripción e ícono.
func (r *CategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE categories SET main_category = $2, description = $3, icon_id = $4 WHERE id = $1`,
		category.ID, category.Name, category.Description, category.IconID,
	)
	if err != nil {
		return r.mapWriteErr("update category", category, err)
	}
	return notFoundIfNone(tag, entity.TableCategories, category.ID)
}

func (r *CategoryRepo) mapWriteErr(op string, category *entity.Category, err error) error {
	switch {
	case isUniqueViolation(err):
		return &domain.DuplicateNameError{Entity: entity.TableCategories, Name: category.Name}
	case isForeignKeyViolation(err):
		return &domain.ValidationError{Field: "icon_id", Message: "el ícono no existe"}
	default:
		return storeErr(op, err)
	}
}

// Delete elimina la categoría. Una FK de sub_categories la bloquea si aún tiene hijos.
func (r *CategoryRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return storeErr("delete category", err)
	}
	return notFoundIfNone(tag, entity.TableCategories, id)
}

// CountProducts productos cuya subcategoría pertenece a la categoría.
func (r *CategoryRepo) CountProducts(ctx context.Context, categoryID int64) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*) FROM products p
		JOIN sub_categories sc ON p.subcategory_id = sc.id
		WHERE sc.category_id = $1`, categoryID).Scan(&n)
	if err != nil {
		return 0, storeErr("count category products", err)
	}
	return n, nil
}

// CountSubcategories subcategorías directas de la categoría.
func (r *CategoryRepo) CountSubcategories(ctx context.Context, categoryID int64) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM sub_categories WHERE category_id = $1`, categoryID).Scan(&n)
	if err != nil {
		return 0, storeErr("count subcategories", err)
	}
	return n, nil
}
