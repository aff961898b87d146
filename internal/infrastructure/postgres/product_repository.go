package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-admin/internal/domain"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
	"github.com/jhoicas/tienda-admin/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productDetailSelect = `
	SELECT p.id, p.subcategory_id, p.name, p.description, p.cost, p.price, p.stock, p.is_active,
	       p.created_at, p.updated_at, sc.sub_category, c.id, c.main_category,
	       COALESCE((SELECT image_url FROM product_images WHERE product_id = p.id AND is_main = true LIMIT 1), '')
	FROM products p
	JOIN sub_categories sc ON p.subcategory_id = sc.id
	JOIN categories c ON sc.category_id = c.id`

func scanDetail(row pgx.Row) (*entity.ProductDetail, error) {
	var d entity.ProductDetail
	err := row.Scan(&d.ID, &d.SubcategoryID, &d.Name, &d.Description, &d.Cost, &d.Price, &d.Stock, &d.IsActive,
		&d.CreatedAt, &d.UpdatedAt, &d.SubcategoryName, &d.CategoryID, &d.CategoryName, &d.MainImage)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// likeEscaper neutraliza los comodines de LIKE en el texto de búsqueda.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// productWhere arma el WHERE del listado y sus argumentos posicionales.
func productWhere(f entity.ProductFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		add(`(p.name ILIKE $%[1]d ESCAPE '\' OR p.description ILIKE $%[1]d ESCAPE '\')`, "%"+likeEscaper.Replace(s)+"%")
	}
	if f.CategoryID != nil {
		add("c.id = $%d", *f.CategoryID)
	}
	switch f.Stock {
	case entity.StockFilterLow:
		add("p.stock > 0 AND p.stock <= $%d", entity.LowStockThreshold)
	case entity.StockFilterOut:
		conds = append(conds, "p.stock = 0")
	}
	switch f.Status {
	case entity.StatusFilterActive:
		conds = append(conds, "p.is_active = true")
	case entity.StatusFilterInactive:
		conds = append(conds, "p.is_active = false")
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List listado paginado, más recientes primero, con el total sin paginar.
func (r *ProductRepo) List(ctx context.Context, f entity.ProductFilter) ([]*entity.ProductDetail, int64, error) {
	where, args := productWhere(f)

	var total int64
	countQuery := `SELECT COUNT(*) FROM products p
		JOIN sub_categories sc ON p.subcategory_id = sc.id
		JOIN categories c ON sc.category_id = c.id` + where
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, storeErr("count products", err)
	}

	query := productDetailSelect + where + " ORDER BY p.created_at DESC, p.id DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit, f.Offset)
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, storeErr("list products", err)
	}
	defer rows.Close()
	var list []*entity.ProductDetail
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, 0, storeErr("scan product", err)
		}
		list = append(list, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, storeErr("list products", err)
	}
	return list, total, nil
}

// GetDetail producto con jerarquía e imágenes; (nil, nil) si no existe.
func (r *ProductRepo) GetDetail(ctx context.Context, id int64) (*entity.ProductDetail, error) {
	d, err := scanDetail(r.q.QueryRow(ctx, productDetailSelect+" WHERE p.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get product detail", err)
	}
	images, err := r.ListImages(ctx, id)
	if err != nil {
		return nil, err
	}
	for _, img := range images {
		d.Images = append(d.Images, *img)
	}
	return d, nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, `
		SELECT id, subcategory_id, name, description, cost, price, stock, is_active, created_at, updated_at
		FROM products WHERE id = $1`, id).Scan(
		&p.ID, &p.SubcategoryID, &p.Name, &p.Description, &p.Cost, &p.Price, &p.Stock, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storeErr("get product", err)
	}
	return &p, nil
}

// Create persiste un nuevo producto activo.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) (int64, error) {
	var id int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO products (name, description, cost, price, stock, subcategory_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, true) RETURNING id`,
		product.Name, product.Description, product.Cost, product.Price, product.Stock, product.SubcategoryID,
	).Scan(&id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, &domain.ValidationError{Field: "subcategory_id", Message: "la subcategoría no existe"}
		}
		return 0, storeErr("insert product", err)
	}
	return id, nil
}

// Update actualiza datos editables; is_active solo cambia vía SetActive.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE products SET name = $2, description = $3, cost = $4, price = $5, stock = $6, subcategory_id = $7, updated_at = now()
		WHERE id = $1`,
		product.ID, product.Name, product.Description, product.Cost, product.Price, product.Stock, product.SubcategoryID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return &domain.ValidationError{Field: "subcategory_id", Message: "la subcategoría no existe"}
		}
		return storeErr("update product", err)
	}
	return notFoundIfNone(tag, entity.TableProducts, product.ID)
}

// SetActive desactiva o reactiva (baja lógica).
func (r *ProductRepo) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.q.Exec(ctx, `UPDATE products SET is_active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return storeErr("set product active", err)
	}
	return notFoundIfNone(tag, entity.TableProducts, id)
}

// ListImages imágenes del producto, la principal primero.
func (r *ProductRepo) ListImages(ctx context.Context, productID int64) ([]*entity.ProductImage, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, product_id, image_url, is_main FROM product_images
		WHERE product_id = $1 ORDER BY is_main DESC, id`, productID)
	if err != nil {
		return nil, storeErr("list product images", err)
	}
	defer rows.Close()
	var list []*entity.ProductImage
	for rows.Next() {
		var img entity.ProductImage
		if err := rows.Scan(&img.ID, &img.ProductID, &img.URL, &img.IsMain); err != nil {
			return nil, storeErr("scan product image", err)
		}
		list = append(list, &img)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("list product images", err)
	}
	return list, nil
}

// AddImages inserta imágenes; una nueva principal desplaza a la anterior.
func (r *ProductRepo) AddImages(ctx context.Context, productID int64, images []entity.ProductImage) error {
	for _, img := range images {
		if img.IsMain {
			if _, err := r.q.Exec(ctx,
				`UPDATE product_images SET is_main = false WHERE product_id = $1 AND is_main = true`, productID); err != nil {
				return storeErr("demote main image", err)
			}
		}
		if _, err := r.q.Exec(ctx,
			`INSERT INTO product_images (product_id, image_url, is_main) VALUES ($1, $2, $3)`,
			productID, img.URL, img.IsMain); err != nil {
			return storeErr("insert product image", err)
		}
	}
	return nil
}

// ReplaceImages borra todas las imágenes, inserta las nuevas y devuelve las URL anteriores.
func (r *ProductRepo) ReplaceImages(ctx context.Context, productID int64, images []entity.ProductImage) ([]string, error) {
	rows, err := r.q.Query(ctx,
		`DELETE FROM product_images WHERE product_id = $1 RETURNING image_url`, productID)
	if err != nil {
		return nil, storeErr("delete product images", err)
	}
	old, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, storeErr("delete product images", err)
	}
	if err := r.AddImages(ctx, productID, images); err != nil {
		return nil, err
	}
	return old, nil
}
