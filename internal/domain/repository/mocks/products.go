package mocks

import (
	"context"
	"errors"
	"sort"

	"github.com/jhoicas/tienda-admin/internal/domain"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
	"github.com/jhoicas/tienda-admin/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

var errForeignKey = errors.New("violates foreign key constraint")

// ProductRepo productos en memoria.
type ProductRepo struct{ s *Store }

func (r *ProductRepo) List(ctx context.Context, f entity.ProductFilter) ([]*entity.ProductDetail, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Products.List"); err != nil {
		return nil, 0, err
	}
	var all []*entity.ProductDetail
	for _, id := range sortedKeys(r.s.products) {
		d := r.s.detail(id)
		if f.Search != "" && !containsFold(d.Name, f.Search) && !containsFold(d.Description, f.Search) {
			continue
		}
		if f.CategoryID != nil && d.CategoryID != *f.CategoryID {
			continue
		}
		switch f.Stock {
		case entity.StockFilterLow:
			if d.Stock <= 0 || d.Stock > entity.LowStockThreshold {
				continue
			}
		case entity.StockFilterOut:
			if d.Stock != 0 {
				continue
			}
		}
		switch f.Status {
		case entity.StatusFilterActive:
			if !d.IsActive {
				continue
			}
		case entity.StatusFilterInactive:
			if d.IsActive {
				continue
			}
		}
		all = append(all, d)
	}
	// más recientes primero
	sort.SliceStable(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	start := min(f.Offset, len(all))
	end := len(all)
	if f.Limit > 0 {
		end = min(start+f.Limit, len(all))
	}
	return all[start:end], total, nil
}

func (r *ProductRepo) GetDetail(ctx context.Context, id int64) (*entity.ProductDetail, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Products.GetDetail"); err != nil {
		return nil, err
	}
	if _, ok := r.s.products[id]; !ok {
		return nil, nil
	}
	return r.s.detail(id), nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Products.GetByID"); err != nil {
		return nil, err
	}
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Products.Create"); err != nil {
		return 0, err
	}
	if _, ok := r.s.subcategories[product.SubcategoryID]; !ok {
		return 0, &domain.ValidationError{Field: "subcategory_id", Message: "la subcategoría no existe"}
	}
	id := r.s.next("products")
	cp := *product
	cp.ID = id
	cp.CreatedAt = r.s.now()
	cp.UpdatedAt = cp.CreatedAt
	r.s.products[id] = &cp
	return id, nil
}

func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Products.Update"); err != nil {
		return err
	}
	cur, ok := r.s.products[product.ID]
	if !ok {
		return &domain.NotFoundError{Entity: entity.TableProducts, ID: product.ID}
	}
	if _, ok := r.s.subcategories[product.SubcategoryID]; !ok {
		return &domain.ValidationError{Field: "subcategory_id", Message: "la subcategoría no existe"}
	}
	cur.SubcategoryID = product.SubcategoryID
	cur.Name = product.Name
	cur.Description = product.Description
	cur.Cost = product.Cost
	cur.Price = product.Price
	cur.Stock = product.Stock
	cur.UpdatedAt = r.s.now()
	return nil
}

func (r *ProductRepo) SetActive(ctx context.Context, id int64, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Products.SetActive"); err != nil {
		return err
	}
	p, ok := r.s.products[id]
	if !ok {
		return &domain.NotFoundError{Entity: entity.TableProducts, ID: id}
	}
	p.IsActive = active
	return nil
}

func (r *ProductRepo) ListImages(ctx context.Context, productID int64) ([]*entity.ProductImage, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Products.ListImages"); err != nil {
		return nil, err
	}
	var out []*entity.ProductImage
	for _, img := range r.s.images[productID] {
		cp := img
		out = append(out, &cp)
	}
	return out, nil
}

func (r *ProductRepo) AddImages(ctx context.Context, productID int64, images []entity.ProductImage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Products.AddImages"); err != nil {
		return err
	}
	r.s.appendImages(productID, images)
	return nil
}

func (r *ProductRepo) ReplaceImages(ctx context.Context, productID int64, images []entity.ProductImage) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Products.ReplaceImages"); err != nil {
		return nil, err
	}
	var old []string
	for _, img := range r.s.images[productID] {
		old = append(old, img.URL)
	}
	delete(r.s.images, productID)
	r.s.appendImages(productID, images)
	return old, nil
}

func (s *Store) appendImages(productID int64, images []entity.ProductImage) {
	for _, img := range images {
		if img.IsMain {
			for i := range s.images[productID] {
				s.images[productID][i].IsMain = false
			}
		}
		img.ID = s.next("product_images")
		img.ProductID = productID
		s.images[productID] = append(s.images[productID], img)
	}
}

// detail arma la vista del producto. Requiere el lock tomado.
func (s *Store) detail(id int64) *entity.ProductDetail {
	p := s.products[id]
	d := &entity.ProductDetail{Product: *p}
	if sub, ok := s.subcategories[p.SubcategoryID]; ok {
		d.SubcategoryName = sub.Name
		d.CategoryID = sub.CategoryID
		if c, ok := s.categories[sub.CategoryID]; ok {
			d.CategoryName = c.Name
		}
	}
	for _, img := range s.images[id] {
		d.Images = append(d.Images, img)
		if img.IsMain {
			d.MainImage = img.URL
		}
	}
	return d
}

// snapshotProducts copia productos e imágenes para poder revertir una transacción.
func (s *Store) snapshotProducts() (map[int64]*entity.Product, map[int64][]entity.ProductImage) {
	products := make(map[int64]*entity.Product, len(s.products))
	for id, p := range s.products {
		cp := *p
		products[id] = &cp
	}
	images := make(map[int64][]entity.ProductImage, len(s.images))
	for id, imgs := range s.images {
		images[id] = append([]entity.ProductImage(nil), imgs...)
	}
	return products, images
}
