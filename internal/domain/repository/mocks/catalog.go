package mocks

import (
	"context"
	"sort"

	"github.com/jhoicas/tienda-admin/internal/domain"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
	"github.com/jhoicas/tienda-admin/internal/domain/repository"
)

var (
	_ repository.CategoryRepository    = (*CategoryRepo)(nil)
	_ repository.SubcategoryRepository = (*SubcategoryRepo)(nil)
	_ repository.IconRepository        = (*IconRepo)(nil)
)

// CategoryRepo categorías en memoria.
type CategoryRepo struct{ s *Store }

func (r *CategoryRepo) ListWithCounts(ctx context.Context) ([]*entity.CategoryView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Categories.ListWithCounts"); err != nil {
		return nil, err
	}
	out := make([]*entity.CategoryView, 0, len(r.s.categories))
	for _, id := range sortedKeys(r.s.categories) {
		c := r.s.categories[id]
		v := &entity.CategoryView{Category: *c}
		if icon, ok := r.s.icons[c.IconID]; ok {
			v.IconClass = icon.Class
		}
		for _, sid := range sortedKeys(r.s.subcategories) {
			sub := r.s.subcategories[sid]
			if sub.CategoryID != id {
				continue
			}
			n := r.s.countProductsInSub(sid)
			v.SubcategoryCount++
			v.ProductCount += n
			v.Subcategories = append(v.Subcategories, entity.SubcategoryView{Subcategory: *sub, CategoryName: c.Name, ProductCount: n})
		}
		out = append(out, v)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Categories.GetByID"); err != nil {
		return nil, err
	}
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *CategoryRepo) FindByName(ctx context.Context, name string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Categories.FindByName"); err != nil {
		return nil, err
	}
	if c := r.s.categoryByName(name); c != nil {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (r *CategoryRepo) Create(ctx context.Context, category *entity.Category) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Categories.Create"); err != nil {
		return 0, err
	}
	if r.s.categoryByName(category.Name) != nil {
		return 0, &domain.DuplicateNameError{Entity: entity.TableCategories, Name: category.Name}
	}
	if _, ok := r.s.icons[category.IconID]; !ok {
		return 0, &domain.ValidationError{Field: "icon_id", Message: "el ícono no existe"}
	}
	id := r.s.next("categories")
	cp := *category
	cp.ID = id
	cp.CreatedAt = r.s.now()
	r.s.categories[id] = &cp
	return id, nil
}

func (r *CategoryRepo) Update(ctx context.Context, category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Categories.Update"); err != nil {
		return err
	}
	cur, ok := r.s.categories[category.ID]
	if !ok {
		return &domain.NotFoundError{Entity: entity.TableCategories, ID: category.ID}
	}
	if other := r.s.categoryByName(category.Name); other != nil && other.ID != category.ID {
		return &domain.DuplicateNameError{Entity: entity.TableCategories, Name: category.Name}
	}
	cur.Name = category.Name
	cur.Description = category.Description
	cur.IconID = category.IconID
	return nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Categories.Delete"); err != nil {
		return err
	}
	if _, ok := r.s.categories[id]; !ok {
		return &domain.NotFoundError{Entity: entity.TableCategories, ID: id}
	}
	for _, sub := range r.s.subcategories {
		if sub.CategoryID == id {
			return &domain.StoreError{Op: "delete categories", Err: errForeignKey}
		}
	}
	delete(r.s.categories, id)
	return nil
}

func (r *CategoryRepo) CountProducts(ctx context.Context, categoryID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Categories.CountProducts"); err != nil {
		return 0, err
	}
	var n int64
	for sid, sub := range r.s.subcategories {
		if sub.CategoryID == categoryID {
			n += r.s.countProductsInSub(sid)
		}
	}
	return n, nil
}

func (r *CategoryRepo) CountSubcategories(ctx context.Context, categoryID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Categories.CountSubcategories"); err != nil {
		return 0, err
	}
	var n int64
	for _, sub := range r.s.subcategories {
		if sub.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

// SubcategoryRepo subcategorías en memoria.
type SubcategoryRepo struct{ s *Store }

func (r *SubcategoryRepo) List(ctx context.Context, categoryID *int64) ([]*entity.SubcategoryView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Subcategories.List"); err != nil {
		return nil, err
	}
	var out []*entity.SubcategoryView
	for _, id := range sortedKeys(r.s.subcategories) {
		sub := r.s.subcategories[id]
		if categoryID != nil && sub.CategoryID != *categoryID {
			continue
		}
		v := &entity.SubcategoryView{Subcategory: *sub, ProductCount: r.s.countProductsInSub(id)}
		if c, ok := r.s.categories[sub.CategoryID]; ok {
			v.CategoryName = c.Name
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *SubcategoryRepo) ListByCategoryName(ctx context.Context, categoryName string) ([]*entity.Subcategory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Subcategories.ListByCategoryName"); err != nil {
		return nil, err
	}
	c := r.s.categoryByName(categoryName)
	if c == nil {
		return nil, nil
	}
	var out []*entity.Subcategory
	for _, id := range sortedKeys(r.s.subcategories) {
		if sub := r.s.subcategories[id]; sub.CategoryID == c.ID {
			cp := *sub
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *SubcategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Subcategory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Subcategories.GetByID"); err != nil {
		return nil, err
	}
	sub, ok := r.s.subcategories[id]
	if !ok {
		return nil, nil
	}
	cp := *sub
	return &cp, nil
}

func (r *SubcategoryRepo) FindByName(ctx context.Context, categoryID int64, name string) (*entity.Subcategory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Subcategories.FindByName"); err != nil {
		return nil, err
	}
	if sub := r.s.subcategoryByName(categoryID, name); sub != nil {
		cp := *sub
		return &cp, nil
	}
	return nil, nil
}

func (r *SubcategoryRepo) Create(ctx context.Context, sub *entity.Subcategory) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Subcategories.Create"); err != nil {
		return 0, err
	}
	if _, ok := r.s.categories[sub.CategoryID]; !ok {
		return 0, &domain.ValidationError{Field: "category_id", Message: "la categoría no existe"}
	}
	if r.s.subcategoryByName(sub.CategoryID, sub.Name) != nil {
		return 0, &domain.DuplicateNameError{Entity: entity.TableSubcategories, Name: sub.Name}
	}
	id := r.s.next("sub_categories")
	cp := *sub
	cp.ID = id
	r.s.subcategories[id] = &cp
	return id, nil
}

func (r *SubcategoryRepo) Rename(ctx context.Context, id int64, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Subcategories.Rename"); err != nil {
		return err
	}
	sub, ok := r.s.subcategories[id]
	if !ok {
		return &domain.NotFoundError{Entity: entity.TableSubcategories, ID: id}
	}
	if other := r.s.subcategoryByName(sub.CategoryID, name); other != nil && other.ID != id {
		return &domain.DuplicateNameError{Entity: entity.TableSubcategories, Name: name}
	}
	sub.Name = name
	return nil
}

func (r *SubcategoryRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Subcategories.Delete"); err != nil {
		return err
	}
	if _, ok := r.s.subcategories[id]; !ok {
		return &domain.NotFoundError{Entity: entity.TableSubcategories, ID: id}
	}
	if r.s.countProductsInSub(id) > 0 {
		return &domain.StoreError{Op: "delete sub_categories", Err: errForeignKey}
	}
	delete(r.s.subcategories, id)
	return nil
}

func (r *SubcategoryRepo) CountProducts(ctx context.Context, subcategoryID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Subcategories.CountProducts"); err != nil {
		return 0, err
	}
	return r.s.countProductsInSub(subcategoryID), nil
}

// IconRepo íconos en memoria.
type IconRepo struct{ s *Store }

func (r *IconRepo) List(ctx context.Context) ([]*entity.Icon, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Icons.List"); err != nil {
		return nil, err
	}
	out := make([]*entity.Icon, 0, len(r.s.icons))
	for _, id := range sortedKeys(r.s.icons) {
		cp := *r.s.icons[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *IconRepo) GetByID(ctx context.Context, id int64) (*entity.Icon, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Icons.GetByID"); err != nil {
		return nil, err
	}
	icon, ok := r.s.icons[id]
	if !ok {
		return nil, nil
	}
	cp := *icon
	return &cp, nil
}

func (s *Store) categoryByName(name string) *entity.Category {
	for _, c := range s.categories {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (s *Store) subcategoryByName(categoryID int64, name string) *entity.Subcategory {
	for _, sub := range s.subcategories {
		if sub.CategoryID == categoryID && sub.Name == name {
			return sub
		}
	}
	return nil
}

func (s *Store) countProductsInSub(subcategoryID int64) int64 {
	var n int64
	for _, p := range s.products {
		if p.SubcategoryID == subcategoryID {
			n++
		}
	}
	return n
}
