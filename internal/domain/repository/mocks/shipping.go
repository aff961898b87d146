package mocks

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/tienda-admin/internal/domain"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
	"github.com/jhoicas/tienda-admin/internal/domain/repository"
)

var _ repository.ShippingRepository = (*ShippingRepo)(nil)

// ShippingRepo opciones de envío en memoria.
type ShippingRepo struct{ s *Store }

func (r *ShippingRepo) List(ctx context.Context) ([]*entity.ShippingOption, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Shipping.List"); err != nil {
		return nil, err
	}
	out := make([]*entity.ShippingOption, 0, len(r.s.shipping))
	for _, id := range sortedKeys(r.s.shipping) {
		cp := *r.s.shipping[id]
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ShippingRepo) GetByID(ctx context.Context, id int64) (*entity.ShippingOption, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Shipping.GetByID"); err != nil {
		return nil, err
	}
	opt, ok := r.s.shipping[id]
	if !ok {
		return nil, nil
	}
	cp := *opt
	return &cp, nil
}

func (r *ShippingRepo) FindByNameFold(ctx context.Context, name string) (*entity.ShippingOption, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Shipping.FindByNameFold"); err != nil {
		return nil, err
	}
	if opt := r.s.shippingByName(name); opt != nil {
		cp := *opt
		return &cp, nil
	}
	return nil, nil
}

func (r *ShippingRepo) Create(ctx context.Context, opt *entity.ShippingOption) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Shipping.Create"); err != nil {
		return 0, err
	}
	if r.s.shippingByName(opt.Name) != nil {
		return 0, &domain.DuplicateNameError{Entity: entity.TableShippingOptions, Name: opt.Name}
	}
	id := r.s.next("shipping_options")
	cp := *opt
	cp.ID = id
	cp.CreatedAt = r.s.now()
	r.s.shipping[id] = &cp
	return id, nil
}

func (r *ShippingRepo) Update(ctx context.Context, opt *entity.ShippingOption) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Shipping.Update"); err != nil {
		return err
	}
	cur, ok := r.s.shipping[opt.ID]
	if !ok {
		return &domain.NotFoundError{Entity: entity.TableShippingOptions, ID: opt.ID}
	}
	if other := r.s.shippingByName(opt.Name); other != nil && other.ID != opt.ID {
		return &domain.DuplicateNameError{Entity: entity.TableShippingOptions, Name: opt.Name}
	}
	cur.Name = opt.Name
	cur.Price = opt.Price
	return nil
}

func (r *ShippingRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Shipping.Delete"); err != nil {
		return err
	}
	if _, ok := r.s.shipping[id]; !ok {
		return &domain.NotFoundError{Entity: entity.TableShippingOptions, ID: id}
	}
	delete(r.s.shipping, id)
	return nil
}

func (r *ShippingRepo) CountOrders(ctx context.Context, id int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Shipping.CountOrders"); err != nil {
		return 0, err
	}
	var n int64
	for _, o := range r.s.orders {
		if o.shippingID == id {
			n++
		}
	}
	return n, nil
}

func (s *Store) shippingByName(name string) *entity.ShippingOption {
	for _, opt := range s.shipping {
		if strings.EqualFold(opt.Name, name) {
			return opt
		}
	}
	return nil
}
