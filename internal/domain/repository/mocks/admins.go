package mocks

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-admin/internal/domain"
	"github.com/jhoicas/tienda-admin/internal/domain/entity"
	"github.com/jhoicas/tienda-admin/internal/domain/repository"
)

var (
	_ repository.AdminRepository     = (*AdminRepo)(nil)
	_ repository.AdminLogRepository  = (*AdminLogRepo)(nil)
	_ repository.DashboardRepository = (*DashboardRepo)(nil)
)

// AdminRepo administradores en memoria.
type AdminRepo struct{ s *Store }

func (r *AdminRepo) List(ctx context.Context) ([]*entity.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Admins.List"); err != nil {
		return nil, err
	}
	out := make([]*entity.Admin, 0, len(r.s.admins))
	for _, id := range sortedKeys(r.s.admins) {
		cp := *r.s.admins[id]
		out = append(out, &cp)
	}
	return out, nil
}

func (r *AdminRepo) GetByID(ctx context.Context, id int64) (*entity.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Admins.GetByID"); err != nil {
		return nil, err
	}
	a, ok := r.s.admins[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Admins.GetByEmail"); err != nil {
		return nil, err
	}
	if a := r.s.adminByEmail(email); a != nil {
		cp := *a
		return &cp, nil
	}
	return nil, nil
}

func (r *AdminRepo) Create(ctx context.Context, admin *entity.Admin) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Admins.Create"); err != nil {
		return 0, err
	}
	if r.s.adminByEmail(admin.Email) != nil {
		return 0, &domain.DuplicateNameError{Entity: entity.TableAdmins, Name: admin.Email}
	}
	id := r.s.next("admins")
	cp := *admin
	cp.ID = id
	cp.CreatedAt = r.s.now()
	r.s.admins[id] = &cp
	return id, nil
}

func (r *AdminRepo) Update(ctx context.Context, admin *entity.Admin) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Admins.Update"); err != nil {
		return err
	}
	cur, ok := r.s.admins[admin.ID]
	if !ok {
		return &domain.NotFoundError{Entity: entity.TableAdmins, ID: admin.ID}
	}
	if other := r.s.adminByEmail(admin.Email); other != nil && other.ID != admin.ID {
		return &domain.DuplicateNameError{Entity: entity.TableAdmins, Name: admin.Email}
	}
	cur.Name = admin.Name
	cur.Email = admin.Email
	cur.Role = admin.Role
	if admin.PasswordHash != "" {
		cur.PasswordHash = admin.PasswordHash
	}
	return nil
}

func (r *AdminRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Admins.Delete"); err != nil {
		return err
	}
	if _, ok := r.s.admins[id]; !ok {
		return &domain.NotFoundError{Entity: entity.TableAdmins, ID: id}
	}
	delete(r.s.admins, id)
	return nil
}

func (s *Store) adminByEmail(email string) *entity.Admin {
	for _, a := range s.admins {
		if strings.EqualFold(a.Email, email) {
			return a
		}
	}
	return nil
}

// AdminLogRepo registro de auditoría en memoria.
type AdminLogRepo struct{ s *Store }

func (r *AdminLogRepo) Insert(ctx context.Context, entry *entity.AdminLogEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("AdminLogs.Insert"); err != nil {
		return err
	}
	cp := *entry
	cp.ID = r.s.next("admin_logs")
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = r.s.now()
	}
	r.s.logs = append(r.s.logs, &cp)
	return nil
}

func (r *AdminLogRepo) List(ctx context.Context, limit, offset int) ([]*entity.AdminLogEntry, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("AdminLogs.List"); err != nil {
		return nil, 0, err
	}
	total := int64(len(r.s.logs))
	var out []*entity.AdminLogEntry
	for i := len(r.s.logs) - 1 - offset; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		cp := *r.s.logs[i]
		out = append(out, &cp)
	}
	return out, total, nil
}

// DashboardRepo agregados del tablero en memoria.
type DashboardRepo struct{ s *Store }

func (r *DashboardRepo) CatalogTotals(ctx context.Context) (*entity.CatalogTotals, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Dashboard.CatalogTotals"); err != nil {
		return nil, err
	}
	t := &entity.CatalogTotals{
		Categories:    int64(len(r.s.categories)),
		Subcategories: int64(len(r.s.subcategories)),
	}
	for _, p := range r.s.products {
		if !p.IsActive {
			t.InactiveProducts++
			continue
		}
		t.ActiveProducts++
		switch {
		case p.Stock == 0:
			t.OutOfStock++
		case p.Stock <= entity.LowStockThreshold:
			t.LowStock++
		}
	}
	return t, nil
}

func (r *DashboardRepo) CountPendingOrders(ctx context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Dashboard.CountPendingOrders"); err != nil {
		return 0, err
	}
	var n int64
	for _, o := range r.s.orders {
		if o.status == "pending" {
			n++
		}
	}
	return n, nil
}

func (r *DashboardRepo) LowStockProducts(ctx context.Context, threshold, limit int) ([]*entity.LowStockProduct, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Dashboard.LowStockProducts"); err != nil {
		return nil, err
	}
	var out []*entity.LowStockProduct
	for _, id := range sortedKeys(r.s.products) {
		p := r.s.products[id]
		if !p.IsActive || p.Stock > threshold {
			continue
		}
		lp := &entity.LowStockProduct{ID: p.ID, Name: p.Name, Stock: p.Stock}
		if sub, ok := r.s.subcategories[p.SubcategoryID]; ok {
			lp.SubcategoryName = sub.Name
		}
		out = append(out, lp)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *DashboardRepo) OrderTotals(ctx context.Context) (*entity.OrderTotals, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Dashboard.OrderTotals"); err != nil {
		return nil, err
	}
	now := r.s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	t := &entity.OrderTotals{Income: decimal.Zero}
	for _, o := range r.s.orders {
		t.Orders++
		t.Income = t.Income.Add(o.total)
		if !o.createdAt.Before(monthStart) {
			t.OrdersThisMonth++
		}
	}
	return t, nil
}

func (r *DashboardRepo) MonthlySales(ctx context.Context, months int) ([]*entity.MonthlySales, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.call("Dashboard.MonthlySales"); err != nil {
		return nil, err
	}
	now := r.s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	cutoff := today.AddDate(0, -months, 0)
	byMonth := map[string]decimal.Decimal{}
	for _, o := range r.s.orders {
		if o.createdAt.Before(cutoff) {
			continue
		}
		key := o.createdAt.Format("2006-01")
		byMonth[key] = byMonth[key].Add(o.total)
	}
	out := make([]*entity.MonthlySales, 0, len(byMonth))
	for month, total := range byMonth {
		out = append(out, &entity.MonthlySales{Month: month, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}
