// Package mocks implementaciones en memoria de los puertos de repositorio para tests.
// Todas comparten un Store con un único mutex; los índices únicos se simulan igual que en
// PostgreSQL, devolviendo domain.DuplicateNameError.
package mocks

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-admin/internal/domain/entity"
)

// Store estado compartido de todas las tablas en memoria.
type Store struct {
	mu  sync.Mutex
	seq map[string]int64
	now func() time.Time

	icons         map[int64]*entity.Icon
	categories    map[int64]*entity.Category
	subcategories map[int64]*entity.Subcategory
	products      map[int64]*entity.Product
	images        map[int64][]entity.ProductImage
	shipping      map[int64]*entity.ShippingOption
	orders        map[int64]orderRow
	admins        map[int64]*entity.Admin
	logs          []*entity.AdminLogEntry

	errs  map[string]error
	calls []string
}

type orderRow struct {
	shippingID int64
	status     string
	total      decimal.Decimal
	createdAt  time.Time
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		seq:           make(map[string]int64),
		now:           time.Now,
		icons:         make(map[int64]*entity.Icon),
		categories:    make(map[int64]*entity.Category),
		subcategories: make(map[int64]*entity.Subcategory),
		products:      make(map[int64]*entity.Product),
		images:        make(map[int64][]entity.ProductImage),
		shipping:      make(map[int64]*entity.ShippingOption),
		orders:        make(map[int64]orderRow),
		admins:        make(map[int64]*entity.Admin),
		errs:          make(map[string]error),
	}
}

// Repositorios sobre el store.
func (s *Store) Categories() *CategoryRepo       { return &CategoryRepo{s: s} }
func (s *Store) Subcategories() *SubcategoryRepo { return &SubcategoryRepo{s: s} }
func (s *Store) Icons() *IconRepo                { return &IconRepo{s: s} }
func (s *Store) Products() *ProductRepo          { return &ProductRepo{s: s} }
func (s *Store) Shipping() *ShippingRepo         { return &ShippingRepo{s: s} }
func (s *Store) Admins() *AdminRepo              { return &AdminRepo{s: s} }
func (s *Store) AdminLogs() *AdminLogRepo        { return &AdminLogRepo{s: s} }
func (s *Store) Dashboard() *DashboardRepo       { return &DashboardRepo{s: s} }

// SetError hace que la operación op (p. ej. "AdminLogs.Insert") falle con err hasta que se limpie con nil.
func (s *Store) SetError(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.errs, op)
		return
	}
	s.errs[op] = err
}

// Calls operaciones invocadas, en orden.
func (s *Store) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// ResetCalls limpia el historial de llamadas.
func (s *Store) ResetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

// Logs copia de las entradas de auditoría persistidas.
func (s *Store) Logs() []entity.AdminLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.AdminLogEntry, 0, len(s.logs))
	for _, l := range s.logs {
		out = append(out, *l)
	}
	return out
}

// SeedIcon inserta un ícono y devuelve su id.
func (s *Store) SeedIcon(tag, class string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next("icons")
	s.icons[id] = &entity.Icon{ID: id, Category: tag, Class: class}
	return id
}

// SeedProduct inserta un producto activo bajo la subcategoría.
func (s *Store) SeedProduct(subcategoryID int64, name string, stock int) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next("products")
	s.products[id] = &entity.Product{ID: id, SubcategoryID: subcategoryID, Name: name, Stock: stock, IsActive: true, CreatedAt: s.now()}
	return id
}

// SeedOrder inserta un pedido que usa la opción de envío.
func (s *Store) SeedOrder(shippingID int64, status string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next("orders")
	s.orders[id] = orderRow{shippingID: shippingID, status: status, createdAt: s.now()}
	return id
}

// SeedSale inserta un pedido con total y fecha, para los agregados de ventas.
func (s *Store) SeedSale(total decimal.Decimal, at time.Time) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next("orders")
	s.orders[id] = orderRow{status: "delivered", total: total, createdAt: at}
	return id
}

// SetClock fija el "ahora" del store (CreatedAt y agregados por fecha).
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// SeedAdmin inserta un administrador sin pasar por las reglas del caso de uso.
func (s *Store) SeedAdmin(name, email, hash, role string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next("admins")
	s.admins[id] = &entity.Admin{ID: id, Name: name, Email: email, PasswordHash: hash, Role: role, CreatedAt: s.now()}
	return id
}

func (s *Store) next(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

// call registra la operación y devuelve el error inyectado, si hay. Requiere el lock tomado.
func (s *Store) call(op string) error {
	s.calls = append(s.calls, op)
	return s.errs[op]
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
