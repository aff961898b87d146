package mocks

import (
	"context"

	"github.com/jhoicas/tienda-admin/internal/domain/repository"
)

// TxRunner simula una transacción sobre productos: si fn falla se restaura el estado previo.
type TxRunner struct{ s *Store }

func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

func (t *TxRunner) RunProducts(ctx context.Context, fn func(products repository.ProductRepository) error) error {
	t.s.mu.Lock()
	products, images := t.s.snapshotProducts()
	t.s.mu.Unlock()

	if err := fn(t.s.Products()); err != nil {
		t.s.mu.Lock()
		t.s.products, t.s.images = products, images
		t.s.mu.Unlock()
		return err
	}
	return nil
}
