package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-admin/internal/domain"
)

func TestErroresTipados_CoincidenConCentinelas(t *testing.T) {
	cases := []struct {
		err    error
		target error
	}{
		{&domain.ValidationError{Field: "name"}, domain.ErrInvalidInput},
		{&domain.DuplicateNameError{Entity: "categories", Name: "x"}, domain.ErrDuplicate},
		{&domain.HasDependentsError{Entity: "categories", Dependency: domain.DependencyProducts}, domain.ErrHasDependents},
		{&domain.NotFoundError{Entity: "categories", ID: 1}, domain.ErrNotFound},
		{&domain.ForbiddenError{Message: "no"}, domain.ErrForbidden},
		{&domain.StoreError{Op: "insert", Err: errors.New("conn refused")}, domain.ErrStore},
	}
	for _, tc := range cases {
		wrapped := fmt.Errorf("contexto: %w", tc.err)
		assert.ErrorIs(t, wrapped, tc.target, "%T debe coincidir con su centinela", tc.err)
	}
}

func TestHasDependentsError_MensajesDistintos(t *testing.T) {
	products := &domain.HasDependentsError{Entity: "categories", Dependency: domain.DependencyProducts}
	subcats := &domain.HasDependentsError{Entity: "categories", Dependency: domain.DependencySubcategories}
	assert.NotEqual(t, products.Error(), subcats.Error())
}

func TestAsStoreError(t *testing.T) {
	assert.NoError(t, domain.AsStoreError("op", nil))

	dup := &domain.DuplicateNameError{Entity: "categories"}
	assert.Same(t, dup, domain.AsStoreError("op", dup), "los errores de dominio no se re-envuelven")

	cause := errors.New("timeout")
	err := domain.AsStoreError("update categories", cause)
	var storeErr *domain.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "update categories", storeErr.Op)
	assert.ErrorIs(t, err, cause)
}
