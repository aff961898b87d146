package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShippingOptionRequest entrada para crear o editar una opción de envío.
type ShippingOptionRequest struct {
	Name  string          `json:"name" validate:"required,max=100"`
	Price decimal.Decimal `json:"price"`
}

// ShippingOptionResponse salida de una opción de envío.
type ShippingOptionResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	CreatedAt time.Time       `json:"created_at"`
}
