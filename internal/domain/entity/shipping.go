package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShippingOption ciudad/destino de envío con su tarifa. Nombre único sin distinguir mayúsculas.
type ShippingOption struct {
	ID        int64
	Name      string
	Price     decimal.Decimal
	CreatedAt time.Time
}
