package model

import (
	"github.com/shopspring/decimal"
)

// CarritoItem is one cart line: a reserved quantity of one product.
// Nombre and Precio are denormalized at add-time so the cart renders the
// price the shopper saw, even if an admin later edits the product.
type CarritoItem struct {
	ID       int             `json:"id"       validate:"required,min=1"`
	Nombre   string          `json:"nombre"   validate:"required"`
	Precio   decimal.Decimal `json:"precio"   validate:"min=0"`
	Cantidad int             `json:"cantidad" validate:"required,min=1"`
}

// Subtotal is cantidad * precio at the snapshot price.
func (i CarritoItem) Subtotal() decimal.Decimal {
	return i.Precio.Mul(decimal.NewFromInt(int64(i.Cantidad)))
}
