package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pedido is an immutable snapshot of the cart at confirmation time.
// Never mutated after creation.
type Pedido struct {
	Numero   string          `json:"numero" validate:"required"`
	Items    []PedidoItem    `json:"items"  validate:"required,min=1,dive"`
	Total    decimal.Decimal `json:"total"`
	Envio    *DatosEnvio     `json:"envio,omitempty"`
	CreadoEn time.Time       `json:"creado_en"`
}

type PedidoItem struct {
	ProductoID int             `json:"id"       validate:"required,min=1"`
	Nombre     string          `json:"nombre"   validate:"required"`
	Precio     decimal.Decimal `json:"precio"`
	Cantidad   int             `json:"cantidad" validate:"required,min=1"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

// DatosEnvio carries the shipping form fields. Recorded verbatim; the
// engine does not validate geography.
type DatosEnvio struct {
	Pais      string `json:"pais"`
	Provincia string `json:"provincia"`
	Localidad string `json:"localidad"`
	Direccion string `json:"direccion"`
}
