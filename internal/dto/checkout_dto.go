package dto

import (
	"github.com/shopspring/decimal"
)

// RevisionResponse is the read-only checkout snapshot presented for
// confirmation. It never mutates stock or cart.
type RevisionResponse struct {
	RevisionID string                `json:"revision_id"`
	Estado     string                `json:"estado"`
	Items      []CarritoItemResponse `json:"items"`
	Total      decimal.Decimal       `json:"total"`
}

type DatosEnvioRequest struct {
	Pais      string `json:"pais"`
	Provincia string `json:"provincia"`
	Localidad string `json:"localidad"`
	Direccion string `json:"direccion"`
}

type ConfirmarCompraRequest struct {
	Envio *DatosEnvioRequest `json:"envio"`
}

type PedidoResponse struct {
	Numero   string                `json:"numero"`
	Items    []CarritoItemResponse `json:"items"`
	Total    decimal.Decimal       `json:"total"`
	Envio    *DatosEnvioRequest    `json:"envio,omitempty"`
	CreadoEn string                `json:"creado_en"`
}

type PedidoListResponse struct {
	Data  []PedidoResponse `json:"data"`
	Total int              `json:"total"`
}
