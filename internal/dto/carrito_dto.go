package dto

import "github.com/shopspring/decimal"

// FijarCantidadRequest sets a line's absolute quantity. Any cantidad
// below 1 is a removal request, answered with confirmacion_requerida
// instead of a mutation; the pointer distinguishes an explicit 0 from a
// missing field.
type FijarCantidadRequest struct {
	Cantidad *int `json:"cantidad" validate:"required"`
}

type CarritoItemResponse struct {
	ID       int             `json:"id"`
	Nombre   string          `json:"nombre"`
	Precio   decimal.Decimal `json:"precio"`
	Cantidad int             `json:"cantidad"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// CarritoView is the read-only view reported after every mutation:
// cart lines, grand total, and the live catalog for re-rendering.
type CarritoView struct {
	Items    []CarritoItemResponse `json:"items"`
	Total    decimal.Decimal       `json:"total"`
	Catalogo []ProductoResponse    `json:"catalogo"`
}

// ConfirmacionRequeridaResponse is the removal round-trip payload: the
// caller must re-issue the removal as an explicit DELETE.
type ConfirmacionRequeridaResponse struct {
	ConfirmacionRequerida bool   `json:"confirmacion_requerida"`
	Detalle               string `json:"detalle"`
}
