package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Nombre      string          `json:"nombre"      validate:"required,min=2,max=120"`
	Descripcion string          `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"      validate:"min=0"`
	Stock       int             `json:"stock"       validate:"min=0"`
	Categoria   string          `json:"categoria"   validate:"required"`
	Imagen      string          `json:"imagen"`
}

type ActualizarProductoRequest struct {
	Nombre      *string          `json:"nombre"      validate:"omitempty,min=2,max=120"`
	Descripcion *string          `json:"descripcion"`
	Precio      *decimal.Decimal `json:"precio"      validate:"omitempty,min=0"`
	Stock       *int             `json:"stock"       validate:"omitempty,min=0"`
	Categoria   *string          `json:"categoria"`
	Imagen      *string          `json:"imagen"`
}

// AjustarStockRequest applies stock += delta. The service rejects deltas
// that would leave stock negative.
type AjustarStockRequest struct {
	Delta  int    `json:"delta"  validate:"required"`
	Motivo string `json:"motivo"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID          int             `json:"id"`
	Nombre      string          `json:"nombre"`
	Descripcion string          `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
	Categoria   string          `json:"categoria"`
	Imagen      string          `json:"imagen"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int                `json:"total"`
}
