package model

import (
	"github.com/shopspring/decimal"
)

// Producto is the authoritative catalog record. Stock counts live stock only:
// quantities reserved by cart lines have already been subtracted.
type Producto struct {
	ID          int             `json:"id"          validate:"required,min=1"`
	Nombre      string          `json:"nombre"      validate:"required"`
	Descripcion string          `json:"descripcion"`
	Precio      decimal.Decimal `json:"precio"      validate:"min=0"`
	Stock       int             `json:"stock"       validate:"min=0"`
	Categoria   string          `json:"categoria"`
	Imagen      string          `json:"imagen"`
}
