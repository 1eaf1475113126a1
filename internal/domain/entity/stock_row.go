package entity

import "github.com/shopspring/decimal"

// StockRow representa la línea de inventario de un producto en la hoja de stock.
// Codigo es único dentro del rango de la hoja; Cantidad nunca se persiste negativa.
type StockRow struct {
	Codigo           string           `json:"codigo"`
	Categoria        string           `json:"categoria"`
	Nombre           string           `json:"nombre"`
	Cantidad         int              `json:"cantidad"`
	PrecioLocal      decimal.Decimal  `json:"precioLocal"`
	PrecioReferencia *decimal.Decimal `json:"precioReferencia,omitempty"`
}

// StockRowPatch actualización parcial de una fila. Los punteros nil significan "campo ausente".
type StockRowPatch struct {
	Codigo           string           `json:"codigo" validate:"required"`
	Categoria        *string          `json:"categoria,omitempty"`
	Nombre           *string          `json:"nombre,omitempty"`
	Cantidad         *int             `json:"cantidad,omitempty" validate:"omitempty,min=0"`
	PrecioLocal      *decimal.Decimal `json:"precioLocal,omitempty"`
	PrecioReferencia *decimal.Decimal `json:"precioReferencia,omitempty"`
}
